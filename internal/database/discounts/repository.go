// Package discounts provides database operations for fee discounts.
package discounts

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/unilib/backend/internal/entities"
)

var ErrDiscountNotFound = errors.New("discount not found")

// Repository handles discount database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new discounts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetDiscounts returns all discounts, longest-valid first.
func (r *Repository) GetDiscounts() ([]entities.Discount, error) {
	var discounts []entities.Discount
	err := r.db.Order("valid_until DESC").Find(&discounts).Error
	return discounts, err
}

// GetActiveDiscount retrieves a discount only if it is active and not
// yet expired, for use by the fee estimator.
func (r *Repository) GetActiveDiscount(id uint, at time.Time) (*entities.Discount, error) {
	var discount entities.Discount
	err := r.db.Where("id = ? AND active = ? AND valid_until >= ?", id, true, at).
		First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &discount, nil
}

// CreateDiscount adds a new discount.
func (r *Repository) CreateDiscount(discount *entities.Discount) error {
	return r.db.Create(discount).Error
}
