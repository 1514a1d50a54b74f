// Package stats computes the dashboard aggregates.
package stats

import (
	"gorm.io/gorm"

	"github.com/unilib/backend/internal/entities"
)

// Repository computes catalog-wide statistics.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetStats aggregates copy counts over the whole catalog. Issued copies
// are derived from the availability counters, which the loan ledger
// keeps consistent with outstanding loans.
func (r *Repository) GetStats() (*entities.BookStats, error) {
	var totals struct {
		Total     *int
		Available *int
	}
	err := r.db.Model(&entities.Book{}).
		Select("SUM(quantity) AS total, SUM(available) AS available").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var students int64
	err = r.db.Model(&entities.User{}).
		Where("role = ?", entities.UserRoleStudent).
		Count(&students).Error
	if err != nil {
		return nil, err
	}

	stats := &entities.BookStats{TotalStudents: int(students)}
	if totals.Total != nil {
		stats.TotalBooks = *totals.Total
	}
	if totals.Available != nil {
		stats.AvailableBooks = *totals.Available
	}
	stats.IssuedBooks = stats.TotalBooks - stats.AvailableBooks

	return stats, nil
}
