// Package users provides read-side database operations for accounts.
// Account creation and credential checks live in internal/auth.
package users

import (
	"gorm.io/gorm"

	"github.com/unilib/backend/internal/entities"
)

// Repository handles user lookup database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetStudents returns all accounts with the student role.
func (r *Repository) GetStudents() ([]entities.User, error) {
	var students []entities.User
	err := r.db.Where("role = ?", entities.UserRoleStudent).
		Order("name ASC").
		Find(&students).Error
	return students, err
}
