// Package feedback provides database operations for visitor feedback.
package feedback

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilib/backend/internal/entities"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

// Repository handles feedback database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new feedback repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateFeedback stores a feedback message.
func (r *Repository) CreateFeedback(fb *entities.Feedback) error {
	return r.db.Create(fb).Error
}

// GetFeedback retrieves a feedback message by ID, used by the mail task.
func (r *Repository) GetFeedback(id uint) (*entities.Feedback, error) {
	var fb entities.Feedback
	if err := r.db.First(&fb, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &fb, nil
}
