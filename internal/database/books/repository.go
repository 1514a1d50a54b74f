// Package books provides database operations for the catalog.
//
// The Available counter on a book is owned by the loan ledger
// (internal/database/loans); this package only touches it when an
// explicit quantity edit changes how many copies exist.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/unilib/backend/internal/entities"
)

var ErrBookNotFound = errors.New("book not found")

// BookUpdate carries the partial fields of a catalog edit. Nil fields
// are left unchanged.
type BookUpdate struct {
	Title    *string
	Author   *string
	Category *string
	Quantity *int
}

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBooks returns the whole catalog, newest first.
func (r *Repository) GetBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("created_at DESC").Find(&books).Error
	return books, err
}

// GetBook retrieves a single book by ID.
func (r *Repository) GetBook(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return &book, nil
}

// CreateBook adds a book to the catalog. A nil available means the
// caller did not say, and a new book starts with all copies available;
// an explicit zero is stored as zero (every copy already out, e.g. a
// migrated record).
func (r *Repository) CreateBook(book *entities.Book, available *int) error {
	if book.Quantity <= 0 {
		book.Quantity = 1
	}
	book.Available = book.Quantity
	if available != nil {
		book.Available = *available
	}
	return r.db.Create(book).Error
}

// UpdateBook applies a partial catalog edit. A quantity change shifts
// Available by the same delta so outstanding loans stay accounted for,
// clamped at zero.
func (r *Repository) UpdateBook(id uint, update BookUpdate) (*entities.Book, error) {
	var book *entities.Book

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		fields := map[string]any{}
		if update.Title != nil {
			fields["title"] = *update.Title
		}
		if update.Author != nil {
			fields["author"] = *update.Author
		}
		if update.Category != nil {
			fields["category"] = *update.Category
		}
		if update.Quantity != nil {
			delta := *update.Quantity - existing.Quantity
			available := existing.Available + delta
			if available < 0 {
				available = 0
			}
			fields["quantity"] = *update.Quantity
			fields["available"] = available
		}

		if len(fields) > 0 {
			if err := tx.Model(&entities.Book{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}

		book = &entities.Book{}
		return tx.First(book, id).Error
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook removes a book from the catalog.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}
