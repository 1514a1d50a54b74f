// Package loans implements the loan ledger: the transactional issue/return
// workflow that keeps every book's available-copy counter consistent with
// the set of currently issued loans for that book.
//
// # Consistency
//
// For any book, after every committed operation
//
//	available == quantity - count(loans with status "issued")
//
// Both IssueLoan and ReturnLoan run as a single database transaction. The
// availability counter is never read-modify-written: it is adjusted with a
// guarded UPDATE whose WHERE clause re-validates the precondition at commit
// time, so two concurrent issues of the last copy cannot both succeed.
//
// # Usage
//
//	repo := loans.NewRepository(db)
//	detail, err := repo.IssueLoan(userID, bookID, dueDate)
//	if errors.Is(err, loans.ErrOutOfStock) { ... }
package loans

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/unilib/backend/internal/entities"
)

var (
	ErrOutOfStock    = errors.New("no copies of this book are available")
	ErrBookNotFound  = errors.New("book not found")
	ErrUserNotFound  = errors.New("borrower not found")
	ErrLoanNotFound  = errors.New("loan not found or already returned")
	ErrDueDateInPast = errors.New("due date must not be in the past")
)

// LoanDetail is a loan joined with the current book and borrower rows,
// the shape returned by the transactions API.
type LoanDetail struct {
	Loan entities.Loan `json:"transaction"`
	Book entities.Book `json:"book"`
	User entities.User `json:"user"`
}

// Repository handles all loan ledger database operations.
type Repository struct {
	db *gorm.DB

	// now is swappable for tests
	now func() time.Time
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// IssueLoan lends one copy of a book to a borrower until dueDate.
//
// The availability check and the decrement are one guarded UPDATE inside
// the same transaction as the loan insert, so the check cannot go stale
// between "show available copy" and "confirm issue": if the last copy was
// taken by a concurrent request the UPDATE matches zero rows and the whole
// unit rolls back with ErrOutOfStock.
func (r *Repository) IssueLoan(userID, bookID uint, dueDate time.Time) (*LoanDetail, error) {
	now := r.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dueDate.Before(startOfDay) {
		return nil, ErrDueDateInPast
	}

	loan := entities.Loan{
		UserID:    userID,
		BookID:    bookID,
		IssueDate: now,
		DueDate:   dueDate,
		Status:    entities.LoanStatusIssued,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&entities.User{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to look up borrower: %w", err)
		}
		if exists == 0 {
			return ErrUserNotFound
		}

		res := tx.Model(&entities.Book{}).
			Where("id = ? AND available > 0", bookID).
			UpdateColumn("available", gorm.Expr("available - 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement availability: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Either the book does not exist or its last copy is out.
			if err := tx.Model(&entities.Book{}).Where("id = ?", bookID).Count(&exists).Error; err != nil {
				return fmt.Errorf("failed to look up book: %w", err)
			}
			if exists == 0 {
				return ErrBookNotFound
			}
			return ErrOutOfStock
		}

		if err := tx.Create(&loan).Error; err != nil {
			return fmt.Errorf("failed to create loan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.loadDetail(loan)
}

// ReturnLoan marks an issued loan as returned and hands the copy back to
// the catalog. Returning a loan twice increments availability exactly
// once: the second call matches no issued row and fails with
// ErrLoanNotFound without touching the counter.
func (r *Repository) ReturnLoan(loanID uint) (*LoanDetail, error) {
	var loan entities.Loan

	err := r.db.Transaction(func(tx *gorm.DB) error {
		returnedAt := r.now()
		res := tx.Model(&entities.Loan{}).
			Where("id = ? AND status = ?", loanID, entities.LoanStatusIssued).
			Updates(map[string]any{
				"status":      entities.LoanStatusReturned,
				"return_date": returnedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to mark loan returned: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrLoanNotFound
		}

		if err := tx.First(&loan, loanID).Error; err != nil {
			return fmt.Errorf("failed to reload loan: %w", err)
		}

		// Capped at quantity: a catalog edit may have shrunk the book
		// below its outstanding loans, and available must never exceed
		// the copies that exist.
		res = tx.Model(&entities.Book{}).
			Where("id = ? AND available < quantity", loan.BookID).
			UpdateColumn("available", gorm.Expr("available + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to increment availability: %w", res.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.loadDetail(loan)
}

// ListLoans returns all loans, most recently issued first, each joined
// with the current book and borrower records.
func (r *Repository) ListLoans() ([]LoanDetail, error) {
	var loans []entities.Loan
	err := r.db.Preload("Book").Preload("User").
		Order("issue_date DESC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}

	details := make([]LoanDetail, 0, len(loans))
	for _, loan := range loans {
		details = append(details, LoanDetail{Loan: loan, Book: loan.Book, User: loan.User})
	}
	return details, nil
}

// GetOverdueLoans returns issued loans whose due date has passed.
func (r *Repository) GetOverdueLoans() ([]LoanDetail, error) {
	var loans []entities.Loan
	err := r.db.Preload("Book").Preload("User").
		Where("status = ? AND due_date < ?", entities.LoanStatusIssued, r.now()).
		Order("due_date ASC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}

	details := make([]LoanDetail, 0, len(loans))
	for _, loan := range loans {
		details = append(details, LoanDetail{Loan: loan, Book: loan.Book, User: loan.User})
	}
	return details, nil
}

// loadDetail builds the joined view from the already-known mutated loan
// plus read-only lookups, outside the write transaction.
func (r *Repository) loadDetail(loan entities.Loan) (*LoanDetail, error) {
	detail := LoanDetail{Loan: loan}
	if err := r.db.First(&detail.Book, loan.BookID).Error; err != nil {
		return nil, fmt.Errorf("failed to load book for loan %d: %w", loan.ID, err)
	}
	if err := r.db.First(&detail.User, loan.UserID).Error; err != nil {
		return nil, fmt.Errorf("failed to load borrower for loan %d: %w", loan.ID, err)
	}
	return &detail, nil
}
