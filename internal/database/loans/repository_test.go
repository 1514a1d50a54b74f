package loans

import (
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/unilib/backend/internal/database"
	"github.com/unilib/backend/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	t.Helper()

	dbPath := "./test_loans_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db.DB)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}

	return db.DB, repo, cleanup
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	user := &entities.User{
		Email:     email,
		Name:      "Test Student",
		Role:      entities.UserRoleStudent,
		StudentID: "STU042",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, title string, quantity, available int) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:     title,
		Author:    "Test Author",
		Category:  "Testing",
		Quantity:  quantity,
		Available: available,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func getBook(t *testing.T, db *gorm.DB, id uint) entities.Book {
	t.Helper()
	var book entities.Book
	require.NoError(t, db.First(&book, id).Error)
	return book
}

// countIssued returns the number of issued loans for a book, used to
// check the ledger invariant available == quantity - issued.
func countIssued(t *testing.T, db *gorm.DB, bookID uint) int {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entities.Loan{}).
		Where("book_id = ? AND status = ?", bookID, entities.LoanStatusIssued).
		Count(&n).Error)
	return int(n)
}

func assertLedgerInvariant(t *testing.T, db *gorm.DB, bookID uint) {
	t.Helper()
	book := getBook(t, db, bookID)
	assert.Equal(t, book.Quantity-countIssued(t, db, bookID), book.Available,
		"available must equal quantity minus issued loans")
}

func TestRepository_IssueLoan(t *testing.T) {
	t.Run("issues a loan and decrements availability", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")
		book := createTestBook(t, db, "Clean Code", 2, 2)
		dueDate := time.Now().Add(14 * 24 * time.Hour)

		detail, err := repo.IssueLoan(user.ID, book.ID, dueDate)
		require.NoError(t, err)

		assert.Equal(t, entities.LoanStatusIssued, detail.Loan.Status)
		assert.Equal(t, user.ID, detail.Loan.UserID)
		assert.Equal(t, book.ID, detail.Loan.BookID)
		assert.Nil(t, detail.Loan.ReturnDate)
		assert.Greater(t, detail.Loan.ID, uint(0))

		// Joined view reflects current book and borrower records
		assert.Equal(t, book.Title, detail.Book.Title)
		assert.Equal(t, user.Email, detail.User.Email)

		assert.Equal(t, 1, getBook(t, db, book.ID).Available)
		assertLedgerInvariant(t, db, book.ID)
	})

	t.Run("issues down to zero then fails with out of stock", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")
		book := createTestBook(t, db, "Clean Code", 2, 2)
		dueDate := time.Now().Add(7 * 24 * time.Hour)

		// Scenario A/B: two issues bring available from 2 to 0
		_, err := repo.IssueLoan(user.ID, book.ID, dueDate)
		require.NoError(t, err)
		_, err = repo.IssueLoan(user.ID, book.ID, dueDate)
		require.NoError(t, err)
		assert.Equal(t, 0, getBook(t, db, book.ID).Available)

		// Scenario C: third attempt fails, no loan row created
		_, err = repo.IssueLoan(user.ID, book.ID, dueDate)
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Equal(t, 0, getBook(t, db, book.ID).Available)
		assert.Equal(t, 2, countIssued(t, db, book.ID))
		assertLedgerInvariant(t, db, book.ID)
	})

	t.Run("fails with not found for unknown book", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")

		_, err := repo.IssueLoan(user.ID, 9999, time.Now().Add(24*time.Hour))
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("fails with not found for unknown borrower", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		book := createTestBook(t, db, "Clean Code", 1, 1)

		_, err := repo.IssueLoan(9999, book.ID, time.Now().Add(24*time.Hour))
		assert.ErrorIs(t, err, ErrUserNotFound)

		// No partial effect: availability untouched
		assert.Equal(t, 1, getBook(t, db, book.ID).Available)
	})

	t.Run("rejects past due dates without mutation", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")
		book := createTestBook(t, db, "Clean Code", 1, 1)

		_, err := repo.IssueLoan(user.ID, book.ID, time.Now().Add(-48*time.Hour))
		assert.ErrorIs(t, err, ErrDueDateInPast)
		assert.Equal(t, 1, getBook(t, db, book.ID).Available)
		assert.Equal(t, 0, countIssued(t, db, book.ID))
	})
}

func TestRepository_ReturnLoan(t *testing.T) {
	t.Run("marks loan returned and increments availability", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")
		book := createTestBook(t, db, "Clean Code", 2, 2)

		issued, err := repo.IssueLoan(user.ID, book.ID, time.Now().Add(24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 1, getBook(t, db, book.ID).Available)

		// Scenario D
		returned, err := repo.ReturnLoan(issued.Loan.ID)
		require.NoError(t, err)

		assert.Equal(t, entities.LoanStatusReturned, returned.Loan.Status)
		require.NotNil(t, returned.Loan.ReturnDate)
		assert.False(t, returned.Loan.ReturnDate.IsZero())
		assert.Equal(t, 2, getBook(t, db, book.ID).Available)
		assertLedgerInvariant(t, db, book.ID)
	})

	t.Run("second return fails and does not double-increment", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")
		book := createTestBook(t, db, "Clean Code", 2, 2)

		issued, err := repo.IssueLoan(user.ID, book.ID, time.Now().Add(24*time.Hour))
		require.NoError(t, err)

		_, err = repo.ReturnLoan(issued.Loan.ID)
		require.NoError(t, err)

		// Scenario E
		_, err = repo.ReturnLoan(issued.Loan.ID)
		assert.ErrorIs(t, err, ErrLoanNotFound)
		assert.Equal(t, 2, getBook(t, db, book.ID).Available)
	})

	t.Run("fails with not found for unknown loan", func(t *testing.T) {
		_, repo, cleanup := setupTestDB(t)
		defer cleanup()

		_, err := repo.ReturnLoan(12345)
		assert.ErrorIs(t, err, ErrLoanNotFound)
	})

	t.Run("issue then return restores availability exactly", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")
		book := createTestBook(t, db, "Clean Code", 3, 3)

		issued, err := repo.IssueLoan(user.ID, book.ID, time.Now().Add(24*time.Hour))
		require.NoError(t, err)
		_, err = repo.ReturnLoan(issued.Loan.ID)
		require.NoError(t, err)

		assert.Equal(t, 3, getBook(t, db, book.ID).Available)
		assertLedgerInvariant(t, db, book.ID)
	})
}

func TestRepository_ListLoans(t *testing.T) {
	t.Run("returns loans newest first with joined records", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")
		book := createTestBook(t, db, "Clean Code", 5, 5)

		// Control issue timestamps so the ordering is deterministic
		base := time.Now().Add(-time.Hour)
		step := 0
		repo.now = func() time.Time {
			step++
			return base.Add(time.Duration(step) * time.Minute)
		}

		first, err := repo.IssueLoan(user.ID, book.ID, base.Add(30*24*time.Hour))
		require.NoError(t, err)
		second, err := repo.IssueLoan(user.ID, book.ID, base.Add(30*24*time.Hour))
		require.NoError(t, err)

		details, err := repo.ListLoans()
		require.NoError(t, err)
		require.Len(t, details, 2)

		assert.Equal(t, second.Loan.ID, details[0].Loan.ID)
		assert.Equal(t, first.Loan.ID, details[1].Loan.ID)
		assert.Equal(t, book.Title, details[0].Book.Title)
		assert.Equal(t, user.Name, details[0].User.Name)
	})

	t.Run("join reflects catalog edits made after issue", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		user := createTestUser(t, db, "student@library.edu")
		book := createTestBook(t, db, "Clean Code", 1, 1)

		_, err := repo.IssueLoan(user.ID, book.ID, time.Now().Add(24*time.Hour))
		require.NoError(t, err)

		require.NoError(t, db.Model(&entities.Book{}).
			Where("id = ?", book.ID).
			Update("title", "Clean Code (2nd ed.)").Error)

		details, err := repo.ListLoans()
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, "Clean Code (2nd ed.)", details[0].Book.Title)
	})
}

func TestRepository_GetOverdueLoans(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "student@library.edu")
	book := createTestBook(t, db, "Clean Code", 2, 2)

	issuedAt := time.Now().Add(-30 * 24 * time.Hour)
	repo.now = func() time.Time { return issuedAt }

	overdue, err := repo.IssueLoan(user.ID, book.ID, issuedAt.Add(7*24*time.Hour))
	require.NoError(t, err)

	repo.now = time.Now
	_, err = repo.IssueLoan(user.ID, book.ID, time.Now().Add(7*24*time.Hour))
	require.NoError(t, err)

	details, err := repo.GetOverdueLoans()
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, overdue.Loan.ID, details[0].Loan.ID)
}

// Two simultaneous issues of the last copy must produce exactly one
// success and one out-of-stock failure, never two successes.
func TestRepository_IssueLoan_ConcurrentLastCopy(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "student@library.edu")
	book := createTestBook(t, db, "The Great Gatsby", 1, 1)
	dueDate := time.Now().Add(24 * time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	start := make(chan struct{})
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = repo.IssueLoan(user.ID, book.ID, dueDate)
		}(i)
	}
	close(start)
	wg.Wait()

	var successes, outOfStock int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrOutOfStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent issue must win")
	assert.Equal(t, 1, outOfStock, "the loser must fail with out of stock")
	assert.Equal(t, 0, getBook(t, db, book.ID).Available)
	assert.Equal(t, 1, countIssued(t, db, book.ID))
	assertLedgerInvariant(t, db, book.ID)
}

func TestRepository_ReturnLoan_AfterCatalogShrink(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "student@library.edu")
	book := createTestBook(t, db, "Clean Code", 2, 2)

	first, err := repo.IssueLoan(user.ID, book.ID, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	second, err := repo.IssueLoan(user.ID, book.ID, time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	// Librarian withdraws one copy while both loans are outstanding
	require.NoError(t, db.Model(&entities.Book{}).Where("id = ?", book.ID).
		Updates(map[string]any{"quantity": 1, "available": 0}).Error)

	_, err = repo.ReturnLoan(first.Loan.ID)
	require.NoError(t, err)
	_, err = repo.ReturnLoan(second.Loan.ID)
	require.NoError(t, err)

	got := getBook(t, db, book.ID)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, 1, got.Available, "available must never exceed quantity")
}

func TestRepository_IssueLoan_DueDateLocalMidnight(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "student@library.edu")
	book := createTestBook(t, db, "Clean Code", 1, 1)

	// Evening in a zone west of UTC, where the UTC date has already
	// rolled over: a due date earlier the same local day is still valid.
	zone := time.FixedZone("UTC-5", -5*60*60)
	repo.now = func() time.Time { return time.Date(2026, 8, 30, 20, 0, 0, 0, zone) }

	dueDate := time.Date(2026, 8, 30, 18, 0, 0, 0, zone)
	detail, err := repo.IssueLoan(user.ID, book.ID, dueDate)
	require.NoError(t, err)

	// Anything before the local midnight is still rejected
	_, err = repo.ReturnLoan(detail.Loan.ID)
	require.NoError(t, err)
	_, err = repo.IssueLoan(user.ID, book.ID, time.Date(2026, 8, 29, 23, 0, 0, 0, zone))
	assert.ErrorIs(t, err, ErrDueDateInPast)
}
