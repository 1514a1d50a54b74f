package books

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilib/backend/internal/database"
	"github.com/unilib/backend/internal/entities"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}

	return NewRepository(db.DB), cleanup
}

func intPtr(n int) *int { return &n }

func TestRepository_CreateBook(t *testing.T) {
	t.Run("defaults available to quantity", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		book := &entities.Book{Title: "Clean Code", Author: "Robert C. Martin", Category: "Software", Quantity: 3}
		require.NoError(t, repo.CreateBook(book, nil))

		stored, err := repo.GetBook(book.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.Quantity)
		assert.Equal(t, 3, stored.Available)
	})

	t.Run("stores an explicit zero available", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		book := &entities.Book{Title: "Clean Code", Author: "Robert C. Martin", Category: "Software", Quantity: 3}
		require.NoError(t, repo.CreateBook(book, intPtr(0)))

		stored, err := repo.GetBook(book.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.Quantity)
		assert.Equal(t, 0, stored.Available, "an explicitly empty shelf must stay empty")
	})

	t.Run("stores a partial availability", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		book := &entities.Book{Title: "Clean Code", Author: "Robert C. Martin", Category: "Software", Quantity: 3}
		require.NoError(t, repo.CreateBook(book, intPtr(1)))

		stored, err := repo.GetBook(book.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Available)
	})

	t.Run("normalizes a zero quantity to one copy", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		book := &entities.Book{Title: "Clean Code", Author: "Robert C. Martin", Category: "Software"}
		require.NoError(t, repo.CreateBook(book, nil))

		stored, err := repo.GetBook(book.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Quantity)
		assert.Equal(t, 1, stored.Available)
	})
}

func TestRepository_UpdateBook(t *testing.T) {
	t.Run("shifts availability with the quantity delta", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		book := &entities.Book{Title: "Clean Code", Author: "Robert C. Martin", Category: "Software", Quantity: 3}
		require.NoError(t, repo.CreateBook(book, intPtr(2)))

		updated, err := repo.UpdateBook(book.ID, BookUpdate{Quantity: intPtr(5)})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Quantity)
		assert.Equal(t, 4, updated.Available)
	})

	t.Run("clamps availability at zero when the catalog shrinks", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		book := &entities.Book{Title: "Clean Code", Author: "Robert C. Martin", Category: "Software", Quantity: 5}
		require.NoError(t, repo.CreateBook(book, intPtr(1)))

		updated, err := repo.UpdateBook(book.ID, BookUpdate{Quantity: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Quantity)
		assert.Equal(t, 0, updated.Available)
	})

	t.Run("returns ErrBookNotFound for an unknown book", func(t *testing.T) {
		repo, cleanup := setupTestRepo(t)
		defer cleanup()

		_, err := repo.UpdateBook(999, BookUpdate{Quantity: intPtr(2)})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}
