// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, demo seeding
//	├── books/           # Catalog CRUD operations
//	├── loans/           # Loan ledger: issue/return transactions
//	├── users/           # User lookups and student listing
//	├── discounts/       # Discount CRUD
//	├── feedback/        # Feedback storage
//	└── stats/           # Dashboard aggregates
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./library.db")
//
//	// Create domain-specific repositories
//	booksRepo := books.NewRepository(db.DB)
//	loansRepo := loans.NewRepository(db.DB)
//
//	// Use repositories
//	book, err := booksRepo.GetBook(123)
//	detail, err := loansRepo.IssueLoan(userID, bookID, dueDate)
//
// # The Loan Ledger
//
// The loans sub-package is the only writer of Book.Available. Issue and
// return each run as a single database transaction with a guarded UPDATE
// on the availability counter, so for every book
//
//	available == quantity - count(issued loans)
//
// holds after every commit, including under concurrent issue requests.
//
// # Adding a New Domain
//
// To add a new domain (e.g., reservations):
//
//  1. Create a new sub-package: internal/database/reservations/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
