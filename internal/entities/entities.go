package entities

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleStudent UserRole = "student"
)

type LoanStatus string

const (
	LoanStatusIssued   LoanStatus = "issued"
	LoanStatusReturned LoanStatus = "returned"
)

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Email        string   `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string   `gorm:"size:100" json:"-"`
	Name         string   `gorm:"size:255" json:"name"`
	Role         UserRole `gorm:"size:20;default:'student';index" json:"role"`
	StudentID    string   `gorm:"size:50" json:"studentId,omitempty"` // e.g. "STU001", empty for staff

	// Login bookkeeping
	LastLoginAt      *time.Time `json:"-"`
	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512" json:"title"`
	Author    string    `gorm:"index;size:256" json:"author"`
	Category  string    `gorm:"index;size:100" json:"category"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	Available int       `json:"available"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Loan records one book copy lent to one borrower. Its lifecycle is
// issued -> returned, driven exclusively by the loans repository so the
// book's available counter stays consistent with outstanding loans.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"userId"`
	BookID     uint       `gorm:"index;not null" json:"bookId"`
	IssueDate  time.Time  `gorm:"index" json:"issueDate"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
	Status     LoanStatus `gorm:"size:20;default:'issued';index" json:"status"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName keeps the historical table name used by the public API paths.
func (Loan) TableName() string { return "transactions" }

type Discount struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:255" json:"title"`
	Percentage int       `json:"percentage"`
	ValidUntil time.Time `json:"validUntil"`
	Active     bool      `gorm:"default:true" json:"active"`
}

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookStats is the dashboard aggregate over the whole catalog.
type BookStats struct {
	TotalBooks     int `json:"totalBooks"`
	IssuedBooks    int `json:"issuedBooks"`
	AvailableBooks int `json:"availableBooks"`
	TotalStudents  int `json:"totalStudents"`
}
