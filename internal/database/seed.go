package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/unilib/backend/internal/entities"
)

// DemoPassword is the password shared by all seeded demo accounts.
const DemoPassword = "password123"

var demoUsers = []entities.User{
	{Name: "Admin User", Email: "admin@library.edu", Role: entities.UserRoleAdmin},
	{Name: "John Doe", Email: "john@student.edu", Role: entities.UserRoleStudent, StudentID: "STU001"},
}

var demoBooks = []entities.Book{
	{Title: "Introduction to Algorithms", Author: "Thomas H. Cormen", Category: "Computer Science", Quantity: 5, Available: 5},
	{Title: "Clean Code", Author: "Robert C. Martin", Category: "Software Engineering", Quantity: 3, Available: 3},
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Category: "Literature", Quantity: 2, Available: 2},
}

// SeedDemoData inserts the demo accounts and starter catalog if the
// database is still empty. Safe to call on every startup.
func (d *Database) SeedDemoData(bcryptCost int) error {
	var userCount int64
	if err := d.DB.Model(&entities.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}
		for _, user := range demoUsers {
			user.PasswordHash = string(hash)
			if err := d.DB.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to create demo user %s: %w", user.Email, err)
			}
			log.Printf("Created demo user: %s", user.Email)
		}
	}

	var bookCount int64
	if err := d.DB.Model(&entities.Book{}).Count(&bookCount).Error; err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}

	if bookCount == 0 {
		for _, book := range demoBooks {
			if err := d.DB.Create(&book).Error; err != nil {
				return fmt.Errorf("failed to create demo book %s: %w", book.Title, err)
			}
			log.Printf("Created demo book: %s", book.Title)
		}
	}

	return nil
}
