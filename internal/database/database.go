package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unilib/backend/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// DSN builds the SQLite connection string for the given path.
//
// WAL mode plus immediate write transactions are required by the loan
// ledger: two concurrent issue transactions serialize at BEGIN instead of
// deadlocking on lock upgrade, so the guarded availability UPDATE is
// race-free (see internal/database/loans).
func DSN(dbPath string) string {
	return dbPath + "?_journal=WAL&_busy_timeout=5000&_txlock=immediate&_foreign_keys=on"
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(DSN(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.Loan{},
		&entities.Discount{},
		&entities.Feedback{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
