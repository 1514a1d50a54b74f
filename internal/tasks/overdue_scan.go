package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/unilib/backend/internal/database/loans"
	"github.com/unilib/backend/internal/mail"
)

// OverdueLoanLister returns issued loans whose due date has passed.
type OverdueLoanLister interface {
	GetOverdueLoans() ([]loans.LoanDetail, error)
}

// OverdueScanTask walks the ledger for overdue loans and mails each
// borrower a reminder. Enqueued by the scheduler on its cron schedule.
type OverdueScanTask struct{}

// Config returns the queue configuration for overdue scans.
func (t OverdueScanTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "overdue_scan",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueScanProcessor creates a processor function for OverdueScanTask.
func OverdueScanProcessor(lister OverdueLoanLister, sender mail.Sender) backlite.QueueProcessor[OverdueScanTask] {
	return func(ctx context.Context, task OverdueScanTask) error {
		overdue, err := lister.GetOverdueLoans()
		if err != nil {
			return fmt.Errorf("list overdue loans: %w", err)
		}

		var failures int
		for _, detail := range overdue {
			days := int(time.Since(detail.Loan.DueDate).Hours() / 24)
			if days < 1 {
				days = 1
			}
			body := mail.OverdueReminderBody(detail.User.Name, detail.Book.Title, days)
			if err := sender.Send(detail.User.Email, "Overdue book reminder", body); err != nil {
				log.Printf("[TASK ERROR] Overdue reminder for loan %d failed: %v", detail.Loan.ID, err)
				failures++
			}
		}

		log.Printf("[TASK] Overdue scan: %d overdue loans, %d reminder failures", len(overdue), failures)
		if failures > 0 {
			return fmt.Errorf("%d of %d overdue reminders failed", failures, len(overdue))
		}
		return nil
	}
}

// NewOverdueScanQueue creates a backlite queue for overdue scans.
func NewOverdueScanQueue(lister OverdueLoanLister, sender mail.Sender) backlite.Queue {
	return backlite.NewQueue(OverdueScanProcessor(lister, sender))
}
