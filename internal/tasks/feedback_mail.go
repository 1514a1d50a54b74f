package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/unilib/backend/internal/entities"
	"github.com/unilib/backend/internal/mail"
)

// FeedbackReader loads stored feedback for mail delivery.
type FeedbackReader interface {
	GetFeedback(id uint) (*entities.Feedback, error)
}

// FeedbackMailTask forwards a stored feedback message to the librarian
// inbox. Enqueued by the feedback endpoint so a slow SMTP relay never
// blocks the HTTP response.
type FeedbackMailTask struct {
	FeedbackID uint `json:"feedback_id"`
}

// Config returns the queue configuration for feedback mail tasks.
func (t FeedbackMailTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "feedback_mail",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// FeedbackMailProcessor creates a processor function for FeedbackMailTask.
func FeedbackMailProcessor(reader FeedbackReader, sender mail.Sender, recipient string) backlite.QueueProcessor[FeedbackMailTask] {
	return func(ctx context.Context, task FeedbackMailTask) error {
		if recipient == "" {
			log.Printf("[TASK] No feedback mail recipient configured, skipping feedback %d", task.FeedbackID)
			return nil
		}

		fb, err := reader.GetFeedback(task.FeedbackID)
		if err != nil {
			return fmt.Errorf("load feedback %d: %w", task.FeedbackID, err)
		}

		body := mail.FeedbackBody(fb.Name, fb.Email, fb.Message)
		if err := sender.Send(recipient, "New Library Feedback", body); err != nil {
			return fmt.Errorf("send feedback mail: %w", err)
		}

		log.Printf("[TASK] Forwarded feedback %d to %s", fb.ID, recipient)
		return nil
	}
}

// NewFeedbackMailQueue creates a backlite queue for feedback mail tasks.
func NewFeedbackMailQueue(reader FeedbackReader, sender mail.Sender, recipient string) backlite.Queue {
	return backlite.NewQueue(FeedbackMailProcessor(reader, sender, recipient))
}
