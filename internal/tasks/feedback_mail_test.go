package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilib/backend/internal/database/loans"
	"github.com/unilib/backend/internal/entities"
)

type fakeSender struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (s *fakeSender) Send(to, subject, body string) error {
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeFeedbackReader struct {
	feedback *entities.Feedback
	err      error
}

func (r *fakeFeedbackReader) GetFeedback(id uint) (*entities.Feedback, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.feedback, nil
}

func TestFeedbackMailProcessor(t *testing.T) {
	t.Run("forwards feedback to the configured recipient", func(t *testing.T) {
		sender := &fakeSender{}
		reader := &fakeFeedbackReader{feedback: &entities.Feedback{
			ID:      7,
			Name:    "Jane",
			Email:   "jane@student.edu",
			Message: "More study rooms please",
		}}

		processor := FeedbackMailProcessor(reader, sender, "librarian@library.edu")
		err := processor(context.Background(), FeedbackMailTask{FeedbackID: 7})
		require.NoError(t, err)

		require.Len(t, sender.sent, 1)
		assert.Equal(t, "librarian@library.edu", sender.sent[0].to)
		assert.Equal(t, "New Library Feedback", sender.sent[0].subject)
		assert.Contains(t, sender.sent[0].body, "More study rooms please")
	})

	t.Run("skips silently without a recipient", func(t *testing.T) {
		sender := &fakeSender{}
		reader := &fakeFeedbackReader{}

		processor := FeedbackMailProcessor(reader, sender, "")
		err := processor(context.Background(), FeedbackMailTask{FeedbackID: 7})
		require.NoError(t, err)
		assert.Empty(t, sender.sent)
	})

	t.Run("propagates load errors for retry", func(t *testing.T) {
		sender := &fakeSender{}
		reader := &fakeFeedbackReader{err: errors.New("gone")}

		processor := FeedbackMailProcessor(reader, sender, "librarian@library.edu")
		err := processor(context.Background(), FeedbackMailTask{FeedbackID: 7})
		assert.Error(t, err)
	})
}

type fakeOverdueLister struct {
	details []loans.LoanDetail
}

func (l *fakeOverdueLister) GetOverdueLoans() ([]loans.LoanDetail, error) {
	return l.details, nil
}

func TestOverdueScanProcessor(t *testing.T) {
	overdueDetail := func(email string) loans.LoanDetail {
		return loans.LoanDetail{
			Loan: entities.Loan{ID: 1, DueDate: time.Now().Add(-72 * time.Hour), Status: entities.LoanStatusIssued},
			Book: entities.Book{ID: 1, Title: "Clean Code"},
			User: entities.User{ID: 1, Name: "John Doe", Email: email},
		}
	}

	t.Run("mails each overdue borrower", func(t *testing.T) {
		sender := &fakeSender{}
		lister := &fakeOverdueLister{details: []loans.LoanDetail{overdueDetail("john@student.edu")}}

		processor := OverdueScanProcessor(lister, sender)
		err := processor(context.Background(), OverdueScanTask{})
		require.NoError(t, err)

		require.Len(t, sender.sent, 1)
		assert.Equal(t, "john@student.edu", sender.sent[0].to)
		assert.Contains(t, sender.sent[0].body, "Clean Code")
	})

	t.Run("reports delivery failures", func(t *testing.T) {
		sender := &fakeSender{fail: true}
		lister := &fakeOverdueLister{details: []loans.LoanDetail{overdueDetail("john@student.edu")}}

		processor := OverdueScanProcessor(lister, sender)
		err := processor(context.Background(), OverdueScanTask{})
		assert.Error(t, err)
	})

	t.Run("does nothing with an empty ledger", func(t *testing.T) {
		sender := &fakeSender{}
		lister := &fakeOverdueLister{}

		processor := OverdueScanProcessor(lister, sender)
		err := processor(context.Background(), OverdueScanTask{})
		require.NoError(t, err)
		assert.Empty(t, sender.sent)
	})
}
