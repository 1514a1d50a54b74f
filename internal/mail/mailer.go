// Package mail delivers notification email for the library: feedback
// forwarded to the librarian inbox and overdue-loan reminders.
package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/unilib/backend/internal/config"
)

// Sender delivers a single plain-text message.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	cfg config.Mail
}

// NewSMTPMailer creates a mailer for the given SMTP configuration.
func NewSMTPMailer(cfg config.Mail) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one message via SMTP with PLAIN auth.
func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(m.cfg.From, to, subject, body)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes messages to the application log instead of sending
// them. Used when no SMTP host is configured.
type LogMailer struct{}

// NewLogMailer creates a log-only mailer.
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Send logs the message instead of delivering it.
func (m *LogMailer) Send(to, subject, body string) error {
	log.Printf("[MAIL] to=%s subject=%q\n%s", to, subject, body)
	return nil
}

// NewSender picks the SMTP mailer when a host is configured, otherwise
// the log-only fallback.
func NewSender(cfg config.Mail) Sender {
	if cfg.Host == "" {
		log.Printf("MAIL_HOST not set, mail will be logged instead of sent")
		return NewLogMailer()
	}
	return NewSMTPMailer(cfg)
}

// buildMessage assembles an RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: UniLib <%s>\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// FeedbackBody formats the librarian notification for a feedback message.
func FeedbackBody(name, email, message string) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s\n", name, email, message)
}

// OverdueReminderBody formats the reminder sent to a borrower.
func OverdueReminderBody(borrowerName, bookTitle string, daysOverdue int) string {
	return fmt.Sprintf(
		"Dear %s,\n\nThe book %q is %d day(s) overdue. Please return it to the library as soon as possible.\n\nUniLib\n",
		borrowerName, bookTitle, daysOverdue)
}
