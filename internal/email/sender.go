// Package email provides outbound email delivery for the application.
// Senders are driven by the notification module; domain services never
// talk to SMTP directly.
package email

import (
	"context"
	"time"

	"zylentrix_crm_backend/platform/config"
)

// Sender delivers the application's transactional emails.
type Sender interface {
	SendVerificationEmail(ctx context.Context, toEmail, name, verifyURL string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, resetURL string) error
	SendTaskAssignedEmail(ctx context.Context, toEmail, assigneeName, leadName string, dueDate time.Time) error
	SendTaskReminderEmail(ctx context.Context, toEmail, assigneeName, taskTitle string, dueDate time.Time) error
}

// NoopSender satisfies Sender without delivering anything. Used when email
// is disabled in configuration.
type NoopSender struct{}

func (NoopSender) SendVerificationEmail(context.Context, string, string, string) error { return nil }
func (NoopSender) SendPasswordResetEmail(context.Context, string, string) error        { return nil }
func (NoopSender) SendTaskAssignedEmail(context.Context, string, string, string, time.Time) error {
	return nil
}
func (NoopSender) SendTaskReminderEmail(context.Context, string, string, string, time.Time) error {
	return nil
}

// NewSender constructs the configured Sender implementation.
func NewSender(cfg *config.Config) Sender {
	if !cfg.EmailEnabled {
		return NoopSender{}
	}
	return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFromAddress, cfg.EmailFromName)
}
