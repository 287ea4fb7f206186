// Package notification provides event handlers for sending emails in
// response to domain events. Domain modules publish events and never touch
// email providers or templates directly.
package notification

import (
	"context"
	"time"

	"zylentrix_crm_backend/internal/auth/service"
	"zylentrix_crm_backend/internal/email"
	"zylentrix_crm_backend/internal/events"
	"zylentrix_crm_backend/internal/scheduler"
	"zylentrix_crm_backend/platform/config"
	"zylentrix_crm_backend/platform/logger"
)

type Module struct {
	sender    email.Sender
	reminders scheduler.ReminderScheduler
	cfg       *config.Config
	log       *logger.Logger
}

// NewModule creates the notification module. The reminder scheduler is
// optional; when nil, deadline reminders are simply not scheduled.
func NewModule(sender email.Sender, reminders scheduler.ReminderScheduler, cfg *config.Config, log *logger.Logger) *Module {
	return &Module{
		sender:    sender,
		reminders: reminders,
		cfg:       cfg,
		log:       log,
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.UserSignedUp{}.EventName(), m)
	bus.Subscribe(events.EmailVerificationRequested{}.EventName(), m)
	bus.Subscribe(events.PasswordResetRequested{}.EventName(), m)
	bus.Subscribe(events.TaskAssigned{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.UserSignedUp:
		return m.handleUserSignedUp(ctx, e)
	case events.EmailVerificationRequested:
		return m.handleEmailVerificationRequested(ctx, e)
	case events.PasswordResetRequested:
		return m.handlePasswordResetRequested(ctx, e)
	case events.TaskAssigned:
		return m.handleTaskAssigned(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleUserSignedUp(ctx context.Context, e events.UserSignedUp) error {
	verifyURL := service.BuildVerifyURL(m.cfg.AppBaseURL, e.VerifyToken)
	if err := m.sender.SendVerificationEmail(ctx, e.Email, e.Name, verifyURL); err != nil {
		m.log.Error("failed to send verification email", "error", err, "email", e.Email)
		return err
	}
	return nil
}

func (m *Module) handleEmailVerificationRequested(ctx context.Context, e events.EmailVerificationRequested) error {
	verifyURL := service.BuildVerifyURL(m.cfg.AppBaseURL, e.VerifyToken)
	if err := m.sender.SendVerificationEmail(ctx, e.Email, "", verifyURL); err != nil {
		m.log.Error("failed to resend verification email", "error", err, "email", e.Email)
		return err
	}
	return nil
}

func (m *Module) handlePasswordResetRequested(ctx context.Context, e events.PasswordResetRequested) error {
	resetURL := service.BuildResetURL(m.cfg.AppBaseURL, e.ResetToken)
	if err := m.sender.SendPasswordResetEmail(ctx, e.Email, resetURL); err != nil {
		m.log.Error("failed to send password reset email", "error", err, "email", e.Email)
		return err
	}
	return nil
}

// handleTaskAssigned notifies the assignee and, when a scheduler is wired,
// books a reminder ahead of the task's due date.
func (m *Module) handleTaskAssigned(ctx context.Context, e events.TaskAssigned) error {
	if err := m.sender.SendTaskAssignedEmail(ctx, e.AssigneeEmail, e.AssigneeName, e.LeadName, e.DueDate); err != nil {
		m.log.Error("failed to send task assigned email", "error", err, "email", e.AssigneeEmail)
		return err
	}

	if m.reminders == nil {
		return nil
	}

	runAt := e.DueDate.Add(-m.cfg.TaskReminderLead)
	if !runAt.After(time.Now()) {
		return nil
	}

	err := m.reminders.ScheduleDeadlineReminder(ctx, scheduler.DeadlineReminderPayload{
		TaskID:        e.TaskID.String(),
		AssigneeEmail: e.AssigneeEmail,
		AssigneeName:  e.AssigneeName,
		DueDate:       e.DueDate,
	}, runAt)
	if err != nil {
		// Reminder scheduling is best effort; the assignment email already
		// went out.
		m.log.Warn("failed to schedule deadline reminder", "error", err, "task_id", e.TaskID.String())
	}
	return nil
}

var _ events.Handler = (*Module)(nil)
