package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/events"
	"zylentrix_crm_backend/internal/scheduler"
	"zylentrix_crm_backend/platform/config"
	"zylentrix_crm_backend/platform/logger"

	"github.com/google/uuid"
)

type sentEmail struct {
	kind string
	to   string
	arg  string
}

type fakeSender struct {
	sent []sentEmail
}

func (f *fakeSender) SendVerificationEmail(_ context.Context, toEmail, _, verifyURL string) error {
	f.sent = append(f.sent, sentEmail{kind: "verify", to: toEmail, arg: verifyURL})
	return nil
}

func (f *fakeSender) SendPasswordResetEmail(_ context.Context, toEmail, resetURL string) error {
	f.sent = append(f.sent, sentEmail{kind: "reset", to: toEmail, arg: resetURL})
	return nil
}

func (f *fakeSender) SendTaskAssignedEmail(_ context.Context, toEmail, _, leadName string, _ time.Time) error {
	f.sent = append(f.sent, sentEmail{kind: "task_assigned", to: toEmail, arg: leadName})
	return nil
}

func (f *fakeSender) SendTaskReminderEmail(_ context.Context, toEmail, _, taskTitle string, _ time.Time) error {
	f.sent = append(f.sent, sentEmail{kind: "task_reminder", to: toEmail, arg: taskTitle})
	return nil
}

type fakeReminders struct {
	scheduled []scheduler.DeadlineReminderPayload
	runAt     time.Time
}

func (f *fakeReminders) ScheduleDeadlineReminder(_ context.Context, payload scheduler.DeadlineReminderPayload, runAt time.Time) error {
	f.scheduled = append(f.scheduled, payload)
	f.runAt = runAt
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		AppBaseURL:       "https://crm.zylentrix.com",
		TaskReminderLead: 2 * time.Hour,
	}
}

func TestHandleUserSignedUpSendsVerification(t *testing.T) {
	sender := &fakeSender{}
	m := NewModule(sender, nil, testConfig(), logger.New("test"))

	err := m.Handle(context.Background(), events.UserSignedUp{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      "ZYL0001AA",
		Name:        "Asha",
		Email:       "asha@zylentrix.com",
		Sector:      domain.SectorDigizign,
		VerifyToken: "raw-token",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].kind != "verify" {
		t.Fatalf("sent = %+v", sender.sent)
	}
	if !strings.Contains(sender.sent[0].arg, "raw-token") {
		t.Fatalf("verify URL %q missing token", sender.sent[0].arg)
	}
}

func TestHandleTaskAssignedEmailsAndSchedulesReminder(t *testing.T) {
	sender := &fakeSender{}
	reminders := &fakeReminders{}
	m := NewModule(sender, reminders, testConfig(), logger.New("test"))

	dueDate := time.Now().Add(24 * time.Hour)
	taskID := uuid.New()
	err := m.Handle(context.Background(), events.TaskAssigned{
		BaseEvent:     events.NewBaseEvent(),
		TaskID:        taskID,
		LeadID:        uuid.New(),
		LeadName:      "Acme Corp",
		AssigneeID:    "ZYL0001AA",
		AssigneeName:  "Asha",
		AssigneeEmail: "asha@zylentrix.com",
		Sector:        domain.SectorDigizign,
		DueDate:       dueDate,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(sender.sent) != 1 || sender.sent[0].kind != "task_assigned" {
		t.Fatalf("sent = %+v", sender.sent)
	}
	if sender.sent[0].arg != "Acme Corp" {
		t.Fatalf("lead name = %q", sender.sent[0].arg)
	}

	if len(reminders.scheduled) != 1 {
		t.Fatalf("scheduled %d reminders, want 1", len(reminders.scheduled))
	}
	if reminders.scheduled[0].TaskID != taskID.String() {
		t.Fatalf("reminder task id = %s", reminders.scheduled[0].TaskID)
	}
	wantRunAt := dueDate.Add(-2 * time.Hour)
	if diff := reminders.runAt.Sub(wantRunAt); diff < -time.Second || diff > time.Second {
		t.Fatalf("runAt = %v, want %v", reminders.runAt, wantRunAt)
	}
}

func TestHandleTaskAssignedWithoutScheduler(t *testing.T) {
	sender := &fakeSender{}
	m := NewModule(sender, nil, testConfig(), logger.New("test"))

	err := m.Handle(context.Background(), events.TaskAssigned{
		BaseEvent:     events.NewBaseEvent(),
		TaskID:        uuid.New(),
		LeadID:        uuid.New(),
		LeadName:      "Acme Corp",
		AssigneeEmail: "asha@zylentrix.com",
		DueDate:       time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent = %+v", sender.sent)
	}
}

func TestHandleTaskAssignedPastDueSkipsReminder(t *testing.T) {
	sender := &fakeSender{}
	reminders := &fakeReminders{}
	m := NewModule(sender, reminders, testConfig(), logger.New("test"))

	err := m.Handle(context.Background(), events.TaskAssigned{
		BaseEvent:     events.NewBaseEvent(),
		TaskID:        uuid.New(),
		LeadID:        uuid.New(),
		LeadName:      "Acme Corp",
		AssigneeEmail: "asha@zylentrix.com",
		DueDate:       time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(reminders.scheduled) != 0 {
		t.Fatalf("scheduled %d reminders, want 0", len(reminders.scheduled))
	}
}
