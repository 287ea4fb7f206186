package scheduler

import (
	"context"
	"testing"
	"time"

	"zylentrix_crm_backend/platform/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

func TestScheduleDeadlineReminder(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := &config.Config{
		RedisURL:   "redis://" + srv.Addr(),
		AsynqQueue: "crm",
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	payload := DeadlineReminderPayload{
		TaskID:        "5f7b2c1e-8f4a-4c2b-9d3e-1a2b3c4d5e6f",
		AssigneeEmail: "user@zylentrix.com",
		AssigneeName:  "Test User",
		DueDate:       time.Now().Add(24 * time.Hour),
	}
	runAt := time.Now().Add(22 * time.Hour)

	if err := client.ScheduleDeadlineReminder(context.Background(), payload, runAt); err != nil {
		t.Fatalf("ScheduleDeadlineReminder: %v", err)
	}

	opt, err := redisClientOpt(cfg.RedisURL)
	if err != nil {
		t.Fatalf("redisClientOpt: %v", err)
	}
	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	scheduled, err := inspector.ListScheduledTasks("crm")
	if err != nil {
		t.Fatalf("ListScheduledTasks: %v", err)
	}
	if len(scheduled) != 1 {
		t.Fatalf("scheduled %d tasks, want 1", len(scheduled))
	}
	if scheduled[0].Type != TaskDeadlineReminder {
		t.Fatalf("task type = %s, want %s", scheduled[0].Type, TaskDeadlineReminder)
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	_, err := NewClient(&config.Config{})
	if err == nil {
		t.Fatal("expected error when redis url is empty")
	}
}
