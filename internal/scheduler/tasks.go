// Package scheduler provides the asynq-backed background jobs: deadline
// reminders for auto-assigned follow-up tasks.
package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskDeadlineReminder = "tasks.deadline.reminder"

// DeadlineReminderPayload identifies the task whose deadline is approaching,
// with the recipient denormalized so the worker can email without a user
// lookup.
type DeadlineReminderPayload struct {
	TaskID        string    `json:"taskId"`
	AssigneeEmail string    `json:"assigneeEmail"`
	AssigneeName  string    `json:"assigneeName"`
	DueDate       time.Time `json:"dueDate"`
}

func NewDeadlineReminderTask(payload DeadlineReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDeadlineReminder, data), nil
}

func ParseDeadlineReminderPayload(task *asynq.Task) (DeadlineReminderPayload, error) {
	var payload DeadlineReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DeadlineReminderPayload{}, err
	}
	return payload, nil
}
