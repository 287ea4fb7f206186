// Package transport defines the request and response shapes of the tasks API.
package transport

import (
	"time"

	"zylentrix_crm_backend/internal/tasks/repository"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=2,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      string     `json:"userId" validate:"required"`
	LeadID      uuid.UUID  `json:"leadId" validate:"required"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"dueDate"`
	LeadID      *uuid.UUID `json:"leadId"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

type TaskFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required,min=1,max=2000"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status"`
	Feedback    *string    `json:"feedback,omitempty"`
	UserID      string     `json:"userId"`
	LeadID      uuid.UUID  `json:"leadId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type AssigneeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Sector string `json:"sector"`
}

type LeadRefResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  *string   `json:"email,omitempty"`
	Phone  *string   `json:"phone,omitempty"`
	Sector string    `json:"sector"`
}

// AssignedTaskResponse is the auto-assignment result with the assignee and
// lead denormalized so clients need no follow-up fetches.
type AssignedTaskResponse struct {
	Task     TaskResponse     `json:"task"`
	Assignee AssigneeResponse `json:"assignedTo"`
	Lead     LeadRefResponse  `json:"lead"`
}

type UserLoadResponse struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PendingCount int    `json:"pendingTasks"`
}

type DistributionResponse struct {
	Sector string             `json:"sector"`
	Users  []UserLoadResponse `json:"users"`
}

func ToTaskResponse(task repository.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority.String(),
		DueDate:     task.DueDate,
		Status:      task.Status.String(),
		Feedback:    task.Feedback,
		UserID:      task.UserID,
		LeadID:      task.LeadID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func ToTaskResponses(tasks []repository.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, ToTaskResponse(task))
	}
	return out
}

func ToUserLoadResponses(loads []repository.UserLoad) []UserLoadResponse {
	out := make([]UserLoadResponse, 0, len(loads))
	for _, load := range loads {
		out = append(out, UserLoadResponse{
			UserID:       load.UserID,
			Name:         load.Name,
			Email:        load.Email,
			PendingCount: load.PendingCount,
		})
	}
	return out
}
