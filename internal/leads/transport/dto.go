// Package transport defines the request and response shapes of the leads API.
package transport

import (
	"time"

	"zylentrix_crm_backend/internal/leads/ports"
	"zylentrix_crm_backend/internal/leads/repository"

	"github.com/google/uuid"
)

type UpsertLeadRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=120"`
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone" validate:"omitempty,min=6,max=20"`
	Sector string `json:"sector" validate:"required,sector"`
}

type LeadResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Sector    string    `json:"sector"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AssignedTaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"dueDate"`
	AssigneeID  string    `json:"assigneeId"`
	Assignee    string    `json:"assignee"`
}

// UpsertLeadResponse reports the intake outcome. TaskCreated is false both
// for refreshed existing leads and for new leads whose assignment failed; the
// latter carry TaskError.
type UpsertLeadResponse struct {
	Message     string                `json:"message"`
	Lead        LeadResponse          `json:"lead"`
	TaskCreated bool                  `json:"taskCreated"`
	Task        *AssignedTaskResponse `json:"task,omitempty"`
	TaskError   string                `json:"taskError,omitempty"`
}

type ListLeadsResponse struct {
	Leads []LeadResponse `json:"leads"`
}

func ToLeadResponse(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:        lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Sector:    lead.Sector.String(),
		CreatedAt: lead.CreatedAt,
		UpdatedAt: lead.UpdatedAt,
	}
}

func ToLeadResponses(leads []repository.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, ToLeadResponse(lead))
	}
	return out
}

func ToAssignedTaskResponse(task *ports.AssignedTask) *AssignedTaskResponse {
	if task == nil {
		return nil
	}
	return &AssignedTaskResponse{
		ID:          task.TaskID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		DueDate:     task.DueDate,
		AssigneeID:  task.AssigneeID,
		Assignee:    task.Assignee,
	}
}
