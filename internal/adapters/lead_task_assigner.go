// Package adapters connects module ports to the modules that implement them,
// keeping the bounded contexts free of direct dependencies on each other.
package adapters

import (
	"context"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/leads/ports"
	"zylentrix_crm_backend/internal/tasks/assignment"

	"github.com/google/uuid"
)

// LeadTaskAssigner satisfies the leads module's TaskAssigner port with the
// tasks module's assignment service.
type LeadTaskAssigner struct {
	assigner *assignment.Service
}

func NewLeadTaskAssigner(assigner *assignment.Service) *LeadTaskAssigner {
	return &LeadTaskAssigner{assigner: assigner}
}

func (a *LeadTaskAssigner) AssignForLead(ctx context.Context, leadID uuid.UUID, sector domain.Sector) (ports.AssignedTask, error) {
	assigned, err := a.assigner.AssignForLead(ctx, leadID, sector)
	if err != nil {
		return ports.AssignedTask{}, err
	}

	result := ports.AssignedTask{
		TaskID:      assigned.Task.ID,
		Title:       assigned.Task.Title,
		Description: assigned.Task.Description,
		Priority:    assigned.Task.Priority.String(),
		Status:      assigned.Task.Status.String(),
		AssigneeID:  assigned.Assignee.UserID,
		Assignee:    assigned.Assignee.Name,
		Email:       assigned.Assignee.Email,
	}
	if assigned.Task.DueDate != nil {
		result.DueDate = *assigned.Task.DueDate
	}
	return result, nil
}

var _ ports.TaskAssigner = (*LeadTaskAssigner)(nil)
