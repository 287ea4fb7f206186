// Package ports defines the outbound interfaces the leads module depends on,
// keeping it decoupled from the modules that fulfil them.
package ports

import (
	"context"
	"time"

	"zylentrix_crm_backend/internal/domain"

	"github.com/google/uuid"
)

// AssignedTask is the follow-up task created for a new lead, with the
// assignee denormalized.
type AssignedTask struct {
	TaskID      uuid.UUID
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     time.Time
	AssigneeID  string
	Assignee    string
	Email       string
}

// TaskAssigner creates and assigns the follow-up task for a freshly created
// lead. Implementations must pick an assignee from the lead's sector.
type TaskAssigner interface {
	AssignForLead(ctx context.Context, leadID uuid.UUID, sector domain.Sector) (AssignedTask, error)
}
