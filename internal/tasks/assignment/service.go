// Package assignment distributes new-lead follow-up tasks across the users of
// a sector, always picking the least loaded user.
package assignment

import (
	"context"
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/events"
	"zylentrix_crm_backend/internal/tasks/repository"
	"zylentrix_crm_backend/platform/apperr"
	"zylentrix_crm_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	autoTaskTitle       = "NEW LEAD ADDED"
	autoTaskDescription = "Contact the Lead"

	// New-lead tasks are expected to be acted on within a day.
	followUpWindow = 24 * time.Hour
)

// Store is the persistence surface the assignment service needs.
type Store interface {
	Create(ctx context.Context, params repository.CreateTaskParams) (repository.Task, error)
	ListUserLoads(ctx context.Context, sector domain.Sector) ([]repository.UserLoad, error)
	GetLeadRef(ctx context.Context, leadID uuid.UUID) (repository.LeadRef, error)
}

// AssignedTask is the full assignment result, with the task plus denormalized
// assignee and lead summaries.
type AssignedTask struct {
	Task     repository.Task
	Assignee repository.UserLoad
	Lead     repository.LeadRef
}

type Service struct {
	store Store
	bus   events.Bus
	log   *logger.Logger
	now   func() time.Time
}

func NewService(store Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log, now: time.Now}
}

// AssignForLead creates the follow-up task for a freshly created lead and
// hands it to the least loaded verified user of the lead's sector. Returns a
// NotFound error when the sector has no users to assign to.
func (s *Service) AssignForLead(ctx context.Context, leadID uuid.UUID, sector domain.Sector) (AssignedTask, error) {
	lead, err := s.store.GetLeadRef(ctx, leadID)
	if err != nil {
		return AssignedTask{}, err
	}

	loads, err := s.store.ListUserLoads(ctx, sector)
	if err != nil {
		return AssignedTask{}, err
	}

	assignee, ok := selectLeastLoaded(loads)
	if !ok {
		return AssignedTask{}, apperr.NotFound("no users available in sector " + sector.String())
	}

	dueDate := s.now().Add(followUpWindow)
	task, err := s.store.Create(ctx, repository.CreateTaskParams{
		Title:       autoTaskTitle,
		Description: autoTaskDescription,
		Priority:    domain.TaskPriorityHigh,
		DueDate:     &dueDate,
		Status:      domain.TaskStatusPending,
		UserID:      assignee.UserID,
		LeadID:      lead.ID,
	})
	if err != nil {
		return AssignedTask{}, err
	}

	s.log.TaskAssigned(lead.ID.String(), assignee.UserID, sector.String(), assignee.PendingCount)

	s.bus.Publish(ctx, events.TaskAssigned{
		BaseEvent:     events.NewBaseEvent(),
		TaskID:        task.ID,
		LeadID:        lead.ID,
		LeadName:      lead.Name,
		AssigneeID:    assignee.UserID,
		AssigneeName:  assignee.Name,
		AssigneeEmail: assignee.Email,
		Sector:        sector,
		DueDate:       dueDate,
	})

	return AssignedTask{Task: task, Assignee: assignee, Lead: lead}, nil
}

// GetDistribution reports how pending tasks are spread across a sector's
// users. The assignment algorithm picks from exactly this view.
func (s *Service) GetDistribution(ctx context.Context, sector domain.Sector) ([]repository.UserLoad, error) {
	return s.store.ListUserLoads(ctx, sector)
}

// selectLeastLoaded picks the user with the fewest pending tasks. Ties break
// on the lowest user id so repeated runs over the same loads agree.
func selectLeastLoaded(loads []repository.UserLoad) (repository.UserLoad, bool) {
	if len(loads) == 0 {
		return repository.UserLoad{}, false
	}

	best := loads[0]
	for _, load := range loads[1:] {
		if load.PendingCount < best.PendingCount {
			best = load
			continue
		}
		if load.PendingCount == best.PendingCount && load.UserID < best.UserID {
			best = load
		}
	}
	return best, true
}
