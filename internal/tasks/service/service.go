package service

import (
	"context"
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/tasks/repository"
	"zylentrix_crm_backend/platform/apperr"
	"zylentrix_crm_backend/platform/logger"

	"github.com/google/uuid"
)

// Store is the persistence surface the task service needs.
type Store interface {
	Create(ctx context.Context, params repository.CreateTaskParams) (repository.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.Task, error)
	ListByUser(ctx context.Context, userID string, status *domain.TaskStatus, dueDateDesc *bool) ([]repository.Task, error)
	Update(ctx context.Context, id uuid.UUID, params repository.UpdateTaskParams) (repository.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (repository.Task, error)
	SetFeedback(ctx context.Context, id uuid.UUID, feedback string) (repository.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	UserID      string
	LeadID      uuid.UUID
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *time.Time
	LeadID      *uuid.UUID
}

type ListTasksInput struct {
	UserID string
	Status string
	Sort   string
}

type Service struct {
	store Store
	log   *logger.Logger
}

func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) Create(ctx context.Context, input CreateTaskInput) (repository.Task, error) {
	priority := domain.TaskPriorityMedium
	if input.Priority != "" {
		parsed, ok := domain.ParseTaskPriority(input.Priority)
		if !ok {
			return repository.Task{}, apperr.Validation("invalid priority: " + input.Priority)
		}
		priority = parsed
	}

	return s.store.Create(ctx, repository.CreateTaskParams{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
		Status:      domain.TaskStatusPending,
		UserID:      input.UserID,
		LeadID:      input.LeadID,
	})
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Task, error) {
	return s.store.GetByID(ctx, id)
}

// List returns a user's tasks. Status filters when set, sort accepts
// "dueDate" (ascending) or "-dueDate" (descending).
func (s *Service) List(ctx context.Context, input ListTasksInput) ([]repository.Task, error) {
	var status *domain.TaskStatus
	if input.Status != "" {
		parsed, ok := domain.ParseTaskStatus(input.Status)
		if !ok {
			return nil, apperr.Validation("invalid status: " + input.Status)
		}
		status = &parsed
	}

	var dueDateDesc *bool
	switch input.Sort {
	case "":
	case "dueDate":
		desc := false
		dueDateDesc = &desc
	case "-dueDate":
		desc := true
		dueDateDesc = &desc
	default:
		return nil, apperr.Validation("invalid sort: " + input.Sort)
	}

	return s.store.ListByUser(ctx, input.UserID, status, dueDateDesc)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (repository.Task, error) {
	params := repository.UpdateTaskParams{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		LeadID:      input.LeadID,
	}
	if input.Priority != nil {
		parsed, ok := domain.ParseTaskPriority(*input.Priority)
		if !ok {
			return repository.Task{}, apperr.Validation("invalid priority: " + *input.Priority)
		}
		params.Priority = &parsed
	}

	return s.store.Update(ctx, id, params)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (repository.Task, error) {
	status, ok := domain.ParseTaskStatus(rawStatus)
	if !ok {
		return repository.Task{}, apperr.Validation("invalid status: " + rawStatus)
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// SubmitFeedback records feedback on a task. Only the task's assignee may
// submit feedback; anyone else gets a Forbidden error even when the task
// exists.
func (s *Service) SubmitFeedback(ctx context.Context, id uuid.UUID, actorUserID, feedback string) (repository.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return repository.Task{}, err
	}
	if task.UserID != actorUserID {
		return repository.Task{}, apperr.Forbidden("only the assigned user can submit feedback on this task")
	}

	return s.store.SetFeedback(ctx, id, feedback)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}
