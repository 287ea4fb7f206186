package service

import (
	"context"
	"testing"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/tasks/repository"
	"zylentrix_crm_backend/platform/apperr"
	"zylentrix_crm_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	tasks map[uuid.UUID]repository.Task
}

func newFakeStore(tasks ...repository.Task) *fakeStore {
	store := &fakeStore{tasks: make(map[uuid.UUID]repository.Task)}
	for _, task := range tasks {
		store.tasks[task.ID] = task
	}
	return store
}

func (f *fakeStore) Create(_ context.Context, params repository.CreateTaskParams) (repository.Task, error) {
	task := repository.Task{
		ID:       uuid.New(),
		Title:    params.Title,
		Priority: params.Priority,
		Status:   params.Status,
		UserID:   params.UserID,
		LeadID:   params.LeadID,
	}
	f.tasks[task.ID] = task
	return task, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (repository.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return repository.Task{}, apperr.NotFound("task not found")
	}
	return task, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string, _ *domain.TaskStatus, _ *bool) ([]repository.Task, error) {
	var out []repository.Task
	for _, task := range f.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id uuid.UUID, _ repository.UpdateTaskParams) (repository.Task, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, status domain.TaskStatus) (repository.Task, error) {
	task, err := f.GetByID(context.Background(), id)
	if err != nil {
		return repository.Task{}, err
	}
	task.Status = status
	f.tasks[id] = task
	return task, nil
}

func (f *fakeStore) SetFeedback(_ context.Context, id uuid.UUID, feedback string) (repository.Task, error) {
	task, err := f.GetByID(context.Background(), id)
	if err != nil {
		return repository.Task{}, err
	}
	task.Feedback = &feedback
	f.tasks[id] = task
	return task, nil
}

func (f *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.tasks[id]; !ok {
		return apperr.NotFound("task not found")
	}
	delete(f.tasks, id)
	return nil
}

func TestSubmitFeedbackByAssignee(t *testing.T) {
	taskID := uuid.New()
	store := newFakeStore(repository.Task{ID: taskID, UserID: "ZYL0001AA", Status: domain.TaskStatusPending})
	svc := NewService(store, logger.New("test"))

	updated, err := svc.SubmitFeedback(context.Background(), taskID, "ZYL0001AA", "lead contacted, waiting on budget")
	if err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if updated.Feedback == nil || *updated.Feedback != "lead contacted, waiting on budget" {
		t.Fatalf("feedback = %v", updated.Feedback)
	}
}

func TestSubmitFeedbackByOtherUserForbidden(t *testing.T) {
	taskID := uuid.New()
	store := newFakeStore(repository.Task{ID: taskID, UserID: "ZYL0001AA"})
	svc := NewService(store, logger.New("test"))

	_, err := svc.SubmitFeedback(context.Background(), taskID, "ZYL0002BB", "nope")
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("error kind = %v, want Forbidden", apperr.GetKind(err))
	}
	if stored := store.tasks[taskID]; stored.Feedback != nil {
		t.Fatal("feedback must not be stored on authorization failure")
	}
}

func TestSubmitFeedbackUnknownTask(t *testing.T) {
	svc := NewService(newFakeStore(), logger.New("test"))

	_, err := svc.SubmitFeedback(context.Background(), uuid.New(), "ZYL0001AA", "hello")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("error kind = %v, want NotFound", apperr.GetKind(err))
	}
}

func TestCreateRejectsUnknownPriority(t *testing.T) {
	svc := NewService(newFakeStore(), logger.New("test"))

	_, err := svc.Create(context.Background(), CreateTaskInput{
		Title:    "Call back",
		Priority: "URGENT",
		UserID:   "ZYL0001AA",
		LeadID:   uuid.New(),
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("error kind = %v, want Validation", apperr.GetKind(err))
	}
}

func TestCreateDefaultsToMediumPending(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, logger.New("test"))

	task, err := svc.Create(context.Background(), CreateTaskInput{
		Title:  "Call back",
		UserID: "ZYL0001AA",
		LeadID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Priority != domain.TaskPriorityMedium {
		t.Fatalf("priority = %s, want MEDIUM", task.Priority)
	}
	if task.Status != domain.TaskStatusPending {
		t.Fatalf("status = %s, want PENDING", task.Status)
	}
}

func TestListRejectsUnknownSort(t *testing.T) {
	svc := NewService(newFakeStore(), logger.New("test"))

	_, err := svc.List(context.Background(), ListTasksInput{UserID: "ZYL0001AA", Sort: "priority"})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("error kind = %v, want Validation", apperr.GetKind(err))
	}
}
