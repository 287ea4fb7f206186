package assignment

import (
	"context"
	"testing"
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/events"
	"zylentrix_crm_backend/internal/tasks/repository"
	"zylentrix_crm_backend/platform/apperr"
	platformevents "zylentrix_crm_backend/platform/events"
	"zylentrix_crm_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	loads   []repository.UserLoad
	lead    repository.LeadRef
	created *repository.CreateTaskParams
}

func (f *fakeStore) Create(_ context.Context, params repository.CreateTaskParams) (repository.Task, error) {
	f.created = &params
	return repository.Task{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		DueDate:     params.DueDate,
		Status:      params.Status,
		UserID:      params.UserID,
		LeadID:      params.LeadID,
	}, nil
}

func (f *fakeStore) ListUserLoads(_ context.Context, _ domain.Sector) ([]repository.UserLoad, error) {
	return f.loads, nil
}

func (f *fakeStore) GetLeadRef(_ context.Context, _ uuid.UUID) (repository.LeadRef, error) {
	return f.lead, nil
}

type captureBus struct {
	published []platformevents.Event
}

func (b *captureBus) Publish(_ context.Context, event platformevents.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event platformevents.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Subscribe(string, platformevents.Handler) {}

func newTestService(store *fakeStore, bus events.Bus) *Service {
	svc := NewService(store, bus, logger.New("test"))
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func load(id string, pending int) repository.UserLoad {
	return repository.UserLoad{
		UserID:       id,
		Name:         "User " + id,
		Email:        id + "@zylentrix.com",
		Sector:       domain.SectorDigizign,
		PendingCount: pending,
	}
}

func TestAssignForLeadPicksLeastLoaded(t *testing.T) {
	store := &fakeStore{
		loads: []repository.UserLoad{load("ZYL0001AA", 3), load("ZYL0002BB", 1), load("ZYL0003CC", 2)},
		lead:  repository.LeadRef{ID: uuid.New(), Name: "Acme", Sector: domain.SectorDigizign},
	}
	bus := &captureBus{}
	svc := newTestService(store, bus)

	assigned, err := svc.AssignForLead(context.Background(), store.lead.ID, domain.SectorDigizign)
	if err != nil {
		t.Fatalf("AssignForLead: %v", err)
	}
	if assigned.Assignee.UserID != "ZYL0002BB" {
		t.Fatalf("assignee = %s, want ZYL0002BB", assigned.Assignee.UserID)
	}
	if store.created == nil {
		t.Fatal("no task created")
	}
	if store.created.Title != "NEW LEAD ADDED" || store.created.Description != "Contact the Lead" {
		t.Fatalf("task title/description = %q/%q", store.created.Title, store.created.Description)
	}
	if store.created.Priority != domain.TaskPriorityHigh {
		t.Fatalf("priority = %s, want HIGH", store.created.Priority)
	}
	if store.created.Status != domain.TaskStatusPending {
		t.Fatalf("status = %s, want PENDING", store.created.Status)
	}
}

func TestAssignForLeadDueDateIsOneDayOut(t *testing.T) {
	store := &fakeStore{
		loads: []repository.UserLoad{load("ZYL0001AA", 0)},
		lead:  repository.LeadRef{ID: uuid.New(), Name: "Acme", Sector: domain.SectorDigizign},
	}
	svc := newTestService(store, &captureBus{})

	assigned, err := svc.AssignForLead(context.Background(), store.lead.ID, domain.SectorDigizign)
	if err != nil {
		t.Fatalf("AssignForLead: %v", err)
	}

	want := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	if assigned.Task.DueDate == nil || !assigned.Task.DueDate.Equal(want) {
		t.Fatalf("due date = %v, want %v", assigned.Task.DueDate, want)
	}
}

func TestAssignForLeadBreaksTiesOnLowestUserID(t *testing.T) {
	store := &fakeStore{
		loads: []repository.UserLoad{load("ZYL0003CC", 2), load("ZYL0001AA", 2), load("ZYL0002BB", 2)},
		lead:  repository.LeadRef{ID: uuid.New(), Name: "Acme", Sector: domain.SectorDigizign},
	}
	svc := newTestService(store, &captureBus{})

	assigned, err := svc.AssignForLead(context.Background(), store.lead.ID, domain.SectorDigizign)
	if err != nil {
		t.Fatalf("AssignForLead: %v", err)
	}
	if assigned.Assignee.UserID != "ZYL0001AA" {
		t.Fatalf("assignee = %s, want ZYL0001AA", assigned.Assignee.UserID)
	}
}

func TestAssignForLeadNoUsersInSector(t *testing.T) {
	store := &fakeStore{
		loads: nil,
		lead:  repository.LeadRef{ID: uuid.New(), Name: "Acme", Sector: domain.SectorUnizeek},
	}
	svc := newTestService(store, &captureBus{})

	_, err := svc.AssignForLead(context.Background(), store.lead.ID, domain.SectorUnizeek)
	if err == nil {
		t.Fatal("expected error for empty sector")
	}
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("error kind = %v, want NotFound", apperr.GetKind(err))
	}
}

func TestAssignForLeadPublishesEvent(t *testing.T) {
	store := &fakeStore{
		loads: []repository.UserLoad{load("ZYL0001AA", 0)},
		lead:  repository.LeadRef{ID: uuid.New(), Name: "Acme", Sector: domain.SectorDigizign},
	}
	bus := &captureBus{}
	svc := newTestService(store, bus)

	assigned, err := svc.AssignForLead(context.Background(), store.lead.ID, domain.SectorDigizign)
	if err != nil {
		t.Fatalf("AssignForLead: %v", err)
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	evt, ok := bus.published[0].(events.TaskAssigned)
	if !ok {
		t.Fatalf("published event type %T", bus.published[0])
	}
	if evt.TaskID != assigned.Task.ID || evt.AssigneeID != "ZYL0001AA" {
		t.Fatalf("event = %+v", evt)
	}
}

func TestSelectLeastLoadedEmpty(t *testing.T) {
	if _, ok := selectLeastLoaded(nil); ok {
		t.Fatal("expected ok=false for empty loads")
	}
}
