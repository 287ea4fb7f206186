package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/events"
	"zylentrix_crm_backend/internal/leads/ports"
	"zylentrix_crm_backend/internal/leads/repository"
	"zylentrix_crm_backend/platform/apperr"
	platformevents "zylentrix_crm_backend/platform/events"
	"zylentrix_crm_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	lead     repository.Lead
	inserted bool
	params   *repository.UpsertLeadParams
}

func (f *fakeStore) Upsert(_ context.Context, params repository.UpsertLeadParams) (repository.Lead, bool, error) {
	f.params = &params
	lead := f.lead
	if lead.ID == uuid.Nil {
		lead = repository.Lead{
			ID:     uuid.New(),
			Name:   params.Name,
			Email:  params.Email,
			Phone:  params.Phone,
			Sector: params.Sector,
		}
	}
	return lead, f.inserted, nil
}

func (f *fakeStore) List(_ context.Context, _ *domain.Sector) ([]repository.Lead, error) {
	return []repository.Lead{f.lead}, nil
}

type fakeAssigner struct {
	task  ports.AssignedTask
	err   error
	calls int
}

func (f *fakeAssigner) AssignForLead(_ context.Context, leadID uuid.UUID, _ domain.Sector) (ports.AssignedTask, error) {
	f.calls++
	if f.err != nil {
		return ports.AssignedTask{}, f.err
	}
	task := f.task
	task.TaskID = uuid.New()
	return task, nil
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

func TestUpsertNewLeadAssignsTask(t *testing.T) {
	store := &fakeStore{inserted: true}
	assigner := &fakeAssigner{task: ports.AssignedTask{
		Title:      "NEW LEAD ADDED",
		AssigneeID: "ZYL0001AA",
		DueDate:    time.Now().Add(24 * time.Hour),
	}}
	bus := &captureBus{}
	svc := NewService(store, assigner, bus, logger.New("test"))

	result, err := svc.Upsert(context.Background(), UpsertLeadInput{
		Name:   "Acme Corp",
		Email:  "Contact@Acme.example",
		Sector: "DIGIZIGN",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !result.Created {
		t.Fatal("expected Created=true")
	}
	if result.Task == nil || result.Task.AssigneeID != "ZYL0001AA" {
		t.Fatalf("task = %+v", result.Task)
	}
	if assigner.calls != 1 {
		t.Fatalf("assigner called %d times, want 1", assigner.calls)
	}
	if store.params.Email == nil || *store.params.Email != "contact@acme.example" {
		t.Fatalf("email not lowercased: %v", store.params.Email)
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	if _, ok := bus.published[0].(events.LeadCreated); !ok {
		t.Fatalf("published event type %T", bus.published[0])
	}
}

func TestUpsertExistingLeadSkipsAssignment(t *testing.T) {
	store := &fakeStore{inserted: false}
	assigner := &fakeAssigner{}
	bus := &captureBus{}
	svc := NewService(store, assigner, bus, logger.New("test"))

	result, err := svc.Upsert(context.Background(), UpsertLeadInput{
		Name:   "Acme Corp",
		Email:  "contact@acme.example",
		Sector: "DIGIZIGN",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if result.Created {
		t.Fatal("expected Created=false for refreshed lead")
	}
	if result.Task != nil {
		t.Fatal("no task should be created for a refreshed lead")
	}
	if assigner.calls != 0 {
		t.Fatalf("assigner called %d times, want 0", assigner.calls)
	}
	if len(bus.published) != 0 {
		t.Fatalf("published %d events, want 0", len(bus.published))
	}
}

func TestUpsertAssignmentFailureKeepsLead(t *testing.T) {
	store := &fakeStore{inserted: true}
	assigner := &fakeAssigner{err: errors.New("no users available in sector UNIZEEK")}
	svc := NewService(store, assigner, &captureBus{}, logger.New("test"))

	result, err := svc.Upsert(context.Background(), UpsertLeadInput{
		Name:   "Acme Corp",
		Phone:  "+919876543210",
		Sector: "UNIZEEK",
	})
	if err != nil {
		t.Fatalf("Upsert must not fail when assignment fails: %v", err)
	}
	if !result.Created {
		t.Fatal("expected Created=true")
	}
	if result.Task != nil {
		t.Fatal("no task expected on assignment failure")
	}
	if result.TaskError == "" {
		t.Fatal("expected TaskError to carry the assignment failure")
	}
}

func TestUpsertRequiresEmailOrPhone(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeAssigner{}, &captureBus{}, logger.New("test"))

	_, err := svc.Upsert(context.Background(), UpsertLeadInput{
		Name:   "Acme Corp",
		Sector: "DIGIZIGN",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("error kind = %v, want Validation", apperr.GetKind(err))
	}
}

func TestUpsertRejectsUnknownSector(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeAssigner{}, &captureBus{}, logger.New("test"))

	_, err := svc.Upsert(context.Background(), UpsertLeadInput{
		Name:   "Acme Corp",
		Email:  "contact@acme.example",
		Sector: "MARKETING",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("error kind = %v, want Validation", apperr.GetKind(err))
	}
}

func TestUpsertNormalizesPhone(t *testing.T) {
	store := &fakeStore{inserted: true}
	svc := NewService(store, &fakeAssigner{}, &captureBus{}, logger.New("test"))

	_, err := svc.Upsert(context.Background(), UpsertLeadInput{
		Name:   "Acme Corp",
		Phone:  "98765 43210",
		Sector: "ZURELABS",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if store.params.Phone == nil || *store.params.Phone != "+919876543210" {
		t.Fatalf("phone = %v, want +919876543210", store.params.Phone)
	}
}
