package service

import (
	"context"
	"strings"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/events"
	"zylentrix_crm_backend/internal/leads/ports"
	"zylentrix_crm_backend/internal/leads/repository"
	"zylentrix_crm_backend/platform/apperr"
	"zylentrix_crm_backend/platform/logger"
	"zylentrix_crm_backend/platform/phone"
)

// Store is the persistence surface the lead service needs.
type Store interface {
	Upsert(ctx context.Context, params repository.UpsertLeadParams) (repository.Lead, bool, error)
	List(ctx context.Context, sector *domain.Sector) ([]repository.Lead, error)
}

type UpsertLeadInput struct {
	Name   string
	Email  string
	Phone  string
	Sector string
}

// UpsertLeadResult is the full intake outcome. Created reports whether a new
// lead row was inserted. Task and TaskError are only meaningful when Created
// is true: exactly one of them is set depending on whether auto-assignment
// succeeded.
type UpsertLeadResult struct {
	Lead      repository.Lead
	Created   bool
	Task      *ports.AssignedTask
	TaskError string
}

type Service struct {
	store    Store
	assigner ports.TaskAssigner
	bus      events.Bus
	log      *logger.Logger
}

func NewService(store Store, assigner ports.TaskAssigner, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, assigner: assigner, bus: bus, log: log}
}

// Upsert captures a lead. Matching is by email when provided, by phone
// otherwise, so repeated submissions refresh the existing lead instead of
// duplicating it. Only a genuinely new lead triggers task auto-assignment,
// and an assignment failure never rolls back the stored lead.
func (s *Service) Upsert(ctx context.Context, input UpsertLeadInput) (UpsertLeadResult, error) {
	sector, ok := domain.ParseSector(input.Sector)
	if !ok {
		return UpsertLeadResult{}, apperr.Validation("invalid sector: " + input.Sector)
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	normalizedPhone := phone.NormalizeE164(input.Phone)
	if email == "" && normalizedPhone == "" {
		return UpsertLeadResult{}, apperr.Validation("either email or phone is required")
	}

	params := repository.UpsertLeadParams{Name: strings.TrimSpace(input.Name), Sector: sector}
	if email != "" {
		params.Email = &email
	}
	if normalizedPhone != "" {
		params.Phone = &normalizedPhone
	}

	lead, created, err := s.store.Upsert(ctx, params)
	if err != nil {
		return UpsertLeadResult{}, err
	}

	result := UpsertLeadResult{Lead: lead, Created: created}
	if !created {
		return result, nil
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Sector:    lead.Sector,
	})

	assigned, err := s.assigner.AssignForLead(ctx, lead.ID, lead.Sector)
	if err != nil {
		// The lead stays. Surface the failure so operators can assign by hand.
		s.log.Warn("lead task assignment failed",
			"lead_id", lead.ID.String(),
			"sector", lead.Sector.String(),
			"error", err.Error(),
		)
		result.TaskError = err.Error()
		return result, nil
	}

	result.Task = &assigned
	return result, nil
}

func (s *Service) List(ctx context.Context, rawSector string) ([]repository.Lead, error) {
	if rawSector == "" {
		return s.store.List(ctx, nil)
	}

	sector, ok := domain.ParseSector(rawSector)
	if !ok {
		return nil, apperr.Validation("invalid sector: " + rawSector)
	}
	return s.store.List(ctx, &sector)
}
