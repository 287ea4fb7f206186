// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserSignedUp is published when a new user successfully registers.
type UserSignedUp struct {
	BaseEvent
	UserID      string        `json:"userId"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Sector      domain.Sector `json:"sector"`
	VerifyToken string        `json:"verifyToken"`
}

func (e UserSignedUp) EventName() string { return "auth.user.signed_up" }

// EmailVerificationRequested is published when a verification email must be
// (re)sent to a user.
type EmailVerificationRequested struct {
	BaseEvent
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	VerifyToken string `json:"verifyToken"`
}

func (e EmailVerificationRequested) EventName() string { return "auth.email.verification_requested" }

// PasswordResetRequested is published when a user requests a password reset.
type PasswordResetRequested struct {
	BaseEvent
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	ResetToken string `json:"resetToken"`
}

func (e PasswordResetRequested) EventName() string { return "auth.password.reset_requested" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when the upsert inserts a genuinely new lead.
type LeadCreated struct {
	BaseEvent
	LeadID uuid.UUID     `json:"leadId"`
	Name   string        `json:"name"`
	Email  *string       `json:"email,omitempty"`
	Phone  *string       `json:"phone,omitempty"`
	Sector domain.Sector `json:"sector"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// =============================================================================
// Tasks Domain Events
// =============================================================================

// TaskAssigned is published when the assignment service creates a follow-up
// task for a new lead.
type TaskAssigned struct {
	BaseEvent
	TaskID        uuid.UUID     `json:"taskId"`
	LeadID        uuid.UUID     `json:"leadId"`
	LeadName      string        `json:"leadName"`
	AssigneeID    string        `json:"assigneeId"`
	AssigneeName  string        `json:"assigneeName"`
	AssigneeEmail string        `json:"assigneeEmail"`
	Sector        domain.Sector `json:"sector"`
	DueDate       time.Time     `json:"dueDate"`
}

func (e TaskAssigned) EventName() string { return "tasks.task.assigned" }
