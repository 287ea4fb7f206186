// Package tasks provides the task management bounded context: task CRUD,
// feedback, automatic new-lead assignment and the sector distribution report.
package tasks

import (
	"zylentrix_crm_backend/internal/events"
	apphttp "zylentrix_crm_backend/internal/http"
	"zylentrix_crm_backend/internal/tasks/assignment"
	"zylentrix_crm_backend/internal/tasks/handler"
	"zylentrix_crm_backend/internal/tasks/repository"
	"zylentrix_crm_backend/internal/tasks/service"
	"zylentrix_crm_backend/platform/logger"
	"zylentrix_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the tasks bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	assigner *assignment.Service
}

// NewModule creates and initializes the tasks module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, log)
	assigner := assignment.NewService(repo, bus, log)
	h := handler.New(svc, assigner, val)

	return &Module{
		handler:  h,
		assigner: assigner,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tasks"
}

// Assigner exposes the assignment service so the leads module can request
// follow-up tasks for new leads.
func (m *Module) Assigner() *assignment.Service {
	return m.assigner
}

// RegisterRoutes mounts task routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
