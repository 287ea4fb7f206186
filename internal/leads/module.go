// Package leads provides the lead intake bounded context: idempotent lead
// capture keyed by email or phone, plus lead listing.
package leads

import (
	"zylentrix_crm_backend/internal/events"
	apphttp "zylentrix_crm_backend/internal/http"
	"zylentrix_crm_backend/internal/leads/handler"
	"zylentrix_crm_backend/internal/leads/ports"
	"zylentrix_crm_backend/internal/leads/repository"
	"zylentrix_crm_backend/internal/leads/service"
	"zylentrix_crm_backend/platform/logger"
	"zylentrix_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool *pgxpool.Pool, assigner ports.TaskAssigner, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.NewService(repo, assigner, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts lead routes. Intake is public so marketing forms can
// post without credentials; listing requires authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/leads", m.handler.Upsert)
	ctx.Protected.GET("/leads", m.handler.List)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
