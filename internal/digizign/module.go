package digizign

import (
	"zylentrix_crm_backend/internal/domain"
	apphttp "zylentrix_crm_backend/internal/http"
	"zylentrix_crm_backend/internal/http/middleware"
	"zylentrix_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the DigiZign sector module implementing http.Module.
type Module struct {
	handler *Handler
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	return &Module{handler: NewHandler(NewRepository(pool), val)}
}

func (m *Module) Name() string {
	return "digizign"
}

// RegisterRoutes mounts the DigiZign routes, restricted to DigiZign users.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/digizign")
	group.Use(middleware.RequireSector(domain.SectorDigizign))
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
