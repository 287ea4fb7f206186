// Package dashboard provides the per-sector landing endpoints used by the
// frontend to confirm sector access after login.
package dashboard

import (
	"zylentrix_crm_backend/internal/domain"
	apphttp "zylentrix_crm_backend/internal/http"
	"zylentrix_crm_backend/internal/http/middleware"
	"zylentrix_crm_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module exposes one gated endpoint per sector.
type Module struct{}

func NewModule() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "dashboard"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/dashboard")

	welcomes := map[string]domain.Sector{
		"digizign":   domain.SectorDigizign,
		"zurelabs":   domain.SectorZurelabs,
		"internzity": domain.SectorInternzity,
		"unizeek":    domain.SectorUnizeek,
	}
	for path, sector := range welcomes {
		group.GET("/"+path, middleware.RequireSector(sector), welcomeHandler(sector))
	}
}

func welcomeHandler(sector domain.Sector) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpkit.OK(c, gin.H{"message": "welcome to " + sector.String(), "sector": sector.String()})
	}
}

var _ apphttp.Module = (*Module)(nil)
