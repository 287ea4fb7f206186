package internzity

import (
	"net/http"

	"zylentrix_crm_backend/internal/domain"
	apphttp "zylentrix_crm_backend/internal/http"
	"zylentrix_crm_backend/internal/http/middleware"
	"zylentrix_crm_backend/platform/httpkit"
	"zylentrix_crm_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Module is the Internzity sector module implementing http.Module.
type Module struct {
	client *Client
}

func NewModule(backendURL string, log *logger.Logger) *Module {
	return &Module{client: NewClient(backendURL, log)}
}

func (m *Module) Name() string {
	return "internzity"
}

// RegisterRoutes mounts the live metrics proxy, restricted to Internzity
// users.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/internzity")
	group.Use(middleware.RequireSector(domain.SectorInternzity))
	group.GET("/metrics/live", m.GetLiveMetrics)
}

func (m *Module) GetLiveMetrics(c *gin.Context) {
	data, err := m.client.FetchLiveMetrics(c.Request.Context())
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "failed to fetch live metrics", err.Error())
		return
	}

	httpkit.OK(c, gin.H{"message": "live metrics fetched", "data": data})
}

var _ apphttp.Module = (*Module)(nil)
