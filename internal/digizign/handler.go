package digizign

import (
	"net/http"
	"time"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/platform/httpkit"
	"zylentrix_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateClientRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	LeadSource  *string `json:"leadSource"`
	AssignedBDE *string `json:"assignedBDE"`
	Status      string  `json:"status" validate:"omitempty,oneof=NEW IN_TALKS CONTRACT_SIGNED CHURNED"`
}

type CreateCampaignRequest struct {
	Name       string    `json:"name" validate:"required,min=2,max=200"`
	Type       string    `json:"type" validate:"required"`
	Budget     float64   `json:"budget" validate:"required,gt=0"`
	Spend      float64   `json:"spend" validate:"gte=0"`
	Engagement float64   `json:"engagement" validate:"gte=0"`
	ROI        float64   `json:"roi"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	Status     string    `json:"status" validate:"required,oneof=PLANNED LIVE_CAMPAIGN PAUSED COMPLETED"`
	Scope      *string   `json:"scope"`
	ClientID   uuid.UUID `json:"clientId" validate:"required"`
}

type CreateFeedbackRequest struct {
	CampaignID uuid.UUID `json:"campaignId" validate:"required"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comments   *string   `json:"comments"`
}

type Handler struct {
	repo *Repository
	val  *validator.Validator
}

func NewHandler(repo *Repository, val *validator.Validator) *Handler {
	return &Handler{repo: repo, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/clients", h.CreateClient)
	rg.GET("/clients", h.ListClients)
	rg.POST("/campaigns", h.CreateCampaign)
	rg.GET("/campaigns", h.ListCampaigns)
	rg.GET("/campaigns/active", h.CountActiveCampaigns)
	rg.POST("/feedbacks", h.CreateFeedback)
	rg.GET("/feedbacks/:campaignId", h.ListFeedbacks)
	rg.GET("/metrics", h.GetMetrics)
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = ClientStatusNew
	}

	client, err := h.repo.CreateClient(c.Request.Context(), Client{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		LeadSource:  req.LeadSource,
		AssignedBDE: req.AssignedBDE,
		Status:      status,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, gin.H{"message": "client created", "client": client})
}

func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.repo.ListClients(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"count": len(clients), "clients": clients})
}

func (h *Handler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	if !req.EndDate.After(req.StartDate) {
		httpkit.Error(c, http.StatusBadRequest, "endDate must be after startDate", nil)
		return
	}

	status, _ := domain.ParseCampaignStatus(req.Status)
	campaign, err := h.repo.CreateCampaign(c.Request.Context(), Campaign{
		Name:       req.Name,
		Type:       req.Type,
		Budget:     req.Budget,
		Spend:      req.Spend,
		Engagement: req.Engagement,
		ROI:        req.ROI,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     status,
		Scope:      req.Scope,
		ClientID:   req.ClientID,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, gin.H{"message": "campaign created", "campaign": campaign})
}

func (h *Handler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.repo.ListCampaigns(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"count": len(campaigns), "campaigns": campaigns})
}

func (h *Handler) CountActiveCampaigns(c *gin.Context) {
	count, err := h.repo.CountActiveCampaigns(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"activeCampaignCount": count})
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	feedback, err := h.repo.CreateFeedback(c.Request.Context(), Feedback{
		CampaignID: req.CampaignID,
		Rating:     req.Rating,
		Comments:   req.Comments,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, gin.H{"message": "feedback added", "feedback": feedback})
}

func (h *Handler) ListFeedbacks(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaignId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return
	}

	feedbacks, err := h.repo.ListFeedbacks(c.Request.Context(), campaignID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"count": len(feedbacks), "feedbacks": feedbacks})
}

func (h *Handler) GetMetrics(c *gin.Context) {
	metrics, err := h.repo.GetMetrics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{
		"totalRunning":       metrics.TotalRunning,
		"avgEngagement":      metrics.AvgEngagement,
		"leadConversionRate": metrics.LeadConversionRate,
		"totalROI":           metrics.TotalROI,
		"budget":             metrics.Budget,
		"spend":              metrics.Spend,
		"upcomingDeadlines":  metrics.UpcomingDeadlines,
	})
}
