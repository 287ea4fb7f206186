package zurelabs

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
	Name     string  `json:"name" validate:"required,min=2,max=120"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Company  *string `json:"company"`
	IsActive *bool   `json:"isActive"`
}

type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=200"`
	Description *string    `json:"description"`
	ClientID    uuid.UUID  `json:"clientId" validate:"required"`
	Deadline    *time.Time `json:"deadline"`
}

type CreateProposalRequest struct {
	Title    string    `json:"title" validate:"required,min=2,max=200"`
	Amount   float64   `json:"amount" validate:"required,gt=0"`
	Status   string    `json:"status" validate:"omitempty,oneof=PENDING SENT ACCEPTED REJECTED PAID"`
	ClientID uuid.UUID `json:"clientId" validate:"required"`
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
	rg.GET("/clients/active", h.ListActiveClients)
	rg.POST("/projects", h.CreateProject)
	rg.GET("/projects", h.ListProjects)
	rg.POST("/proposals", h.CreateProposal)
	rg.GET("/proposals/:status", h.ListProposalsByStatus)
	rg.GET("/revenue/total", h.GetTotalRevenue)
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

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	client, err := h.repo.CreateClient(c.Request.Context(), Client{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		IsActive: isActive,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, gin.H{"message": "client added", "client": client})
}

func (h *Handler) ListActiveClients(c *gin.Context) {
	clients, err := h.repo.ListActiveClients(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"clients": clients})
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	project, err := h.repo.CreateProject(c.Request.Context(), Project{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		Deadline:    req.Deadline,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, gin.H{"message": "project created", "project": project})
}

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.repo.ListProjects(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"projects": projects})
}

func (h *Handler) CreateProposal(c *gin.Context) {
	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	status := domain.ProposalStatusPending
	if req.Status != "" {
		status, _ = domain.ParseProposalStatus(req.Status)
	}

	proposal, err := h.repo.CreateProposal(c.Request.Context(), Proposal{
		Title:    req.Title,
		Amount:   req.Amount,
		Status:   status,
		ClientID: req.ClientID,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, gin.H{"message": "proposal added", "proposal": proposal})
}

func (h *Handler) ListProposalsByStatus(c *gin.Context) {
	status, ok := domain.ParseProposalStatus(c.Param("status"))
	if !ok {
		httpkit.Error(c, http.StatusBadRequest, "invalid proposal status", nil)
		return
	}

	proposals, err := h.repo.ListProposalsByStatus(c.Request.Context(), status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"proposals": proposals})
}

func (h *Handler) GetTotalRevenue(c *gin.Context) {
	revenue, err := h.repo.TotalPaidRevenue(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"message": "total revenue fetched", "revenue": revenue})
}
