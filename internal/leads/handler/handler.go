package handler

import (
	"net/http"

	"zylentrix_crm_backend/internal/leads/service"
	"zylentrix_crm_backend/internal/leads/transport"
	"zylentrix_crm_backend/platform/httpkit"
	"zylentrix_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Upsert captures a lead from an intake form. New leads additionally get a
// follow-up task auto-assigned within their sector.
func (h *Handler) Upsert(c *gin.Context) {
	var req transport.UpsertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Upsert(c.Request.Context(), service.UpsertLeadInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Sector: req.Sector,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.UpsertLeadResponse{
		Lead:        transport.ToLeadResponse(result.Lead),
		TaskCreated: result.Task != nil,
		Task:        transport.ToAssignedTaskResponse(result.Task),
		TaskError:   result.TaskError,
	}

	if !result.Created {
		resp.Message = "lead updated"
		httpkit.OK(c, resp)
		return
	}

	resp.Message = "lead created"
	httpkit.Created(c, resp)
}

func (h *Handler) List(c *gin.Context) {
	leads, err := h.svc.List(c.Request.Context(), c.Query("sector"))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ListLeadsResponse{Leads: transport.ToLeadResponses(leads)})
}
