package handler

import (
	"net/http"

	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/http/middleware"
	"zylentrix_crm_backend/internal/tasks/assignment"
	"zylentrix_crm_backend/internal/tasks/service"
	"zylentrix_crm_backend/internal/tasks/transport"
	"zylentrix_crm_backend/platform/httpkit"
	"zylentrix_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidTaskID    = "invalid task id"
)

type Handler struct {
	svc      *service.Service
	assigner *assignment.Service
	val      *validator.Validator
}

func New(svc *service.Service, assigner *assignment.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, assigner: assigner, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	tasks.POST("", h.Create)
	tasks.GET("", h.List)
	tasks.GET("/:taskId", h.GetByID)
	tasks.PUT("/:taskId", h.Update)
	tasks.PATCH("/:taskId/status", h.UpdateStatus)
	tasks.POST("/:taskId/feedback", h.SubmitFeedback)
	tasks.DELETE("/:taskId", h.Delete)

	// Distribution lives under its own prefix so the taskId wildcard above
	// stays unambiguous.
	rg.GET("/assignments/distribution/:sector", h.GetDistribution)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	task, err := h.svc.Create(c.Request.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		UserID:      req.UserID,
		LeadID:      req.LeadID,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToTaskResponse(task))
}

// List returns the caller's tasks unless userId explicitly targets another
// user.
func (h *Handler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		actor, ok := middleware.UserIDFrom(c)
		if !ok {
			httpkit.Error(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		userID = actor
	}

	tasks, err := h.svc.List(c.Request.Context(), service.ListTasksInput{
		UserID: userID,
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"tasks": transport.ToTaskResponses(tasks)})
}

func (h *Handler) GetByID(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidTaskID, nil)
		return
	}

	task, err := h.svc.GetByID(c.Request.Context(), taskID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToTaskResponse(task))
}

func (h *Handler) Update(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidTaskID, nil)
		return
	}

	var req transport.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	task, err := h.svc.Update(c.Request.Context(), taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		LeadID:      req.LeadID,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToTaskResponse(task))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidTaskID, nil)
		return
	}

	var req transport.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	task, err := h.svc.UpdateStatus(c.Request.Context(), taskID, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToTaskResponse(task))
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidTaskID, nil)
		return
	}

	actor, ok := middleware.UserIDFrom(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req transport.TaskFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	task, err := h.svc.SubmitFeedback(c.Request.Context(), taskID, actor, req.Feedback)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToTaskResponse(task))
}

func (h *Handler) Delete(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidTaskID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), taskID)) {
		return
	}

	httpkit.OK(c, gin.H{"message": "task deleted"})
}

func (h *Handler) GetDistribution(c *gin.Context) {
	sector, ok := domain.ParseSector(c.Param("sector"))
	if !ok {
		httpkit.Error(c, http.StatusBadRequest, "invalid sector: "+c.Param("sector"), nil)
		return
	}

	loads, err := h.assigner.GetDistribution(c.Request.Context(), sector)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.DistributionResponse{
		Sector: sector.String(),
		Users:  transport.ToUserLoadResponses(loads),
	})
}
