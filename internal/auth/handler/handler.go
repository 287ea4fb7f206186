package handler

import (
	"errors"
	"net/http"

	"zylentrix_crm_backend/internal/auth/service"
	"zylentrix_crm_backend/internal/auth/transport"
	"zylentrix_crm_backend/internal/domain"
	"zylentrix_crm_backend/internal/http/middleware"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
	rg.GET("/verify", h.VerifyEmail)
	rg.POST("/resend-verification", h.ResendVerification)
	rg.POST("/forgot-password", h.ForgotPassword)
	rg.POST("/reset-password", h.ResetPassword)
}

func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	sector, _ := domain.ParseSector(req.Sector)
	if err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, sector); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpkit.Error(c, http.StatusConflict, err.Error(), nil)
			return
		}
		httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	httpkit.Created(c, gin.H{"message": "registered, please check your email"})
}

func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	accessToken, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotVerified):
			httpkit.Error(c, http.StatusForbidden, err.Error(), nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			httpkit.Error(c, http.StatusUnauthorized, err.Error(), nil)
		default:
			httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}

	httpkit.OK(c, transport.LoginResponse{AccessToken: accessToken})
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		httpkit.Error(c, http.StatusBadRequest, "token is required", nil)
		return
	}

	if err := h.svc.VerifyEmail(c.Request.Context(), rawToken); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	httpkit.OK(c, gin.H{"message": "email verified successfully"})
}

func (h *Handler) ResendVerification(c *gin.Context) {
	var req transport.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrAlreadyVerified) {
			httpkit.Error(c, http.StatusConflict, err.Error(), nil)
			return
		}
		httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	httpkit.OK(c, gin.H{"message": "verification email sent if the address exists"})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req transport.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	httpkit.OK(c, gin.H{"message": "reset email sent if the address exists"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req transport.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	httpkit.OK(c, gin.H{"message": "password updated"})
}

// Logout acknowledges the client discarding its token. Access tokens are
// stateless so there is nothing to revoke server-side.
func (h *Handler) Logout(c *gin.Context) {
	httpkit.OK(c, gin.H{"message": "logged out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	user, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
		return
	}

	httpkit.OK(c, transport.ProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Sector:        user.Sector.String(),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req transport.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.DeleteAccount(c.Request.Context(), userID, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpkit.Error(c, http.StatusForbidden, err.Error(), nil)
		case errors.Is(err, service.ErrUserNotFound):
			httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
		default:
			httpkit.Error(c, http.StatusInternalServerError, err.Error(), nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
