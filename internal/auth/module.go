// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"zylentrix_crm_backend/internal/auth/handler"
	"zylentrix_crm_backend/internal/auth/repository"
	"zylentrix_crm_backend/internal/auth/service"
	"zylentrix_crm_backend/internal/events"
	apphttp "zylentrix_crm_backend/internal/http"
	"zylentrix_crm_backend/platform/config"
	"zylentrix_crm_backend/platform/logger"
	"zylentrix_crm_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg *config.Config, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	// Protected account routes
	ctx.Protected.POST("/auth/logout", m.handler.Logout)
	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.DELETE("/auth/delete-account", m.handler.DeleteAccount)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
