// Package agents provides the sales team bounded context module.
package agents

import (
	"realty-portal-backend/internal/agents/handler"
	"realty-portal-backend/internal/agents/repository"
	"realty-portal-backend/internal/agents/service"
	apphttp "realty-portal-backend/internal/http"
	"realty-portal-backend/platform/logger"
	"realty-portal-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the agents bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the agents module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "agents"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts agent routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// The public site shows the team page without authentication.
	ctx.V1.GET("/agents", m.handler.List)
	ctx.V1.GET("/agents/:id", m.handler.GetByID)

	adminGroup := ctx.Admin.Group("/agents")
	adminGroup.POST("", m.handler.Create)
	adminGroup.PUT("/:id", m.handler.Update)
	adminGroup.GET("/stats", m.handler.StatsAll)
	adminGroup.GET("/:id/stats", m.handler.Stats)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
