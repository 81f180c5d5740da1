// Package catalog provides the property catalog bounded context module.
package catalog

import (
	"realty-portal-backend/internal/catalog/handler"
	"realty-portal-backend/internal/catalog/repository"
	"realty-portal-backend/internal/catalog/service"
	"realty-portal-backend/internal/events"
	apphttp "realty-portal-backend/internal/http"
	"realty-portal-backend/internal/storage"
	"realty-portal-backend/platform/config"
	"realty-portal-backend/platform/logger"
	"realty-portal-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module. storageSvc may be nil
// when MinIO is not configured; image uploads then fail with 502.
func NewModule(pool *pgxpool.Pool, storageSvc storage.ObjectStorage, cfg *config.Config, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)

	cache := service.NewReadCache(cfg.GetRedisURL(), cfg.GetCatalogCacheTTL())
	svc := service.New(repo, storageSvc, cfg.GetMinIOBucketPropertyImages(), cache, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public catalog endpoints
	ctx.V1.GET("/properties", m.handler.ListPublished)
	ctx.V1.GET("/properties/:id", m.handler.GetPublishedByID)
	ctx.V1.POST("/properties/submissions", m.handler.SubmitProperty)

	// Admin CRUD endpoints
	adminGroup := ctx.Admin.Group("/properties")
	adminGroup.GET("", m.handler.ListAll)
	adminGroup.GET("/pending", m.handler.ListPending)
	adminGroup.POST("", m.handler.Create)
	adminGroup.POST("/images", m.handler.UploadImage)
	adminGroup.GET("/:id", m.handler.GetByID)
	adminGroup.PUT("/:id", m.handler.Update)
	adminGroup.PATCH("/:id/status", m.handler.UpdateStatus)
	adminGroup.PATCH("/:id/agent", m.handler.AssignAgent)
	adminGroup.POST("/:id/approve", m.handler.Approve)
	adminGroup.DELETE("/:id", m.handler.Archive)

	adminGroup.GET("/:id/notes", m.handler.ListNotes)
	adminGroup.POST("/:id/notes", m.handler.AddNote)
	adminGroup.PUT("/:id/notes/:noteId", m.handler.UpdateNote)
	adminGroup.DELETE("/:id/notes/:noteId", m.handler.DeleteNote)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
