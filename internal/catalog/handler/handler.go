// Package handler exposes the catalog's HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty-portal-backend/internal/catalog/service"
	"realty-portal-backend/platform/httpkit"
	"realty-portal-backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid property id"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListPublished returns the public catalog.
// GET /api/v1/properties
func (h *Handler) ListPublished(c *gin.Context) {
	httpkit.OK(c, h.svc.ListPublished(c.Request.Context()))
}

// GetPublishedByID returns one public listing.
// GET /api/v1/properties/:id
func (h *Handler) GetPublishedByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, "property not found", nil)
		return
	}

	result, err := h.svc.GetPublishedByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SubmitProperty accepts a public listing submission for review.
// POST /api/v1/properties/submissions
func (h *Handler) SubmitProperty(c *gin.Context) {
	req, ok := h.bindCreateRequest(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req, false)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, result)
}
