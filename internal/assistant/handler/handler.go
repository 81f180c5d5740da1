// Package handler exposes the public chat endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"realty-portal-backend/internal/assistant/engine"
	"realty-portal-backend/internal/assistant/transport"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/httpkit"
	"realty-portal-backend/platform/validator"
)

// Handler handles HTTP requests for the assistant.
type Handler struct {
	engine *engine.Engine
	val    *validator.Validator
}

// New creates a new assistant handler.
func New(eng *engine.Engine, val *validator.Validator) *Handler {
	return &Handler{engine: eng, val: val}
}

// Chat runs one assistant turn.
// POST /api/v1/chat — any other method gets 405.
func (h *Handler) Chat(c *gin.Context) {
	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.engine.Chat(c.Request.Context(), req)
	if err != nil {
		// The public site shows the error body verbatim, so model and
		// upstream failures all surface as one generic 500 with details.
		var details interface{}
		if appErr, ok := err.(*apperr.Error); ok {
			details = appErr.Details
		}
		httpkit.Error(c, http.StatusInternalServerError, "chat processing failed", details)
		return
	}
	httpkit.OK(c, result)
}

// MethodNotAllowed rejects non-POST access to the chat endpoint.
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	httpkit.Error(c, http.StatusMethodNotAllowed, "method not allowed", nil)
}
