package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty-portal-backend/internal/catalog/transport"
	"realty-portal-backend/platform/httpkit"
)

// ListAll returns all non-archived listings for the admin console.
// GET /api/v1/admin/properties
func (h *Handler) ListAll(c *gin.Context) {
	var req transport.ListPropertiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListAll(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListPending returns the review queue of public submissions.
// GET /api/v1/admin/properties/pending
func (h *Handler) ListPending(c *gin.Context) {
	result, err := h.svc.ListPending(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByID returns any non-archived listing.
// GET /api/v1/admin/properties/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create creates a published listing from the admin form.
// POST /api/v1/admin/properties
func (h *Handler) Create(c *gin.Context) {
	req, ok := h.bindCreateRequest(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req, true)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Update applies a partial update to a listing.
// PUT /api/v1/admin/properties/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	var req transport.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStatus changes a listing's lifecycle status.
// PATCH /api/v1/admin/properties/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AssignAgent assigns or clears the responsible agent.
// PATCH /api/v1/admin/properties/:id/agent
func (h *Handler) AssignAgent(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	var req transport.AssignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.AssignAgent(c.Request.Context(), id, req.AgentID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Approve publishes a pending submission.
// POST /api/v1/admin/properties/:id/approve
func (h *Handler) Approve(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	result, err := h.svc.Approve(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Archive soft-deletes a listing.
// DELETE /api/v1/admin/properties/:id
func (h *Handler) Archive(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Archive(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage stores an image and returns its public URL.
// POST /api/v1/admin/properties/images
func (h *Handler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "failed to read file", nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	result, err := h.svc.UploadImage(c.Request.Context(), header.Filename, contentType, data)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

func (h *Handler) propertyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) bindCreateRequest(c *gin.Context) (transport.CreatePropertyRequest, bool) {
	var req transport.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}
