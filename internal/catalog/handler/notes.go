package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty-portal-backend/internal/catalog/transport"
	"realty-portal-backend/platform/httpkit"
)

// ListNotes returns a property's notes.
// GET /api/v1/admin/properties/:id/notes
func (h *Handler) ListNotes(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListNotes(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddNote appends a note to a property.
// POST /api/v1/admin/properties/:id/notes
func (h *Handler) AddNote(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}

	req, ok := h.bindNoteRequest(c)
	if !ok {
		return
	}

	result, err := h.svc.AddNote(c.Request.Context(), id, req.Body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateNote rewrites a note's body.
// PUT /api/v1/admin/properties/:id/notes/:noteId
func (h *Handler) UpdateNote(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid note id", nil)
		return
	}

	req, ok := h.bindNoteRequest(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateNote(c.Request.Context(), id, noteID, req.Body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteNote removes a note.
// DELETE /api/v1/admin/properties/:id/notes/:noteId
func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := h.propertyID(c)
	if !ok {
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid note id", nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteNote(c.Request.Context(), id, noteID)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindNoteRequest(c *gin.Context) (transport.NoteRequest, bool) {
	var req transport.NoteRequest
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
