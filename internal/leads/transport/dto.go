// Package transport defines the leads module's request and response DTOs.
package transport

import (
	"time"

	"github.com/google/uuid"

	"realty-portal-backend/internal/leads/repository"
)

// LeadResponse is the wire form of a captured lead.
type LeadResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	Intent            string    `json:"intent,omitempty"`
	TranscriptSummary string    `json:"transcriptSummary,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// LeadListResponse wraps a paginated lead list.
type LeadListResponse struct {
	Items    []LeadResponse `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// ListLeadsRequest paginates the admin lead list.
type ListLeadsRequest struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// RecordLeadRequest captures a completed contact. All three identity fields
// are required: a partial capture is not a lead.
type RecordLeadRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=160"`
	Phone             string `json:"phone" validate:"required,min=5,max=40"`
	Email             string `json:"email" validate:"required,email"`
	Intent            string `json:"intent" validate:"omitempty,max=500"`
	TranscriptSummary string `json:"transcriptSummary" validate:"omitempty,max=10000"`
}

// ToLeadResponse maps a stored lead to its wire form.
func ToLeadResponse(l repository.Lead) LeadResponse {
	return LeadResponse{
		ID:                l.ID,
		Name:              l.Name,
		Phone:             l.Phone,
		Email:             l.Email,
		Intent:            l.Intent,
		TranscriptSummary: l.TranscriptSummary,
		CreatedAt:         l.CreatedAt,
	}
}
