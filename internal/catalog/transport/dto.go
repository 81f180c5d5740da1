// Package transport defines the catalog module's request and response DTOs.
package transport

import (
	"time"

	"github.com/google/uuid"

	"realty-portal-backend/internal/catalog/domain"
)

// FeaturesDTO mirrors domain.Features on the wire.
type FeaturesDTO struct {
	General  []string `json:"general"`
	Interior []string `json:"interior"`
	Exterior []string `json:"exterior"`
}

// PropertyResponse is the public representation of a listing.
type PropertyResponse struct {
	ID               uuid.UUID   `json:"id"`
	Title            string      `json:"title"`
	Price            float64     `json:"price"`
	Location         string      `json:"location"`
	Type             string      `json:"type"`
	ListingType      string      `json:"listingType"`
	Beds             int         `json:"beds"`
	Baths            int         `json:"baths"`
	Sqft             int         `json:"sqft"`
	ImageURL         string      `json:"imageUrl"`
	Images           []string    `json:"images"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"shortDescription"`
	Features         FeaturesDTO `json:"features"`
	Featured         bool        `json:"featured"`
	IsPublished      bool        `json:"isPublished"`
	Status           string      `json:"status"`
	AgentID          *uuid.UUID  `json:"agentId,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// PropertyListResponse wraps a paginated admin listing.
type PropertyListResponse struct {
	Items    []PropertyResponse `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// ListPropertiesRequest holds admin listing filters.
type ListPropertiesRequest struct {
	AgentID  string `form:"agentId" validate:"omitempty,uuid"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// CreatePropertyRequest holds data for creating a listing.
// The admin form publishes immediately; the public submission path leaves
// Publish false so the listing lands in the review queue.
type CreatePropertyRequest struct {
	Title            string      `json:"title" validate:"required,min=3,max=200"`
	Price            float64     `json:"price" validate:"required,gt=0"`
	Location         string      `json:"location" validate:"required,min=2,max=200"`
	Type             string      `json:"type" validate:"required,oneof=House Apartment Commercial Land"`
	ListingType      string      `json:"listingType" validate:"omitempty,oneof=sale rent"`
	Beds             int         `json:"beds" validate:"min=0"`
	Baths            int         `json:"baths" validate:"min=0"`
	Sqft             int         `json:"sqft" validate:"min=0"`
	ImageURL         string      `json:"imageUrl" validate:"omitempty,url"`
	Images           []string    `json:"images" validate:"omitempty,dive,url"`
	Description      string      `json:"description" validate:"omitempty,max=10000"`
	ShortDescription string      `json:"shortDescription" validate:"omitempty,max=500"`
	Features         FeaturesDTO `json:"features"`
	Featured         bool        `json:"featured"`
	AgentID          *uuid.UUID  `json:"agentId"`
}

// UpdatePropertyRequest holds a partial update; absent fields stay unchanged.
type UpdatePropertyRequest struct {
	Title            *string      `json:"title" validate:"omitempty,min=3,max=200"`
	Price            *float64     `json:"price" validate:"omitempty,gt=0"`
	Location         *string      `json:"location" validate:"omitempty,min=2,max=200"`
	Type             *string      `json:"type" validate:"omitempty,oneof=House Apartment Commercial Land"`
	ListingType      *string      `json:"listingType" validate:"omitempty,oneof=sale rent"`
	Beds             *int         `json:"beds" validate:"omitempty,min=0"`
	Baths            *int         `json:"baths" validate:"omitempty,min=0"`
	Sqft             *int         `json:"sqft" validate:"omitempty,min=0"`
	ImageURL         *string      `json:"imageUrl" validate:"omitempty,url"`
	Images           []string     `json:"images" validate:"omitempty,dive,url"`
	Description      *string      `json:"description" validate:"omitempty,max=10000"`
	ShortDescription *string      `json:"shortDescription" validate:"omitempty,max=500"`
	Features         *FeaturesDTO `json:"features"`
	Featured         *bool        `json:"featured"`
	IsPublished      *bool        `json:"isPublished"`
}

// UpdateStatusRequest changes a listing's lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available reserved sold rented"`
}

// AssignAgentRequest assigns or clears the responsible agent.
type AssignAgentRequest struct {
	AgentID *uuid.UUID `json:"agentId"`
}

// NoteResponse is the wire form of a property note.
type NoteResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NoteRequest creates or edits a note.
type NoteRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

// UploadImageResponse returns the public URL of a stored image.
type UploadImageResponse struct {
	URL string `json:"url"`
}

// ToPropertyResponse maps a domain property to its wire form.
func ToPropertyResponse(p domain.Property) PropertyResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return PropertyResponse{
		ID:               p.ID,
		Title:            p.Title,
		Price:            p.Price,
		Location:         p.Location,
		Type:             string(p.Type),
		ListingType:      string(p.ListingType),
		Beds:             p.Beds,
		Baths:            p.Baths,
		Sqft:             p.Sqft,
		ImageURL:         p.ImageURL,
		Images:           images,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Features: FeaturesDTO{
			General:  emptyIfNil(p.Features.General),
			Interior: emptyIfNil(p.Features.Interior),
			Exterior: emptyIfNil(p.Features.Exterior),
		},
		Featured:    p.Featured,
		IsPublished: p.IsPublished,
		Status:      string(p.Status),
		AgentID:     p.AgentID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPropertyResponses maps a slice of domain properties.
func ToPropertyResponses(props []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, ToPropertyResponse(p))
	}
	return out
}

// ToNoteResponse maps a domain note to its wire form.
func ToNoteResponse(n domain.Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID,
		PropertyID: n.PropertyID,
		Body:       n.Body,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
