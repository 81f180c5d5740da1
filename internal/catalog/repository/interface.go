package repository

import (
	"context"

	"github.com/google/uuid"

	"realty-portal-backend/internal/catalog/domain"
)

// CreatePropertyParams contains data for creating a property.
type CreatePropertyParams struct {
	Title            string
	Price            float64
	Location         string
	Type             domain.PropertyType
	ListingType      domain.ListingType
	Beds             int
	Baths            int
	Sqft             int
	ImageURL         string
	Images           []string
	Description      string
	ShortDescription string
	Features         domain.Features
	Featured         bool
	IsPublished      bool
	AgentID          *uuid.UUID
}

// UpdatePropertyParams contains data for a partial property update.
// Nil fields are left unchanged.
type UpdatePropertyParams struct {
	ID               uuid.UUID
	Title            *string
	Price            *float64
	Location         *string
	Type             *domain.PropertyType
	ListingType      *domain.ListingType
	Beds             *int
	Baths            *int
	Sqft             *int
	ImageURL         *string
	Images           []string
	Description      *string
	ShortDescription *string
	Features         *domain.Features
	Featured         *bool
	IsPublished      *bool
}

// ListParams defines filters for admin property listings.
type ListParams struct {
	AgentID *uuid.UUID
	Offset  int
	Limit   int
}

// Repository defines catalog storage operations.
type Repository interface {
	ListPublished(ctx context.Context) ([]domain.Property, error)
	ListAll(ctx context.Context, params ListParams) ([]domain.Property, int, error)
	ListPending(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error)
	Create(ctx context.Context, params CreatePropertyParams) (domain.Property, error)
	Update(ctx context.Context, params UpdatePropertyParams) (domain.Property, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Property, error)
	SetAgent(ctx context.Context, id uuid.UUID, agentID *uuid.UUID) (domain.Property, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (domain.Property, error)
	Archive(ctx context.Context, id uuid.UUID) error

	AddNote(ctx context.Context, propertyID uuid.UUID, body string) (domain.Note, error)
	ListNotes(ctx context.Context, propertyID uuid.UUID) ([]domain.Note, error)
	UpdateNote(ctx context.Context, propertyID, noteID uuid.UUID, body string) (domain.Note, error)
	DeleteNote(ctx context.Context, propertyID, noteID uuid.UUID) error
}
