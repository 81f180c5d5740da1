// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"realty-portal-backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCaptured is published when the assistant extracts a complete lead
// (name, phone and email all known) from a conversation.
type LeadCaptured struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Intent   string    `json:"intent,omitempty"`
	Language string    `json:"language,omitempty"`
}

func (e LeadCaptured) EventName() string { return "leads.captured" }

// =============================================================================
// Catalog Domain Events
// =============================================================================

// PropertyPublished is published when a listing becomes visible in the public
// catalog, either by direct admin creation or by approving a pending
// submission.
type PropertyPublished struct {
	BaseEvent
	PropertyID uuid.UUID `json:"propertyId"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	Price      float64   `json:"price"`
}

func (e PropertyPublished) EventName() string { return "catalog.property.published" }

// PropertySubmitted is published when a public visitor submits a listing for
// review (created unpublished).
type PropertySubmitted struct {
	BaseEvent
	PropertyID uuid.UUID `json:"propertyId"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
}

func (e PropertySubmitted) EventName() string { return "catalog.property.submitted" }
