// Package domain holds the catalog's core types and normalization rules.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	TypeHouse      PropertyType = "House"
	TypeApartment  PropertyType = "Apartment"
	TypeCommercial PropertyType = "Commercial"
	TypeLand       PropertyType = "Land"
)

// ListingType distinguishes sale from rental listings.
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

// Status tracks a listing through its commercial lifecycle.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
)

// Features groups a listing's attributes for display.
type Features struct {
	General  []string `json:"general"`
	Interior []string `json:"interior"`
	Exterior []string `json:"exterior"`
}

// Property is a real-estate listing.
type Property struct {
	ID               uuid.UUID
	Title            string
	Price            float64
	Location         string
	Type             PropertyType
	ListingType      ListingType
	Beds             int
	Baths            int
	Sqft             int
	ImageURL         string
	Images           []string
	Description      string
	ShortDescription string
	Features         Features
	Featured         bool
	IsPublished      bool
	Status           Status
	AgentID          *uuid.UUID
	ArchivedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Note is a dated remark attached to a property by an operator.
type Note struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Body       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeType maps arbitrary stored values onto a known PropertyType.
// Unknown values fall back to House so stale rows never break rendering.
func NormalizeType(raw string) PropertyType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "apartment":
		return TypeApartment
	case "commercial":
		return TypeCommercial
	case "land":
		return TypeLand
	default:
		return TypeHouse
	}
}

// NormalizeListingType maps stored values onto a ListingType.
// NULL and unknown values default to sale; rows created before rentals were
// introduced carry no listing_type at all.
func NormalizeListingType(raw string) ListingType {
	if strings.EqualFold(strings.TrimSpace(raw), string(ListingRent)) {
		return ListingRent
	}
	return ListingSale
}

// NormalizeStatus maps stored values onto a Status, defaulting to available.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusReserved):
		return StatusReserved
	case string(StatusSold):
		return StatusSold
	case string(StatusRented):
		return StatusRented
	default:
		return StatusAvailable
	}
}

// ValidStatus reports whether raw is one of the four known lifecycle states.
func ValidStatus(raw string) bool {
	switch Status(raw) {
	case StatusAvailable, StatusReserved, StatusSold, StatusRented:
		return true
	}
	return false
}

// Closed reports whether the listing completed its commercial lifecycle.
func (s Status) Closed() bool {
	return s == StatusSold || s == StatusRented
}
