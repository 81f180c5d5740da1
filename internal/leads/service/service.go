// Package service implements lead capture business logic.
package service

import (
	"context"
	"strings"

	"realty-portal-backend/internal/events"
	"realty-portal-backend/internal/leads/repository"
	"realty-portal-backend/internal/leads/transport"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/logger"
	"realty-portal-backend/platform/phone"
)

// Service provides business logic for lead capture.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new leads service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// Record stores a captured lead. Phone numbers are normalized to E.164 when
// parseable; unparseable input is stored as given rather than rejected, since
// a reachable operator beats a clean database.
func (s *Service) Record(ctx context.Context, req transport.RecordLeadRequest) (transport.LeadResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	phoneNumber := phone.NormalizeE164(req.Phone)

	if name == "" || phoneNumber == "" || email == "" {
		return transport.LeadResponse{}, apperr.Validation("name, phone and email are all required")
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:              name,
		Phone:             phoneNumber,
		Email:             email,
		Intent:            strings.TrimSpace(req.Intent),
		TranscriptSummary: req.TranscriptSummary,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     lead.Email,
		Intent:    lead.Intent,
	})

	s.log.Info("lead recorded", "id", lead.ID)
	return transport.ToLeadResponse(lead), nil
}

// List returns captured leads for the admin console, newest first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	if pageSize > 100 {
		pageSize = 100
	}

	leads, total, err := s.repo.List(ctx, repository.ListLeadsParams{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, transport.ToLeadResponse(lead))
	}
	return transport.LeadListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
