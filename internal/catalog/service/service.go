// Package service implements catalog business logic.
package service

import (
	"bytes"
	"context"
	"strings"

	"github.com/google/uuid"

	"realty-portal-backend/internal/catalog/domain"
	"realty-portal-backend/internal/catalog/repository"
	"realty-portal-backend/internal/catalog/transport"
	"realty-portal-backend/internal/events"
	"realty-portal-backend/internal/storage"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/logger"
)

// Service provides business logic for the property catalog.
type Service struct {
	repo    repository.Repository
	storage storage.ObjectStorage
	bucket  string
	cache   *ReadCache
	bus     events.Bus
	log     *logger.Logger
}

// New creates a new catalog service. storageSvc and cache may be nil when the
// corresponding backends are not configured.
func New(repo repository.Repository, storageSvc storage.ObjectStorage, bucket string, cache *ReadCache, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		storage: storageSvc,
		bucket:  bucket,
		cache:   cache,
		bus:     bus,
		log:     log,
	}
}

// ListPublished returns the public catalog, newest first. A failing or empty
// store falls back to the bundled dataset so the site keeps rendering.
func (s *Service) ListPublished(ctx context.Context) []transport.PropertyResponse {
	if cached, ok := s.cache.GetPublished(ctx); ok {
		return transport.ToPropertyResponses(cached)
	}

	props, err := s.repo.ListPublished(ctx)
	if err != nil {
		s.log.Warn("published catalog query failed, serving bundled dataset", "error", err)
		return transport.ToPropertyResponses(FallbackCatalog())
	}
	if len(props) == 0 {
		return transport.ToPropertyResponses(FallbackCatalog())
	}

	s.cache.SetPublished(ctx, props)
	return transport.ToPropertyResponses(props)
}

// ListAll returns non-archived listings for the admin console.
func (s *Service) ListAll(ctx context.Context, req transport.ListPropertiesRequest) (transport.PropertyListResponse, error) {
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

	params := repository.ListParams{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	}
	if req.AgentID != "" {
		agentID, err := uuid.Parse(req.AgentID)
		if err != nil {
			return transport.PropertyListResponse{}, apperr.BadRequest("invalid agent id")
		}
		params.AgentID = &agentID
	}

	items, total, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return transport.PropertyListResponse{}, err
	}
	return transport.PropertyListResponse{
		Items:    transport.ToPropertyResponses(items),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// ListPending returns the review queue of public submissions.
func (s *Service) ListPending(ctx context.Context) ([]transport.PropertyResponse, error) {
	props, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return transport.ToPropertyResponses(props), nil
}

// GetPublishedByID returns a listing for the public site. Unpublished and
// archived rows, and any store failure, all surface as not-found so absence
// and failure are indistinguishable to visitors.
func (s *Service) GetPublishedByID(ctx context.Context, id uuid.UUID) (transport.PropertyResponse, error) {
	prop, err := s.repo.GetByID(ctx, id)
	if err != nil || !prop.IsPublished || prop.ArchivedAt != nil {
		if fromFallback, ok := fallbackByID(id); ok {
			return transport.ToPropertyResponse(fromFallback), nil
		}
		return transport.PropertyResponse{}, apperr.NotFound("property not found")
	}
	return transport.ToPropertyResponse(prop), nil
}

// GetByID returns any non-archived listing for the admin console.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.PropertyResponse, error) {
	prop, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	if prop.ArchivedAt != nil {
		return transport.PropertyResponse{}, apperr.NotFound("property not found")
	}
	return transport.ToPropertyResponse(prop), nil
}

// Create inserts a listing. The caller decides publication: the admin console
// publishes directly, the public submission path queues for review.
func (s *Service) Create(ctx context.Context, req transport.CreatePropertyRequest, published bool) (transport.PropertyResponse, error) {
	prop, err := s.repo.Create(ctx, repository.CreatePropertyParams{
		Title:            strings.TrimSpace(req.Title),
		Price:            req.Price,
		Location:         strings.TrimSpace(req.Location),
		Type:             domain.NormalizeType(req.Type),
		ListingType:      domain.NormalizeListingType(req.ListingType),
		Beds:             req.Beds,
		Baths:            req.Baths,
		Sqft:             req.Sqft,
		ImageURL:         req.ImageURL,
		Images:           req.Images,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Features: domain.Features{
			General:  req.Features.General,
			Interior: req.Features.Interior,
			Exterior: req.Features.Exterior,
		},
		Featured:    req.Featured,
		IsPublished: published,
		AgentID:     req.AgentID,
	})
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.cache.Invalidate(ctx)
	if published {
		s.publishPublished(ctx, prop)
	} else {
		s.bus.Publish(ctx, events.PropertySubmitted{
			BaseEvent:  events.NewBaseEvent(),
			PropertyID: prop.ID,
			Title:      prop.Title,
			Location:   prop.Location,
		})
	}

	s.log.Info("property created", "id", prop.ID, "published", published)
	return transport.ToPropertyResponse(prop), nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdatePropertyRequest) (transport.PropertyResponse, error) {
	params := repository.UpdatePropertyParams{
		ID:               id,
		Title:            trimmed(req.Title),
		Price:            req.Price,
		Location:         trimmed(req.Location),
		Beds:             req.Beds,
		Baths:            req.Baths,
		Sqft:             req.Sqft,
		ImageURL:         req.ImageURL,
		Images:           req.Images,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Featured:         req.Featured,
		IsPublished:      req.IsPublished,
	}
	if req.Type != nil {
		t := domain.NormalizeType(*req.Type)
		params.Type = &t
	}
	if req.ListingType != nil {
		lt := domain.NormalizeListingType(*req.ListingType)
		params.ListingType = &lt
	}
	if req.Features != nil {
		params.Features = &domain.Features{
			General:  req.Features.General,
			Interior: req.Features.Interior,
			Exterior: req.Features.Exterior,
		}
	}

	wasPublished := false
	if req.IsPublished != nil && *req.IsPublished {
		if current, err := s.repo.GetByID(ctx, id); err == nil {
			wasPublished = current.IsPublished
		}
	}

	prop, err := s.repo.Update(ctx, params)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.cache.Invalidate(ctx)
	if req.IsPublished != nil && *req.IsPublished && !wasPublished {
		s.publishPublished(ctx, prop)
	}

	s.log.Info("property updated", "id", prop.ID)
	return transport.ToPropertyResponse(prop), nil
}

// UpdateStatus changes a listing's lifecycle status.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (transport.PropertyResponse, error) {
	if !domain.ValidStatus(status) {
		return transport.PropertyResponse{}, apperr.BadRequest("invalid status")
	}
	prop, err := s.repo.SetStatus(ctx, id, domain.Status(status))
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	s.cache.Invalidate(ctx)
	s.log.Info("property status changed", "id", prop.ID, "status", status)
	return transport.ToPropertyResponse(prop), nil
}

// AssignAgent assigns or clears the responsible agent.
func (s *Service) AssignAgent(ctx context.Context, id uuid.UUID, agentID *uuid.UUID) (transport.PropertyResponse, error) {
	prop, err := s.repo.SetAgent(ctx, id, agentID)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	s.log.Info("property agent assigned", "id", prop.ID, "agentId", agentID)
	return transport.ToPropertyResponse(prop), nil
}

// Approve publishes a pending submission from the review queue.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (transport.PropertyResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PropertyResponse{}, err
	}
	if current.IsPublished {
		return transport.PropertyResponse{}, apperr.Conflict("property is already published")
	}

	prop, err := s.repo.SetPublished(ctx, id, true)
	if err != nil {
		return transport.PropertyResponse{}, err
	}

	s.cache.Invalidate(ctx)
	s.publishPublished(ctx, prop)
	s.log.Info("property approved", "id", prop.ID)
	return transport.ToPropertyResponse(prop), nil
}

// Archive soft-deletes a listing. The row survives for agent history.
func (s *Service) Archive(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Archive(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	s.log.Info("property archived", "id", id)
	return nil
}

// AddNote appends a note to a property's timeline.
func (s *Service) AddNote(ctx context.Context, propertyID uuid.UUID, body string) (transport.NoteResponse, error) {
	if _, err := s.GetByID(ctx, propertyID); err != nil {
		return transport.NoteResponse{}, err
	}
	note, err := s.repo.AddNote(ctx, propertyID, strings.TrimSpace(body))
	if err != nil {
		return transport.NoteResponse{}, err
	}
	return transport.ToNoteResponse(note), nil
}

// ListNotes returns a property's notes, newest first.
func (s *Service) ListNotes(ctx context.Context, propertyID uuid.UUID) ([]transport.NoteResponse, error) {
	notes, err := s.repo.ListNotes(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, transport.ToNoteResponse(n))
	}
	return out, nil
}

// UpdateNote rewrites a note's body.
func (s *Service) UpdateNote(ctx context.Context, propertyID, noteID uuid.UUID, body string) (transport.NoteResponse, error) {
	note, err := s.repo.UpdateNote(ctx, propertyID, noteID, strings.TrimSpace(body))
	if err != nil {
		return transport.NoteResponse{}, err
	}
	return transport.ToNoteResponse(note), nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, propertyID, noteID uuid.UUID) error {
	return s.repo.DeleteNote(ctx, propertyID, noteID)
}

// UploadImage stores an image and returns its public URL.
func (s *Service) UploadImage(ctx context.Context, fileName, contentType string, data []byte) (transport.UploadImageResponse, error) {
	if s.storage == nil {
		return transport.UploadImageResponse{}, apperr.Unavailable("image storage is not configured")
	}
	if err := s.storage.ValidateContentType(contentType); err != nil {
		return transport.UploadImageResponse{}, apperr.BadRequest(err.Error())
	}
	if err := s.storage.ValidateFileSize(int64(len(data))); err != nil {
		return transport.UploadImageResponse{}, apperr.BadRequest(err.Error())
	}

	fileKey, err := s.storage.UploadFile(ctx, s.bucket, "properties", fileName, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.log.Error("image upload failed", "fileName", fileName, "error", err)
		return transport.UploadImageResponse{}, apperr.Unavailable("image upload failed")
	}

	return transport.UploadImageResponse{URL: s.storage.PublicURL(s.bucket, fileKey)}, nil
}

func (s *Service) publishPublished(ctx context.Context, prop domain.Property) {
	s.bus.Publish(ctx, events.PropertyPublished{
		BaseEvent:  events.NewBaseEvent(),
		PropertyID: prop.ID,
		Title:      prop.Title,
		Location:   prop.Location,
		Price:      prop.Price,
	})
}

func fallbackByID(id uuid.UUID) (domain.Property, bool) {
	for _, prop := range FallbackCatalog() {
		if prop.ID == id {
			return prop, true
		}
	}
	return domain.Property{}, false
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	return &t
}
