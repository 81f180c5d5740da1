package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"realty-portal-backend/internal/catalog/domain"
	"realty-portal-backend/internal/catalog/repository"
	"realty-portal-backend/internal/catalog/transport"
	"realty-portal-backend/internal/events"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	published    []domain.Property
	publishedErr error
	byID         map[uuid.UUID]domain.Property
	created      *repository.CreatePropertyParams
	setPublished []uuid.UUID
}

func (f *fakeRepo) ListPublished(ctx context.Context) ([]domain.Property, error) {
	return f.published, f.publishedErr
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	prop, ok := f.byID[id]
	if !ok {
		return domain.Property{}, apperr.NotFound("property not found")
	}
	return prop, nil
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreatePropertyParams) (domain.Property, error) {
	f.created = &params
	return domain.Property{
		ID:          uuid.New(),
		Title:       params.Title,
		Price:       params.Price,
		Location:    params.Location,
		Type:        params.Type,
		ListingType: params.ListingType,
		IsPublished: params.IsPublished,
		Status:      domain.StatusAvailable,
	}, nil
}

func (f *fakeRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) (domain.Property, error) {
	f.setPublished = append(f.setPublished, id)
	prop := f.byID[id]
	prop.IsPublished = published
	return prop, nil
}

type recordingBus struct {
	events []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

func newTestService(repo *fakeRepo, bus *recordingBus) *Service {
	return New(repo, nil, "property-images", nil, bus, logger.New("test"))
}

func TestListPublishedFallsBackOnStoreError(t *testing.T) {
	repo := &fakeRepo{publishedErr: errors.New("connection refused")}
	svc := newTestService(repo, &recordingBus{})

	got := svc.ListPublished(context.Background())
	if len(got) != len(fallbackCatalog) {
		t.Fatalf("expected %d fallback listings, got %d", len(fallbackCatalog), len(got))
	}
}

func TestListPublishedFallsBackOnEmptyStore(t *testing.T) {
	repo := &fakeRepo{published: []domain.Property{}}
	svc := newTestService(repo, &recordingBus{})

	got := svc.ListPublished(context.Background())
	if len(got) == 0 {
		t.Fatal("empty store should serve the bundled dataset")
	}
}

func TestListPublishedServesStoreWhenHealthy(t *testing.T) {
	prop := domain.Property{
		ID:          uuid.New(),
		Title:       "Casa en Naguanagua",
		IsPublished: true,
		Status:      domain.StatusAvailable,
		Type:        domain.TypeHouse,
		ListingType: domain.ListingSale,
	}
	repo := &fakeRepo{published: []domain.Property{prop}}
	svc := newTestService(repo, &recordingBus{})

	got := svc.ListPublished(context.Background())
	if len(got) != 1 || got[0].ID != prop.ID {
		t.Fatalf("expected store listing, got %+v", got)
	}
}

func TestGetPublishedByIDHidesUnpublished(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{byID: map[uuid.UUID]domain.Property{
		id: {ID: id, IsPublished: false},
	}}
	svc := newTestService(repo, &recordingBus{})

	_, err := svc.GetPublishedByID(context.Background(), id)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("unpublished listing should be not-found, got %v", err)
	}
}

func TestGetPublishedByIDHidesArchived(t *testing.T) {
	id := uuid.New()
	archivedAt := time.Now()
	repo := &fakeRepo{byID: map[uuid.UUID]domain.Property{
		id: {ID: id, IsPublished: true, ArchivedAt: &archivedAt},
	}}
	svc := newTestService(repo, &recordingBus{})

	if _, err := svc.GetPublishedByID(context.Background(), id); err == nil {
		t.Fatal("archived listing should be not-found")
	}
}

func TestCreatePublishedEmitsEvent(t *testing.T) {
	repo := &fakeRepo{}
	bus := &recordingBus{}
	svc := newTestService(repo, bus)

	_, err := svc.Create(context.Background(), transport.CreatePropertyRequest{
		Title:    "Casa quinta",
		Price:    120000,
		Location: "Barquisimeto, Lara",
		Type:     "House",
	}, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !repo.created.IsPublished {
		t.Fatal("admin create should publish immediately")
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	if _, ok := bus.events[0].(events.PropertyPublished); !ok {
		t.Fatalf("expected PropertyPublished, got %T", bus.events[0])
	}
}

func TestCreateSubmissionStaysPending(t *testing.T) {
	repo := &fakeRepo{}
	bus := &recordingBus{}
	svc := newTestService(repo, bus)

	_, err := svc.Create(context.Background(), transport.CreatePropertyRequest{
		Title:    "Apartamento en El Trigal",
		Price:    75000,
		Location: "Valencia, Carabobo",
		Type:     "Apartment",
	}, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.created.IsPublished {
		t.Fatal("public submission must stay unpublished")
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	if _, ok := bus.events[0].(events.PropertySubmitted); !ok {
		t.Fatalf("expected PropertySubmitted, got %T", bus.events[0])
	}
}

func TestCreateDefaultsListingTypeToSale(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &recordingBus{})

	_, err := svc.Create(context.Background(), transport.CreatePropertyRequest{
		Title:    "Casa sin tipo de operación",
		Price:    50000,
		Location: "Maracay, Aragua",
		Type:     "House",
	}, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.created.ListingType != domain.ListingSale {
		t.Fatalf("listing type should default to sale, got %q", repo.created.ListingType)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &recordingBus{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "demolished")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindBadRequest {
		t.Fatalf("unknown status should be a bad request, got %v", err)
	}
}

func TestApproveRejectsAlreadyPublished(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{byID: map[uuid.UUID]domain.Property{
		id: {ID: id, IsPublished: true},
	}}
	svc := newTestService(repo, &recordingBus{})

	_, err := svc.Approve(context.Background(), id)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindConflict {
		t.Fatalf("approving a published listing should conflict, got %v", err)
	}
}

func TestApprovePublishesAndEmitsEvent(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{byID: map[uuid.UUID]domain.Property{
		id: {ID: id, Title: "Galpón industrial", IsPublished: false},
	}}
	bus := &recordingBus{}
	svc := newTestService(repo, bus)

	result, err := svc.Approve(context.Background(), id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !result.IsPublished {
		t.Fatal("approved listing should be published")
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	if _, ok := bus.events[0].(events.PropertyPublished); !ok {
		t.Fatalf("expected PropertyPublished, got %T", bus.events[0])
	}
}

func TestUploadImageWithoutStorageIsUnavailable(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &recordingBus{})

	_, err := svc.UploadImage(context.Background(), "casa.jpg", "image/jpeg", []byte{0xFF})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnavailable {
		t.Fatalf("missing storage should be unavailable, got %v", err)
	}
}
