package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"realty-portal-backend/internal/events"
	"realty-portal-backend/internal/leads/repository"
	"realty-portal-backend/internal/leads/transport"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/logger"
)

type fakeRepo struct {
	created *repository.CreateLeadParams
	leads   []repository.Lead
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	f.created = &params
	return repository.Lead{
		ID:    uuid.New(),
		Name:  params.Name,
		Phone: params.Phone,
		Email: params.Email,
	}, nil
}

func (f *fakeRepo) List(ctx context.Context, params repository.ListLeadsParams) ([]repository.Lead, int, error) {
	return f.leads, len(f.leads), nil
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

func TestRecordNormalizesVenezuelanMobile(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &recordingBus{}, logger.New("test"))

	_, err := svc.Record(context.Background(), transport.RecordLeadRequest{
		Name:  "Carlos Rodríguez",
		Phone: "0414-555-1234",
		Email: "Carlos@Example.com",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if repo.created.Phone != "+584145551234" {
		t.Errorf("phone = %q, want +584145551234", repo.created.Phone)
	}
	if repo.created.Email != "carlos@example.com" {
		t.Errorf("email = %q, want lowercased", repo.created.Email)
	}
}

func TestRecordKeepsUnparseablePhone(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, &recordingBus{}, logger.New("test"))

	_, err := svc.Record(context.Background(), transport.RecordLeadRequest{
		Name:  "Ana",
		Phone: "ext. 12",
		Email: "ana@example.com",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if repo.created.Phone != "ext. 12" {
		t.Errorf("unparseable phone should be stored as given, got %q", repo.created.Phone)
	}
}

func TestRecordRequiresAllIdentityFields(t *testing.T) {
	svc := New(&fakeRepo{}, &recordingBus{}, logger.New("test"))

	_, err := svc.Record(context.Background(), transport.RecordLeadRequest{
		Name:  "   ",
		Phone: "0414-555-1234",
		Email: "x@example.com",
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("blank name should be a validation error, got %v", err)
	}
}

func TestRecordPublishesLeadCaptured(t *testing.T) {
	bus := &recordingBus{}
	svc := New(&fakeRepo{}, bus, logger.New("test"))

	_, err := svc.Record(context.Background(), transport.RecordLeadRequest{
		Name:  "Luisa",
		Phone: "+584245550001",
		Email: "luisa@example.com",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	if _, ok := bus.events[0].(events.LeadCaptured); !ok {
		t.Fatalf("expected LeadCaptured, got %T", bus.events[0])
	}
}
