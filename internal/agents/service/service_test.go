package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"realty-portal-backend/internal/agents/repository"
	"realty-portal-backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository

	agents     map[uuid.UUID]repository.Agent
	portfolios map[uuid.UUID]repository.PortfolioAggregate
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Agent, error) {
	return f.agents[id], nil
}

func (f *fakeRepo) Portfolio(ctx context.Context, agentID uuid.UUID) (repository.PortfolioAggregate, error) {
	return f.portfolios[agentID], nil
}

func TestStatsComputesCloseRate(t *testing.T) {
	agentID := uuid.New()
	repo := &fakeRepo{
		agents: map[uuid.UUID]repository.Agent{agentID: {ID: agentID, Name: "María Pérez"}},
		portfolios: map[uuid.UUID]repository.PortfolioAggregate{
			agentID: {AgentID: agentID, AssignedCount: 4, ClosedCount: 1, TotalValue: 380000},
		},
	}
	svc := New(repo, logger.New("test"))

	stats, err := svc.Stats(context.Background(), agentID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.PortfolioValue != 380000 {
		t.Errorf("portfolio value = %v, want 380000", stats.PortfolioValue)
	}
	if stats.CloseRate != 0.25 {
		t.Errorf("close rate = %v, want 0.25", stats.CloseRate)
	}
}

func TestStatsZeroAssignmentsHasZeroCloseRate(t *testing.T) {
	agentID := uuid.New()
	repo := &fakeRepo{
		agents:     map[uuid.UUID]repository.Agent{agentID: {ID: agentID}},
		portfolios: map[uuid.UUID]repository.PortfolioAggregate{agentID: {AgentID: agentID}},
	}
	svc := New(repo, logger.New("test"))

	stats, err := svc.Stats(context.Background(), agentID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CloseRate != 0 {
		t.Errorf("close rate with no assignments = %v, want 0", stats.CloseRate)
	}
	if stats.PortfolioValue != 0 {
		t.Errorf("portfolio value with no assignments = %v, want 0", stats.PortfolioValue)
	}
}
