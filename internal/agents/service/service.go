// Package service implements agent business logic and performance metrics.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"realty-portal-backend/internal/agents/repository"
	"realty-portal-backend/internal/agents/transport"
	"realty-portal-backend/platform/logger"
)

// Service provides business logic for the sales team.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new agents service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns all agents.
func (s *Service) List(ctx context.Context) ([]transport.AgentResponse, error) {
	agents, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, transport.ToAgentResponse(a))
	}
	return out, nil
}

// GetByID retrieves one agent.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.AgentResponse, error) {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.AgentResponse{}, err
	}
	return transport.ToAgentResponse(agent), nil
}

// Create adds a sales team member.
func (s *Service) Create(ctx context.Context, req transport.CreateAgentRequest) (transport.AgentResponse, error) {
	agent, err := s.repo.Create(ctx, repository.CreateAgentParams{
		Name:      strings.TrimSpace(req.Name),
		AvatarURL: req.AvatarURL,
		RoleLabel: strings.TrimSpace(req.RoleLabel),
		Email:     strings.TrimSpace(req.Email),
	})
	if err != nil {
		return transport.AgentResponse{}, err
	}
	s.log.Info("agent created", "id", agent.ID, "name", agent.Name)
	return transport.ToAgentResponse(agent), nil
}

// Update applies a partial update to an agent.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateAgentRequest) (transport.AgentResponse, error) {
	agent, err := s.repo.Update(ctx, repository.UpdateAgentParams{
		ID:        id,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		RoleLabel: req.RoleLabel,
		Email:     req.Email,
	})
	if err != nil {
		return transport.AgentResponse{}, err
	}
	s.log.Info("agent updated", "id", agent.ID)
	return transport.ToAgentResponse(agent), nil
}

// Stats returns one agent's performance metrics.
func (s *Service) Stats(ctx context.Context, id uuid.UUID) (transport.AgentStatsResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return transport.AgentStatsResponse{}, err
	}
	agg, err := s.repo.Portfolio(ctx, id)
	if err != nil {
		return transport.AgentStatsResponse{}, err
	}
	return toStats(agg), nil
}

// StatsAll returns metrics for every agent.
func (s *Service) StatsAll(ctx context.Context) ([]transport.AgentStatsResponse, error) {
	aggs, err := s.repo.PortfolioAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.AgentStatsResponse, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, toStats(agg))
	}
	return out, nil
}

// toStats derives the close rate from raw counts. An agent with nothing
// assigned has a close rate of 0, not NaN.
func toStats(agg repository.PortfolioAggregate) transport.AgentStatsResponse {
	stats := transport.AgentStatsResponse{
		AgentID:        agg.AgentID,
		AssignedCount:  agg.AssignedCount,
		ClosedCount:    agg.ClosedCount,
		PortfolioValue: agg.TotalValue,
	}
	if agg.AssignedCount > 0 {
		stats.CloseRate = float64(agg.ClosedCount) / float64(agg.AssignedCount)
	}
	return stats
}
