package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Agent is a member of the sales team.
type Agent struct {
	ID        uuid.UUID
	Name      string
	AvatarURL string
	RoleLabel string
	Email     string
	CreatedAt time.Time
}

// PortfolioAggregate holds the raw counts behind an agent's metrics.
type PortfolioAggregate struct {
	AgentID       uuid.UUID
	AssignedCount int
	ClosedCount   int
	TotalValue    float64
}

// CreateAgentParams contains data for creating an agent.
type CreateAgentParams struct {
	Name      string
	AvatarURL string
	RoleLabel string
	Email     string
}

// UpdateAgentParams contains data for a partial agent update.
type UpdateAgentParams struct {
	ID        uuid.UUID
	Name      *string
	AvatarURL *string
	RoleLabel *string
	Email     *string
}

// Repository defines agent storage operations.
type Repository interface {
	List(ctx context.Context) ([]Agent, error)
	GetByID(ctx context.Context, id uuid.UUID) (Agent, error)
	Create(ctx context.Context, params CreateAgentParams) (Agent, error)
	Update(ctx context.Context, params UpdateAgentParams) (Agent, error)

	// Portfolio aggregates assigned, non-archived properties for one agent.
	Portfolio(ctx context.Context, agentID uuid.UUID) (PortfolioAggregate, error)
	// PortfolioAll aggregates for every agent in one query.
	PortfolioAll(ctx context.Context) ([]PortfolioAggregate, error)
}
