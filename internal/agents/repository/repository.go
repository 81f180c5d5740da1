// Package repository implements agent storage on Postgres.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realty-portal-backend/platform/apperr"
)

const agentNotFoundMessage = "agent not found"

// Repo implements the agents repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new agents repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List returns all agents ordered by name.
func (r *Repo) List(ctx context.Context) ([]Agent, error) {
	query := `
		SELECT id, name, COALESCE(avatar_url, ''), COALESCE(role_label, ''), COALESCE(email, ''), created_at
		FROM agents
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	agents := make([]Agent, 0)
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.AvatarURL, &a.RoleLabel, &a.Email, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agents: %w", err)
	}
	return agents, nil
}

// GetByID retrieves an agent by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Agent, error) {
	query := `
		SELECT id, name, COALESCE(avatar_url, ''), COALESCE(role_label, ''), COALESCE(email, ''), created_at
		FROM agents WHERE id = $1`

	var a Agent
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.AvatarURL, &a.RoleLabel, &a.Email, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agent{}, apperr.NotFound(agentNotFoundMessage)
		}
		return Agent{}, fmt.Errorf("get agent by id: %w", err)
	}
	return a, nil
}

// Create inserts an agent.
func (r *Repo) Create(ctx context.Context, params CreateAgentParams) (Agent, error) {
	query := `
		INSERT INTO agents (name, avatar_url, role_label, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, COALESCE(avatar_url, ''), COALESCE(role_label, ''), COALESCE(email, ''), created_at`

	var a Agent
	err := r.pool.QueryRow(ctx, query, params.Name, params.AvatarURL, params.RoleLabel, params.Email).Scan(
		&a.ID, &a.Name, &a.AvatarURL, &a.RoleLabel, &a.Email, &a.CreatedAt,
	)
	if err != nil {
		return Agent{}, fmt.Errorf("create agent: %w", err)
	}
	return a, nil
}

// Update applies a partial agent update.
func (r *Repo) Update(ctx context.Context, params UpdateAgentParams) (Agent, error) {
	query := `
		UPDATE agents SET
			name = COALESCE($2, name),
			avatar_url = COALESCE($3, avatar_url),
			role_label = COALESCE($4, role_label),
			email = COALESCE($5, email)
		WHERE id = $1
		RETURNING id, name, COALESCE(avatar_url, ''), COALESCE(role_label, ''), COALESCE(email, ''), created_at`

	var a Agent
	err := r.pool.QueryRow(ctx, query, params.ID, params.Name, params.AvatarURL, params.RoleLabel, params.Email).Scan(
		&a.ID, &a.Name, &a.AvatarURL, &a.RoleLabel, &a.Email, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agent{}, apperr.NotFound(agentNotFoundMessage)
		}
		return Agent{}, fmt.Errorf("update agent: %w", err)
	}
	return a, nil
}

// Portfolio aggregates assigned, non-archived properties for one agent.
func (r *Repo) Portfolio(ctx context.Context, agentID uuid.UUID) (PortfolioAggregate, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status IN ('sold', 'rented')),
		       COALESCE(SUM(price), 0)
		FROM properties
		WHERE agent_id = $1 AND archived_at IS NULL`

	agg := PortfolioAggregate{AgentID: agentID}
	err := r.pool.QueryRow(ctx, query, agentID).Scan(&agg.AssignedCount, &agg.ClosedCount, &agg.TotalValue)
	if err != nil {
		return PortfolioAggregate{}, fmt.Errorf("agent portfolio: %w", err)
	}
	return agg, nil
}

// PortfolioAll aggregates for every agent in one query. Agents with no
// assigned properties come back with zero counts.
func (r *Repo) PortfolioAll(ctx context.Context) ([]PortfolioAggregate, error) {
	query := `
		SELECT a.id,
		       COUNT(p.id),
		       COUNT(p.id) FILTER (WHERE p.status IN ('sold', 'rented')),
		       COALESCE(SUM(p.price), 0)
		FROM agents a
		LEFT JOIN properties p ON p.agent_id = a.id AND p.archived_at IS NULL
		GROUP BY a.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("agent portfolios: %w", err)
	}
	defer rows.Close()

	aggs := make([]PortfolioAggregate, 0)
	for rows.Next() {
		var agg PortfolioAggregate
		if err := rows.Scan(&agg.AgentID, &agg.AssignedCount, &agg.ClosedCount, &agg.TotalValue); err != nil {
			return nil, fmt.Errorf("scan agent portfolio: %w", err)
		}
		aggs = append(aggs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agent portfolios: %w", err)
	}
	return aggs, nil
}
