// Package repository implements lead storage on Postgres.
// Leads are append-only: no update or delete statements exist here.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lead is a captured sales contact.
type Lead struct {
	ID                uuid.UUID
	Name              string
	Phone             string
	Email             string
	Intent            string
	TranscriptSummary string
	CreatedAt         time.Time
}

// CreateLeadParams contains data for recording a lead.
type CreateLeadParams struct {
	Name              string
	Phone             string
	Email             string
	Intent            string
	TranscriptSummary string
}

// ListLeadsParams defines pagination for the admin lead list.
type ListLeadsParams struct {
	Offset int
	Limit  int
}

// Repository defines lead storage operations.
type Repository interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	List(ctx context.Context, params ListLeadsParams) ([]Lead, int, error)
}

// Repo implements the leads repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create records a lead.
func (r *Repo) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	query := `
		INSERT INTO leads (name, phone, email, intent, transcript_summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, phone, email, COALESCE(intent, ''), COALESCE(transcript_summary, ''), created_at`

	var lead Lead
	err := r.pool.QueryRow(ctx, query,
		params.Name, params.Phone, params.Email, params.Intent, params.TranscriptSummary,
	).Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Intent, &lead.TranscriptSummary, &lead.CreatedAt)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// List returns leads, newest first.
func (r *Repo) List(ctx context.Context, params ListLeadsParams) ([]Lead, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `
		SELECT id, name, phone, email, COALESCE(intent, ''), COALESCE(transcript_summary, ''), created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Intent, &lead.TranscriptSummary, &lead.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, total, nil
}
