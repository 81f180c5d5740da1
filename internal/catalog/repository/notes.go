package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"realty-portal-backend/internal/catalog/domain"
	"realty-portal-backend/platform/apperr"
)

const noteNotFoundMessage = "note not found"

// AddNote appends a note to a property's timeline.
func (r *Repo) AddNote(ctx context.Context, propertyID uuid.UUID, body string) (domain.Note, error) {
	query := `
		INSERT INTO property_notes (property_id, body)
		VALUES ($1, $2)
		RETURNING id, property_id, body, created_at, updated_at`

	var note domain.Note
	err := r.pool.QueryRow(ctx, query, propertyID, body).Scan(
		&note.ID, &note.PropertyID, &note.Body, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return domain.Note{}, fmt.Errorf("add note: %w", err)
	}
	return note, nil
}

// ListNotes returns a property's notes, newest first.
func (r *Repo) ListNotes(ctx context.Context, propertyID uuid.UUID) ([]domain.Note, error) {
	query := `
		SELECT id, property_id, body, created_at, updated_at
		FROM property_notes
		WHERE property_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.PropertyID, &note.Body, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

// UpdateNote rewrites a note's body.
func (r *Repo) UpdateNote(ctx context.Context, propertyID, noteID uuid.UUID, body string) (domain.Note, error) {
	query := `
		UPDATE property_notes SET body = $3, updated_at = now()
		WHERE id = $2 AND property_id = $1
		RETURNING id, property_id, body, created_at, updated_at`

	var note domain.Note
	err := r.pool.QueryRow(ctx, query, propertyID, noteID, body).Scan(
		&note.ID, &note.PropertyID, &note.Body, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, apperr.NotFound(noteNotFoundMessage)
		}
		return domain.Note{}, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

// DeleteNote removes a note from a property's timeline.
func (r *Repo) DeleteNote(ctx context.Context, propertyID, noteID uuid.UUID) error {
	query := `DELETE FROM property_notes WHERE id = $2 AND property_id = $1`
	result, err := r.pool.Exec(ctx, query, propertyID, noteID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(noteNotFoundMessage)
	}
	return nil
}
