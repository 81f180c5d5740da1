package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realty-portal-backend/internal/catalog/domain"
	"realty-portal-backend/platform/apperr"
)

const propertyNotFoundMessage = "property not found"

// propertyColumns is the canonical select list shared by every property query.
const propertyColumns = `
	id, title, price, location, type, COALESCE(listing_type, 'sale'),
	beds, baths, sqft, COALESCE(image_url, ''), COALESCE(images, '{}'),
	COALESCE(description, ''), COALESCE(short_description, ''),
	COALESCE(features, '{}'::jsonb), featured, is_published,
	COALESCE(status, 'available'), agent_id, archived_at, created_at, updated_at`

// Repo implements the catalog repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListPublished returns publicly visible listings, newest first.
func (r *Repo) ListPublished(ctx context.Context) ([]domain.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM properties
		WHERE is_published AND archived_at IS NULL
		ORDER BY created_at DESC`, propertyColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list published properties: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// ListAll returns non-archived listings for the admin console, newest first.
func (r *Repo) ListAll(ctx context.Context, params ListParams) ([]domain.Property, int, error) {
	where := "archived_at IS NULL"
	args := []interface{}{}
	if params.AgentID != nil {
		where += " AND agent_id = $1"
		args = append(args, *params.AgentID)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties WHERE %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	argIdx := len(args) + 1
	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s FROM properties
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, propertyColumns, where, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	items, err := scanProperties(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListPending returns unpublished, non-archived listings awaiting review,
// oldest first so the review queue is processed in submission order.
func (r *Repo) ListPending(ctx context.Context) ([]domain.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM properties
		WHERE NOT is_published AND archived_at IS NULL
		ORDER BY created_at ASC`, propertyColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending properties: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// GetByID retrieves a property by ID, archived rows included so callers can
// decide visibility.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1`, propertyColumns)

	row := r.pool.QueryRow(ctx, query, id)
	prop, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return domain.Property{}, fmt.Errorf("get property by id: %w", err)
	}
	return prop, nil
}

// Create inserts a property.
func (r *Repo) Create(ctx context.Context, params CreatePropertyParams) (domain.Property, error) {
	featuresJSON, err := json.Marshal(params.Features)
	if err != nil {
		return domain.Property{}, fmt.Errorf("marshal features: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (
			title, price, location, type, listing_type, beds, baths, sqft,
			image_url, images, description, short_description, features,
			featured, is_published, agent_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING %s`, propertyColumns)

	row := r.pool.QueryRow(ctx, query,
		params.Title, params.Price, params.Location,
		string(params.Type), string(params.ListingType),
		params.Beds, params.Baths, params.Sqft,
		params.ImageURL, params.Images,
		params.Description, params.ShortDescription, featuresJSON,
		params.Featured, params.IsPublished, params.AgentID,
	)
	prop, err := scanProperty(row)
	if err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", err)
	}
	return prop, nil
}

// Update applies a partial update; nil params keep the stored value.
func (r *Repo) Update(ctx context.Context, params UpdatePropertyParams) (domain.Property, error) {
	var featuresJSON []byte
	if params.Features != nil {
		encoded, err := json.Marshal(params.Features)
		if err != nil {
			return domain.Property{}, fmt.Errorf("marshal features: %w", err)
		}
		featuresJSON = encoded
	}

	var typeStr, listingStr *string
	if params.Type != nil {
		s := string(*params.Type)
		typeStr = &s
	}
	if params.ListingType != nil {
		s := string(*params.ListingType)
		listingStr = &s
	}

	query := fmt.Sprintf(`
		UPDATE properties SET
			title = COALESCE($2, title),
			price = COALESCE($3, price),
			location = COALESCE($4, location),
			type = COALESCE($5, type),
			listing_type = COALESCE($6, listing_type),
			beds = COALESCE($7, beds),
			baths = COALESCE($8, baths),
			sqft = COALESCE($9, sqft),
			image_url = COALESCE($10, image_url),
			images = COALESCE($11, images),
			description = COALESCE($12, description),
			short_description = COALESCE($13, short_description),
			features = COALESCE($14, features),
			featured = COALESCE($15, featured),
			is_published = COALESCE($16, is_published),
			updated_at = now()
		WHERE id = $1 AND archived_at IS NULL
		RETURNING %s`, propertyColumns)

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Title, params.Price, params.Location,
		typeStr, listingStr,
		params.Beds, params.Baths, params.Sqft,
		params.ImageURL, params.Images,
		params.Description, params.ShortDescription, featuresJSON,
		params.Featured, params.IsPublished,
	)
	prop, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return domain.Property{}, fmt.Errorf("update property: %w", err)
	}
	return prop, nil
}

// SetStatus updates the lifecycle status.
func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Property, error) {
	query := fmt.Sprintf(`
		UPDATE properties SET status = $2, updated_at = now()
		WHERE id = $1 AND archived_at IS NULL
		RETURNING %s`, propertyColumns)

	row := r.pool.QueryRow(ctx, query, id, string(status))
	prop, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return domain.Property{}, fmt.Errorf("set property status: %w", err)
	}
	return prop, nil
}

// SetAgent assigns or clears the responsible agent.
func (r *Repo) SetAgent(ctx context.Context, id uuid.UUID, agentID *uuid.UUID) (domain.Property, error) {
	query := fmt.Sprintf(`
		UPDATE properties SET agent_id = $2, updated_at = now()
		WHERE id = $1 AND archived_at IS NULL
		RETURNING %s`, propertyColumns)

	row := r.pool.QueryRow(ctx, query, id, agentID)
	prop, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return domain.Property{}, fmt.Errorf("set property agent: %w", err)
	}
	return prop, nil
}

// SetPublished flips the publication flag; used by the review queue.
func (r *Repo) SetPublished(ctx context.Context, id uuid.UUID, published bool) (domain.Property, error) {
	query := fmt.Sprintf(`
		UPDATE properties SET is_published = $2, updated_at = now()
		WHERE id = $1 AND archived_at IS NULL
		RETURNING %s`, propertyColumns)

	row := r.pool.QueryRow(ctx, query, id, published)
	prop, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return domain.Property{}, fmt.Errorf("set property published: %w", err)
	}
	return prop, nil
}

// Archive soft-deletes a property. Rows stay behind for agent metrics history.
func (r *Repo) Archive(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE properties SET archived_at = now(), updated_at = now()
		WHERE id = $1 AND archived_at IS NULL`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("archive property: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(propertyNotFoundMessage)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (domain.Property, error) {
	var (
		prop         domain.Property
		rawType      string
		rawListing   string
		rawStatus    string
		featuresJSON []byte
	)

	err := row.Scan(
		&prop.ID, &prop.Title, &prop.Price, &prop.Location, &rawType, &rawListing,
		&prop.Beds, &prop.Baths, &prop.Sqft, &prop.ImageURL, &prop.Images,
		&prop.Description, &prop.ShortDescription, &featuresJSON,
		&prop.Featured, &prop.IsPublished, &rawStatus,
		&prop.AgentID, &prop.ArchivedAt, &prop.CreatedAt, &prop.UpdatedAt,
	)
	if err != nil {
		return domain.Property{}, err
	}

	// Unknown stored values normalize to documented defaults at this boundary.
	prop.Type = domain.NormalizeType(rawType)
	prop.ListingType = domain.NormalizeListingType(rawListing)
	prop.Status = domain.NormalizeStatus(rawStatus)

	if len(featuresJSON) > 0 {
		if err := json.Unmarshal(featuresJSON, &prop.Features); err != nil {
			// Malformed features degrade to empty lists rather than failing the row.
			prop.Features = domain.Features{}
		}
	}
	return prop, nil
}

func scanProperties(rows pgx.Rows) ([]domain.Property, error) {
	items := make([]domain.Property, 0)
	for rows.Next() {
		prop, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		items = append(items, prop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return items, nil
}
