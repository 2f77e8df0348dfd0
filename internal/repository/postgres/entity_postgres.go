package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// EntityPostgres is a PostgreSQL implementation of repository.EntityRepository.
// It uses parameterized queries and contains no business logic.
type EntityPostgres struct {
	db DBTX
}

// NewEntityPostgres creates a new EntityPostgres repository.
func NewEntityPostgres(db DBTX) *EntityPostgres {
	return &EntityPostgres{db: db}
}

var _ repository.EntityRepository = (*EntityPostgres)(nil)

// Upsert inserts the (entity_type, external_entity_id) row or refreshes its
// display name and updated_at on conflict. An empty entityName keeps the
// existing name.
func (r *EntityPostgres) Upsert(ctx context.Context, entityType string, externalID int64, entityName string) (*model.Entity, error) {
	const q = `
		INSERT INTO entities (id, entity_type, external_entity_id, entity_name, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entity_type, external_entity_id) DO UPDATE
		SET entity_name = COALESCE(NULLIF(EXCLUDED.entity_name, ''), entities.entity_name),
		    updated_at  = EXCLUDED.updated_at
		RETURNING id, entity_type, external_entity_id, entity_name, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		uuid.New().String(),
		entityType,
		externalID,
		entityName,
		time.Now().UTC(),
	)
	var e model.Entity
	if err := row.Scan(
		&e.ID,
		&e.EntityType,
		&e.ExternalEntityID,
		&e.EntityName,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// Lookup fetches a single entity by its external key.
func (r *EntityPostgres) Lookup(ctx context.Context, entityType string, externalID int64) (*model.Entity, error) {
	const q = `
		SELECT id, entity_type, external_entity_id, entity_name, updated_at
		FROM entities
		WHERE entity_type = $1 AND external_entity_id = $2
	`
	row := r.db.QueryRowContext(ctx, q, entityType, externalID)
	var e model.Entity
	if err := row.Scan(
		&e.ID,
		&e.EntityType,
		&e.ExternalEntityID,
		&e.EntityName,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
