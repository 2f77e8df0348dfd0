package repository

import (
	"context"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

// EntityRepository defines data access for locally tracked entities.
type EntityRepository interface {
	// Upsert creates the (entityType, externalID) row or refreshes its
	// display name and updated_at on conflict. It never errors on repeats.
	Upsert(ctx context.Context, entityType string, externalID int64, entityName string) (*model.Entity, error)

	// Lookup returns the entity or sql.ErrNoRows.
	Lookup(ctx context.Context, entityType string, externalID int64) (*model.Entity, error)
}
