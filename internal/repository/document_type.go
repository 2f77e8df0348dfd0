package repository

import (
	"context"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

// DocumentTypeRepository reads the static document type catalog. Types are
// seeded at schema bootstrap; there is no write surface.
type DocumentTypeRepository interface {
	// List returns active types ordered by display name, optionally
	// filtered by category.
	List(ctx context.Context, category string) ([]model.DocumentType, error)

	// GetByName returns the active type with the given type name, or
	// sql.ErrNoRows when unknown or inactive.
	GetByName(ctx context.Context, typeName string) (*model.DocumentType, error)
}
