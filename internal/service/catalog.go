package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// CatalogService reads the static document type catalog.
type CatalogService interface {
	// ListTypes returns active types ordered by display name, optionally
	// filtered by category.
	ListTypes(ctx context.Context, category string) ([]model.DocumentType, error)

	// GetType resolves a type name or returns ErrDocumentTypeInvalid.
	GetType(ctx context.Context, typeName string) (*model.DocumentType, error)
}

type catalogService struct {
	store repository.Store
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

func (s *catalogService) ListTypes(ctx context.Context, category string) ([]model.DocumentType, error) {
	return s.store.Repos().Types.List(ctx, category)
}

func (s *catalogService) GetType(ctx context.Context, typeName string) (*model.DocumentType, error) {
	t, err := s.store.Repos().Types.GetByName(ctx, typeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentTypeInvalid
		}
		return nil, err
	}
	return t, nil
}
