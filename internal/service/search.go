package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// expiringCap bounds the Expiring convenience query.
const expiringCap = 100

// SearchService exposes filtered, paginated queries over active documents.
type SearchService interface {
	// Search runs the conjunctive all-optional filter, newest first. An
	// absent filter field is unconstrained, never "match null".
	Search(ctx context.Context, f repository.DocumentFilter) ([]model.DocumentDetails, error)

	// Expiring returns documents whose expiry date falls within the next
	// withinDays days, capped at 100 rows.
	Expiring(ctx context.Context, withinDays int) ([]model.DocumentDetails, error)

	// Stats aggregates active documents per type; zero-document types
	// still appear with zero counts.
	Stats(ctx context.Context, entityType string) ([]model.TypeStat, error)
}

type searchService struct {
	store repository.Store
}

// NewSearchService constructs a new SearchService.
func NewSearchService(store repository.Store) SearchService {
	return &searchService{store: store}
}

func (s *searchService) Search(ctx context.Context, f repository.DocumentFilter) ([]model.DocumentDetails, error) {
	if f.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}
	if f.Offset < 0 {
		return nil, fmt.Errorf("offset must not be negative")
	}
	return s.store.Repos().Documents.Search(ctx, f)
}

func (s *searchService) Expiring(ctx context.Context, withinDays int) ([]model.DocumentDetails, error) {
	if withinDays < 0 {
		return nil, fmt.Errorf("withinDays must not be negative")
	}
	before := time.Now().UTC().AddDate(0, 0, withinDays)
	return s.store.Repos().Documents.Search(ctx, repository.DocumentFilter{
		ExpiringBefore: &before,
		Limit:          expiringCap,
	})
}

func (s *searchService) Stats(ctx context.Context, entityType string) ([]model.TypeStat, error) {
	return s.store.Repos().Documents.TypeStats(ctx, entityType)
}
