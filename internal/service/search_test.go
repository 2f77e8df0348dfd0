package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
	repoMocks "github.com/vaultdocs/vaultdocs/internal/repository/mocks"
)

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the filter through", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewSearchService(store)

		et := "client"
		f := repository.DocumentFilter{EntityType: &et, Limit: 10}
		store.Documents.On("Search", ctx, f).
			Return([]model.DocumentDetails{{Document: model.Document{ID: "1"}}}, nil)

		res, err := svc.Search(ctx, f)
		assert.NoError(t, err)
		assert.Len(t, res, 1)
		store.AssertExpectations(t)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewSearchService(store)

		_, err := svc.Search(ctx, repository.DocumentFilter{Limit: -1})
		assert.Error(t, err)
	})

	t.Run("rejects negative offset", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewSearchService(store)

		_, err := svc.Search(ctx, repository.DocumentFilter{Offset: -1})
		assert.Error(t, err)
	})
}

func TestSearchService_Expiring(t *testing.T) {
	ctx := context.Background()

	t.Run("builds a bounded expiry-window filter", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewSearchService(store)

		store.Documents.On("Search", ctx, mock.MatchedBy(func(f repository.DocumentFilter) bool {
			if f.ExpiringBefore == nil || f.Limit != expiringCap {
				return false
			}
			want := time.Now().UTC().AddDate(0, 0, 30)
			return f.ExpiringBefore.Sub(want).Abs() < time.Minute
		})).Return([]model.DocumentDetails{}, nil)

		_, err := svc.Expiring(ctx, 30)
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("rejects negative window", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewSearchService(store)

		_, err := svc.Expiring(ctx, -1)
		assert.Error(t, err)
	})
}

func TestSearchService_Stats(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	svc := NewSearchService(store)

	store.Documents.On("TypeStats", ctx, "client").
		Return([]model.TypeStat{{TypeName: "pan_card", DocumentCount: 3}}, nil)

	stats, err := svc.Stats(ctx, "client")
	assert.NoError(t, err)
	assert.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].DocumentCount)
	store.AssertExpectations(t)
}
