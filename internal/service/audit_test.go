package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vaultdocs/vaultdocs/internal/model"
	repoMocks "github.com/vaultdocs/vaultdocs/internal/repository/mocks"
)

func TestAuditService_TrailByDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewAuditService(store)

		store.AuditLogs.On("TrailByDocument", ctx, "doc-1", 50).
			Return([]model.AuditLogEntry{{ID: "a1", Operation: model.AuditCreate}}, nil)

		entries, err := svc.TrailByDocument(ctx, "doc-1", 50)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		store.AssertExpectations(t)
	})

	t.Run("empty id", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewAuditService(store)

		_, err := svc.TrailByDocument(ctx, "", 50)
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestAuditService_TrailByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewAuditService(store)

		store.AuditLogs.On("TrailByUser", ctx, "user-1", 10).
			Return([]model.AuditTrailEntry{{FileName: "x.pdf"}}, nil)

		entries, err := svc.TrailByUser(ctx, "user-1", 10)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		store.AssertExpectations(t)
	})

	t.Run("empty id", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewAuditService(store)

		_, err := svc.TrailByUser(ctx, "", 10)
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestAuditService_OperationStats(t *testing.T) {
	ctx := context.Background()
	store := repoMocks.NewMockStore()
	svc := NewAuditService(store)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.AuditLogs.On("OperationStats", ctx, &from, (*time.Time)(nil)).
		Return([]model.OperationStat{{Operation: model.AuditCreate, Count: 7}}, nil)

	stats, err := svc.OperationStats(ctx, &from, nil)
	assert.NoError(t, err)
	assert.Equal(t, 7, stats[0].Count)
	store.AssertExpectations(t)
}

func TestCatalogService_GetType(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewCatalogService(store)

		store.Types.On("GetByName", ctx, "pan_card").Return(panType(), nil)

		typ, err := svc.GetType(ctx, "pan_card")
		assert.NoError(t, err)
		assert.Equal(t, "pan_card", typ.TypeName)
		store.AssertExpectations(t)
	})

	t.Run("unknown type", func(t *testing.T) {
		store := repoMocks.NewMockStore()
		svc := NewCatalogService(store)

		store.Types.On("GetByName", ctx, "nope").Return(nil, sql.ErrNoRows)

		_, err := svc.GetType(ctx, "nope")
		assert.ErrorIs(t, err, ErrDocumentTypeInvalid)
		store.AssertExpectations(t)
	})
}
