package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Upsert(ctx context.Context, entityType string, externalID int64, entityName string) (*model.Entity, error) {
	args := m.Called(ctx, entityType, externalID, entityName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entity), args.Error(1)
}

func (m *MockEntityRepository) Lookup(ctx context.Context, entityType string, externalID int64) (*model.Entity, error) {
	args := m.Called(ctx, entityType, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entity), args.Error(1)
}
