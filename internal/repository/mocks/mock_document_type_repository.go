package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

type MockDocumentTypeRepository struct {
	mock.Mock
}

func (m *MockDocumentTypeRepository) List(ctx context.Context, category string) ([]model.DocumentType, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepository) GetByName(ctx context.Context, typeName string) (*model.DocumentType, error) {
	args := m.Called(ctx, typeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}
