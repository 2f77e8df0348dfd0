package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentRepository) FindAnyByID(ctx context.Context, id string) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentRepository) ListByEntity(ctx context.Context, entityType string, externalID int64, typeName string) ([]model.DocumentDetails, error) {
	args := m.Called(ctx, entityType, externalID, typeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentRepository) ExistsActiveWithHash(ctx context.Context, entityID, documentTypeID, fileHash string) (bool, error) {
	args := m.Called(ctx, entityID, documentTypeID, fileHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) ExistsWithFileName(ctx context.Context, entityID, documentTypeID, fileName string) (bool, error) {
	args := m.Called(ctx, entityID, documentTypeID, fileName)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *model.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockDocumentRepository) HardDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) Search(ctx context.Context, f repository.DocumentFilter) ([]model.DocumentDetails, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentRepository) TypeStats(ctx context.Context, entityType string) ([]model.TypeStat, error) {
	args := m.Called(ctx, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TypeStat), args.Error(1)
}

func (m *MockDocumentRepository) CountActive(ctx context.Context, entityType string) (int, error) {
	args := m.Called(ctx, entityType)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepository) ActiveFilePaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
