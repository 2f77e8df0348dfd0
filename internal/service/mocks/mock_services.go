package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
	"github.com/vaultdocs/vaultdocs/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, in service.UploadInput, actor model.Actor) (*model.DocumentDetails, error) {
	args := m.Called(ctx, in, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentService) ListByEntity(ctx context.Context, entityType string, externalID int64, typeName string) ([]model.DocumentDetails, error) {
	args := m.Called(ctx, entityType, externalID, typeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, id string, patch model.DocumentUpdate, actor model.Actor) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id, patch, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string, actor model.Actor, hard bool) error {
	args := m.Called(ctx, id, actor, hard)
	return args.Error(0)
}

func (m *MockDocumentService) Restore(ctx context.Context, id string, actor model.Actor) (*model.DocumentDetails, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentDetails), args.Error(1)
}

func (m *MockDocumentService) FetchForRead(ctx context.Context, id string, actor model.Actor, purpose model.AccessType) (io.ReadCloser, *model.DocumentDetails, error) {
	args := m.Called(ctx, id, actor, purpose)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var doc *model.DocumentDetails
	if args.Get(1) != nil {
		doc = args.Get(1).(*model.DocumentDetails)
	}
	return rc, doc, args.Error(2)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, f repository.DocumentFilter) ([]model.DocumentDetails, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentDetails), args.Error(1)
}

func (m *MockSearchService) Expiring(ctx context.Context, withinDays int) ([]model.DocumentDetails, error) {
	args := m.Called(ctx, withinDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentDetails), args.Error(1)
}

func (m *MockSearchService) Stats(ctx context.Context, entityType string) ([]model.TypeStat, error) {
	args := m.Called(ctx, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TypeStat), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) TrailByDocument(ctx context.Context, documentID string, limit int) ([]model.AuditLogEntry, error) {
	args := m.Called(ctx, documentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogEntry), args.Error(1)
}

func (m *MockAuditService) TrailByUser(ctx context.Context, userID string, limit int) ([]model.AuditTrailEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditTrailEntry), args.Error(1)
}

func (m *MockAuditService) OperationStats(ctx context.Context, from, to *time.Time) ([]model.OperationStat, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OperationStat), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListTypes(ctx context.Context, category string) ([]model.DocumentType, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentType), args.Error(1)
}

func (m *MockCatalogService) GetType(ctx context.Context, typeName string) (*model.DocumentType, error) {
	args := m.Called(ctx, typeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}
