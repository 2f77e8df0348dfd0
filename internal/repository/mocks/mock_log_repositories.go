package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

type MockAccessLogRepository struct {
	mock.Mock
}

func (m *MockAccessLogRepository) Append(ctx context.Context, e *model.AccessLogEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Append(ctx context.Context, e *model.AuditLogEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockAuditLogRepository) TrailByDocument(ctx context.Context, documentID string, limit int) ([]model.AuditLogEntry, error) {
	args := m.Called(ctx, documentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditLogEntry), args.Error(1)
}

func (m *MockAuditLogRepository) TrailByUser(ctx context.Context, userID string, limit int) ([]model.AuditTrailEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditTrailEntry), args.Error(1)
}

func (m *MockAuditLogRepository) OperationStats(ctx context.Context, from, to *time.Time) ([]model.OperationStat, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OperationStat), args.Error(1)
}
