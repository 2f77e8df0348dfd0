package service

import (
	"context"
	"time"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// AuditService exposes the read side of the audit trail. Writes happen
// only as side effects of document mutations; there is no way to alter or
// remove an entry once appended.
type AuditService interface {
	// TrailByDocument returns a document's audit entries, newest first.
	TrailByDocument(ctx context.Context, documentID string, limit int) ([]model.AuditLogEntry, error)

	// TrailByUser returns a user's audit entries joined with document
	// display fields, newest first.
	TrailByUser(ctx context.Context, userID string, limit int) ([]model.AuditTrailEntry, error)

	// OperationStats aggregates entries per operation within the optional
	// [from, to] window.
	OperationStats(ctx context.Context, from, to *time.Time) ([]model.OperationStat, error)
}

type auditService struct {
	store repository.Store
}

// NewAuditService constructs a new AuditService.
func NewAuditService(store repository.Store) AuditService {
	return &auditService{store: store}
}

func (s *auditService) TrailByDocument(ctx context.Context, documentID string, limit int) ([]model.AuditLogEntry, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	return s.store.Repos().AuditLogs.TrailByDocument(ctx, documentID, limit)
}

func (s *auditService) TrailByUser(ctx context.Context, userID string, limit int) ([]model.AuditTrailEntry, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	return s.store.Repos().AuditLogs.TrailByUser(ctx, userID, limit)
}

func (s *auditService) OperationStats(ctx context.Context, from, to *time.Time) ([]model.OperationStat, error) {
	return s.store.Repos().AuditLogs.OperationStats(ctx, from, to)
}
