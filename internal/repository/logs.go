package repository

import (
	"context"
	"time"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

// AccessLogRepository is an append-only sink for document touches.
// There is intentionally no update or delete surface.
type AccessLogRepository interface {
	Append(ctx context.Context, e *model.AccessLogEntry) error
}

// AuditLogRepository is an append-only sink for mutation diffs, plus the
// read-side trail and aggregate queries.
type AuditLogRepository interface {
	Append(ctx context.Context, e *model.AuditLogEntry) error

	// TrailByDocument returns entries for one document, newest first.
	// limit <= 0 means no limit.
	TrailByDocument(ctx context.Context, documentID string, limit int) ([]model.AuditLogEntry, error)

	// TrailByUser returns entries recorded for one user, newest first,
	// joined with document display fields.
	TrailByUser(ctx context.Context, userID string, limit int) ([]model.AuditTrailEntry, error)

	// OperationStats aggregates entries per operation within the optional
	// [from, to] window. Nil bounds are open.
	OperationStats(ctx context.Context, from, to *time.Time) ([]model.OperationStat, error)
}
