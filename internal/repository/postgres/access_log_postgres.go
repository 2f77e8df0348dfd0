package postgres

import (
	"context"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// AccessLogPostgres is a PostgreSQL implementation of
// repository.AccessLogRepository. Insert only; the table carries no update
// or delete statements anywhere in the codebase.
type AccessLogPostgres struct {
	db DBTX
}

// NewAccessLogPostgres creates a new AccessLogPostgres repository.
func NewAccessLogPostgres(db DBTX) *AccessLogPostgres {
	return &AccessLogPostgres{db: db}
}

var _ repository.AccessLogRepository = (*AccessLogPostgres)(nil)

// Append inserts one access log entry.
func (r *AccessLogPostgres) Append(ctx context.Context, e *model.AccessLogEntry) error {
	const q = `
		INSERT INTO document_access_logs (
			id, document_id, access_type, accessed_by,
			ip_address, user_agent, client_label,
			success, error_message, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.DocumentID,
		string(e.AccessType),
		e.AccessedBy,
		e.IPAddress,
		e.UserAgent,
		e.ClientLabel,
		e.Success,
		e.ErrorMessage,
		e.Timestamp,
	)
	return err
}
