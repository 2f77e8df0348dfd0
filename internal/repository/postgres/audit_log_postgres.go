package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// AuditLogPostgres is a PostgreSQL implementation of
// repository.AuditLogRepository. Append plus read-side trail queries; no
// update or delete surface.
type AuditLogPostgres struct {
	db DBTX
}

// NewAuditLogPostgres creates a new AuditLogPostgres repository.
func NewAuditLogPostgres(db DBTX) *AuditLogPostgres {
	return &AuditLogPostgres{db: db}
}

var _ repository.AuditLogRepository = (*AuditLogPostgres)(nil)

// Append inserts one audit log entry.
func (r *AuditLogPostgres) Append(ctx context.Context, e *model.AuditLogEntry) error {
	const q = `
		INSERT INTO document_audit_logs (
			id, document_id, operation, record_id,
			old_values, new_values, changed_fields,
			user_id, user_role, session_id, ip_address, user_agent,
			reason, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	var oldVals, newVals, changed any
	if len(e.OldValues) > 0 {
		oldVals = []byte(e.OldValues)
	}
	if len(e.NewValues) > 0 {
		newVals = []byte(e.NewValues)
	}
	if len(e.ChangedFields) > 0 {
		b, err := json.Marshal(e.ChangedFields)
		if err != nil {
			return fmt.Errorf("encode changed_fields: %w", err)
		}
		changed = b
	}
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.DocumentID,
		string(e.Operation),
		e.RecordID,
		oldVals,
		newVals,
		changed,
		e.UserID,
		e.UserRole,
		e.SessionID,
		e.IPAddress,
		e.UserAgent,
		e.Reason,
		e.Timestamp,
	)
	return err
}

const auditSelect = `
	SELECT id, document_id, operation, record_id,
	       old_values, new_values, changed_fields,
	       user_id, user_role, session_id, ip_address, user_agent,
	       reason, created_at
	FROM document_audit_logs
`

func scanAuditEntry(row rowScanner, e *model.AuditLogEntry, extra ...any) error {
	var oldVals, newVals, changed []byte
	dest := []any{
		&e.ID,
		&e.DocumentID,
		&e.Operation,
		&e.RecordID,
		&oldVals,
		&newVals,
		&changed,
		&e.UserID,
		&e.UserRole,
		&e.SessionID,
		&e.IPAddress,
		&e.UserAgent,
		&e.Reason,
		&e.Timestamp,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	e.OldValues = oldVals
	e.NewValues = newVals
	if len(changed) > 0 {
		if err := json.Unmarshal(changed, &e.ChangedFields); err != nil {
			return fmt.Errorf("decode changed_fields: %w", err)
		}
	}
	return nil
}

// TrailByDocument returns entries for one document, newest first.
func (r *AuditLogPostgres) TrailByDocument(ctx context.Context, documentID string, limit int) ([]model.AuditLogEntry, error) {
	q := auditSelect + ` WHERE document_id = $1 ORDER BY created_at DESC, id DESC`
	args := []any{documentID}
	if limit > 0 {
		args = append(args, limit)
		q += ` LIMIT $2`
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.AuditLogEntry, 0)
	for rows.Next() {
		var e model.AuditLogEntry
		if err := scanAuditEntry(rows, &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// TrailByUser returns one user's entries joined with document display fields.
func (r *AuditLogPostgres) TrailByUser(ctx context.Context, userID string, limit int) ([]model.AuditTrailEntry, error) {
	q := `
		SELECT a.id, a.document_id, a.operation, a.record_id,
		       a.old_values, a.new_values, a.changed_fields,
		       a.user_id, a.user_role, a.session_id, a.ip_address, a.user_agent,
		       a.reason, a.created_at,
		       d.file_name, t.type_name, e.entity_type, e.entity_name
		FROM document_audit_logs a
		JOIN documents d ON d.id = a.document_id
		JOIN document_types t ON t.id = d.document_type_id
		JOIN entities e ON e.id = d.entity_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC
	`
	args := []any{userID}
	if limit > 0 {
		args = append(args, limit)
		q += ` LIMIT $2`
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.AuditTrailEntry, 0)
	for rows.Next() {
		var e model.AuditTrailEntry
		if err := scanAuditEntry(rows, &e.AuditLogEntry,
			&e.FileName, &e.TypeName, &e.EntityType, &e.EntityName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// OperationStats aggregates entries per operation within the optional
// [from, to] window.
func (r *AuditLogPostgres) OperationStats(ctx context.Context, from, to *time.Time) ([]model.OperationStat, error) {
	conds := []string{}
	args := []any{}
	if from != nil {
		args = append(args, *from)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	q := `
		SELECT operation, COUNT(*), COUNT(DISTINCT document_id), COUNT(DISTINCT user_id)
		FROM document_audit_logs
	`
	if len(conds) > 0 {
		q += " WHERE " + conds[0]
		for _, c := range conds[1:] {
			q += " AND " + c
		}
	}
	q += ` GROUP BY operation ORDER BY operation ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]model.OperationStat, 0)
	for rows.Next() {
		var s model.OperationStat
		if err := rows.Scan(&s.Operation, &s.Count, &s.DistinctDocuments, &s.DistinctUsers); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
