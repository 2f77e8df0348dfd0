package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db DBTX
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db DBTX) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// detailsSelect is the shared column list for every joined document read.
const detailsSelect = `
	SELECT d.id, d.entity_id, d.document_type_id, d.document_number,
	       d.file_name, d.original_file_name, d.file_path, d.file_size,
	       d.mime_type, d.file_hash, d.expiry_date, d.notes, d.metadata,
	       d.is_verified, d.verified_by, d.verified_at, d.is_active,
	       d.uploaded_at, d.updated_at,
	       t.type_name, t.display_name, t.category,
	       e.entity_type, e.external_entity_id, e.entity_name
	FROM documents d
	JOIN document_types t ON t.id = d.document_type_id
	JOIN entities e ON e.id = d.entity_id
`

func scanDetails(row rowScanner) (*model.DocumentDetails, error) {
	var (
		d        model.DocumentDetails
		metadata []byte
	)
	if err := row.Scan(
		&d.ID,
		&d.EntityID,
		&d.DocumentTypeID,
		&d.DocumentNumber,
		&d.FileName,
		&d.OriginalFileName,
		&d.FilePath,
		&d.FileSize,
		&d.MimeType,
		&d.FileHash,
		&d.ExpiryDate,
		&d.Notes,
		&metadata,
		&d.IsVerified,
		&d.VerifiedBy,
		&d.VerifiedAt,
		&d.IsActive,
		&d.UploadedAt,
		&d.UpdatedAt,
		&d.TypeName,
		&d.TypeDisplayName,
		&d.TypeCategory,
		&d.EntityType,
		&d.ExternalEntityID,
		&d.EntityName,
	); err != nil {
		return nil, err
	}
	d.Metadata = metadata
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (
			id, entity_id, document_type_id, document_number,
			file_name, original_file_name, file_path, file_size, mime_type,
			file_hash, expiry_date, notes, metadata,
			is_verified, verified_by, verified_at, is_active,
			uploaded_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, uploaded_at, updated_at
	`
	var metadata any
	if len(doc.Metadata) > 0 {
		metadata = []byte(doc.Metadata)
	}
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.EntityID,
		doc.DocumentTypeID,
		doc.DocumentNumber,
		doc.FileName,
		doc.OriginalFileName,
		doc.FilePath,
		doc.FileSize,
		doc.MimeType,
		doc.FileHash,
		doc.ExpiryDate,
		doc.Notes,
		metadata,
		doc.IsVerified,
		doc.VerifiedBy,
		doc.VerifiedAt,
		doc.IsActive,
		doc.UploadedAt,
		doc.UpdatedAt,
	)
	out := *doc
	if err := row.Scan(&out.ID, &out.UploadedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single active document by its ID with display fields.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.DocumentDetails, error) {
	q := detailsSelect + ` WHERE d.id = $1 AND d.is_active = TRUE`
	return scanDetails(r.db.QueryRowContext(ctx, q, id))
}

// FindAnyByID fetches a document regardless of its soft-delete state.
func (r *DocumentPostgres) FindAnyByID(ctx context.Context, id string) (*model.DocumentDetails, error) {
	q := detailsSelect + ` WHERE d.id = $1`
	return scanDetails(r.db.QueryRowContext(ctx, q, id))
}

// ListByEntity returns active documents of one entity, newest first.
func (r *DocumentPostgres) ListByEntity(ctx context.Context, entityType string, externalID int64, typeName string) ([]model.DocumentDetails, error) {
	q := detailsSelect + ` WHERE d.is_active = TRUE AND e.entity_type = $1 AND e.external_entity_id = $2`
	args := []any{entityType, externalID}
	if typeName != "" {
		args = append(args, typeName)
		q += ` AND t.type_name = $3`
	}
	q += ` ORDER BY d.uploaded_at DESC, d.id DESC`
	return r.queryDetails(ctx, q, args...)
}

// ExistsActiveWithHash checks the per (entity, type) content-hash dedup scope.
func (r *DocumentPostgres) ExistsActiveWithHash(ctx context.Context, entityID, documentTypeID, fileHash string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM documents
			WHERE entity_id = $1 AND document_type_id = $2 AND file_hash = $3 AND is_active = TRUE
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, entityID, documentTypeID, fileHash).Scan(&exists)
	return exists, err
}

// ExistsWithFileName checks for a stored file name within (entity, type),
// regardless of soft-delete state. The migrator keys idempotency on it.
func (r *DocumentPostgres) ExistsWithFileName(ctx context.Context, entityID, documentTypeID, fileName string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM documents
			WHERE entity_id = $1 AND document_type_id = $2 AND file_name = $3
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, entityID, documentTypeID, fileName).Scan(&exists)
	return exists, err
}

// Update persists the mutable fields of doc.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) error {
	const q = `
		UPDATE documents
		SET document_number = $2, notes = $3, metadata = $4,
		    is_verified = $5, verified_by = $6, verified_at = $7,
		    updated_at = $8
		WHERE id = $1
	`
	var metadata any
	if len(doc.Metadata) > 0 {
		metadata = []byte(doc.Metadata)
	}
	res, err := r.db.ExecContext(ctx, q,
		doc.ID,
		doc.DocumentNumber,
		doc.Notes,
		metadata,
		doc.IsVerified,
		doc.VerifiedBy,
		doc.VerifiedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

// SetActive flips the soft-delete flag.
func (r *DocumentPostgres) SetActive(ctx context.Context, id string, active bool) error {
	const q = `UPDATE documents SET is_active = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, active)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

// HardDelete removes the row outright.
func (r *DocumentPostgres) HardDelete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

// Search assembles the all-optional filter as (predicate, arg) pairs joined
// with AND and runs a single parameterized query. Filter input never
// reaches the SQL text.
func (r *DocumentPostgres) Search(ctx context.Context, f repository.DocumentFilter) ([]model.DocumentDetails, error) {
	conds := []string{"d.is_active = TRUE"}
	args := []any{}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.EntityType != nil {
		add("e.entity_type = $%d", *f.EntityType)
	}
	if f.ExternalEntityID != nil {
		add("e.external_entity_id = $%d", *f.ExternalEntityID)
	}
	if f.TypeName != nil {
		add("t.type_name = $%d", *f.TypeName)
	}
	if f.IsVerified != nil {
		add("d.is_verified = $%d", *f.IsVerified)
	}
	if f.ExpiringBefore != nil {
		add("d.expiry_date IS NOT NULL AND d.expiry_date <= $%d", *f.ExpiringBefore)
	}

	q := detailsSelect + " WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY d.uploaded_at DESC, d.id DESC"

	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
		if f.Offset > 0 {
			args = append(args, f.Offset)
			q += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	return r.queryDetails(ctx, q, args...)
}

// TypeStats aggregates active documents per type. The LEFT JOIN keeps
// zero-document types in the result.
func (r *DocumentPostgres) TypeStats(ctx context.Context, entityType string) ([]model.TypeStat, error) {
	q := `
		SELECT t.type_name, t.display_name,
		       COUNT(d.id),
		       COALESCE(SUM(d.file_size), 0),
		       COUNT(d.id) FILTER (WHERE d.is_verified)
		FROM document_types t
		LEFT JOIN documents d ON d.document_type_id = t.id AND d.is_active = TRUE
	`
	args := []any{}
	if entityType != "" {
		args = append(args, entityType)
		q += ` AND d.entity_id IN (SELECT id FROM entities WHERE entity_type = $1)`
	}
	q += `
		WHERE t.is_active = TRUE
		GROUP BY t.type_name, t.display_name
		ORDER BY t.display_name ASC
	`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]model.TypeStat, 0)
	for rows.Next() {
		var s model.TypeStat
		if err := rows.Scan(&s.TypeName, &s.DisplayName, &s.DocumentCount, &s.TotalBytes, &s.VerifiedCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// CountActive counts active documents, optionally for one entity type.
func (r *DocumentPostgres) CountActive(ctx context.Context, entityType string) (int, error) {
	q := `SELECT COUNT(*) FROM documents d WHERE d.is_active = TRUE`
	args := []any{}
	if entityType != "" {
		args = append(args, entityType)
		q += ` AND d.entity_id IN (SELECT id FROM entities WHERE entity_type = $1)`
	}
	var n int
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&n)
	return n, err
}

// ActiveFilePaths returns the file paths of all active documents.
func (r *DocumentPostgres) ActiveFilePaths(ctx context.Context) ([]string, error) {
	const q = `SELECT file_path FROM documents WHERE is_active = TRUE`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *DocumentPostgres) queryDetails(ctx context.Context, q string, args ...any) ([]model.DocumentDetails, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentDetails, 0)
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
