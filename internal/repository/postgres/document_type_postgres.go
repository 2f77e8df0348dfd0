package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// DocumentTypePostgres is a PostgreSQL implementation of
// repository.DocumentTypeRepository. The catalog is read-only at runtime.
type DocumentTypePostgres struct {
	db DBTX
}

// NewDocumentTypePostgres creates a new DocumentTypePostgres repository.
func NewDocumentTypePostgres(db DBTX) *DocumentTypePostgres {
	return &DocumentTypePostgres{db: db}
}

var _ repository.DocumentTypeRepository = (*DocumentTypePostgres)(nil)

// List returns active types ordered by display name, optionally filtered
// by category.
func (r *DocumentTypePostgres) List(ctx context.Context, category string) ([]model.DocumentType, error) {
	q := `
		SELECT id, type_name, display_name, category, allowed_mime_types, max_file_size, is_active
		FROM document_types
		WHERE is_active = TRUE
	`
	args := []any{}
	if category != "" {
		args = append(args, category)
		q += ` AND category = $1`
	}
	q += ` ORDER BY display_name ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]model.DocumentType, 0)
	for rows.Next() {
		t, err := scanDocumentType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}

// GetByName returns the active type with the given type name. Unknown and
// inactive names both surface as sql.ErrNoRows.
func (r *DocumentTypePostgres) GetByName(ctx context.Context, typeName string) (*model.DocumentType, error) {
	const q = `
		SELECT id, type_name, display_name, category, allowed_mime_types, max_file_size, is_active
		FROM document_types
		WHERE type_name = $1 AND is_active = TRUE
	`
	return scanDocumentType(r.db.QueryRowContext(ctx, q, typeName))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocumentType(row rowScanner) (*model.DocumentType, error) {
	var (
		t     model.DocumentType
		mimes []byte
	)
	if err := row.Scan(
		&t.ID,
		&t.TypeName,
		&t.DisplayName,
		&t.Category,
		&mimes,
		&t.MaxFileSize,
		&t.IsActive,
	); err != nil {
		return nil, err
	}
	if len(mimes) > 0 {
		if err := json.Unmarshal(mimes, &t.AllowedMimeTypes); err != nil {
			return nil, fmt.Errorf("decode allowed_mime_types: %w", err)
		}
	}
	return &t, nil
}
