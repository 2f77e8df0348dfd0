package migrate

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LegacyDocument is one row of the legacy document store, read-only.
type LegacyDocument struct {
	ID           int64
	EntityType   string
	EntityID     int64
	DocumentType string
	FilePath     string
	FileSize     int64
	MimeType     string
	UploadedAt   time.Time
	ExpiryDate   *time.Time
	IsVerified   bool
	VerifiedBy   *string
	VerifiedAt   *time.Time
	Notes        string
	IsActive     bool
}

// LegacySource reads the legacy store: its rows and its file tree.
type LegacySource interface {
	// ActiveDocuments returns active legacy rows ordered by original
	// upload time, oldest first.
	ActiveDocuments(ctx context.Context) ([]LegacyDocument, error)

	// CountActive returns the number of active legacy rows.
	CountActive(ctx context.Context) (int, error)

	// Open streams the bytes of one legacy file by its stored path.
	Open(ctx context.Context, filePath string) (io.ReadCloser, error)
}

// EntityDirectory looks up display names in the external system that owns
// the entities. A miss is non-fatal; callers synthesize a label.
type EntityDirectory interface {
	DisplayName(ctx context.Context, entityType string, externalID int64) (string, error)
}

// sqlLegacySource reads the legacy schema over database/sql plus a local
// file tree rooted at a known path.
type sqlLegacySource struct {
	db   *sql.DB
	root string
}

// NewSQLLegacySource creates a LegacySource over the legacy database and
// its file root.
func NewSQLLegacySource(db *sql.DB, fileRoot string) LegacySource {
	return &sqlLegacySource{db: db, root: fileRoot}
}

func (s *sqlLegacySource) ActiveDocuments(ctx context.Context) ([]LegacyDocument, error) {
	const q = `
		SELECT id, entity_type, entity_id, document_type, file_path, file_size,
		       mime_type, uploaded_at, expiry_date, is_verified, verified_by,
		       verified_at, COALESCE(notes, ''), is_active
		FROM documents
		WHERE is_active = TRUE
		ORDER BY uploaded_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]LegacyDocument, 0)
	for rows.Next() {
		var d LegacyDocument
		if err := rows.Scan(
			&d.ID,
			&d.EntityType,
			&d.EntityID,
			&d.DocumentType,
			&d.FilePath,
			&d.FileSize,
			&d.MimeType,
			&d.UploadedAt,
			&d.ExpiryDate,
			&d.IsVerified,
			&d.VerifiedBy,
			&d.VerifiedAt,
			&d.Notes,
			&d.IsActive,
		); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *sqlLegacySource) CountActive(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE is_active = TRUE`).Scan(&n)
	return n, err
}

func (s *sqlLegacySource) Open(ctx context.Context, filePath string) (io.ReadCloser, error) {
	clean := filepath.Clean(filepath.FromSlash(filePath))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.root, clean))
}

// sqlEntityDirectory resolves display names from the external system's own
// tables (clients, shops) in the legacy database.
type sqlEntityDirectory struct {
	db *sql.DB
}

// NewSQLEntityDirectory creates an EntityDirectory over the legacy database.
func NewSQLEntityDirectory(db *sql.DB) EntityDirectory {
	return &sqlEntityDirectory{db: db}
}

func (d *sqlEntityDirectory) DisplayName(ctx context.Context, entityType string, externalID int64) (string, error) {
	var q string
	switch entityType {
	case "client":
		q = `SELECT name FROM clients WHERE id = $1`
	case "shop":
		q = `SELECT shop_name FROM shops WHERE id = $1`
	default:
		return "", sql.ErrNoRows
	}
	var name string
	if err := d.db.QueryRowContext(ctx, q, externalID).Scan(&name); err != nil {
		return "", err
	}
	return name, nil
}
