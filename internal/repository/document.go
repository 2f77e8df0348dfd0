package repository

import (
	"context"
	"time"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document row and returns the stored record.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns an active document joined with type and entity
	// display fields, or sql.ErrNoRows when absent or soft-deleted.
	FindByID(ctx context.Context, id string) (*model.DocumentDetails, error)

	// FindAnyByID is FindByID without the is_active filter. Delete and
	// restore paths need to see soft-deleted rows.
	FindAnyByID(ctx context.Context, id string) (*model.DocumentDetails, error)

	// ListByEntity returns the active documents of one entity, newest
	// first, optionally restricted to a single type name.
	ListByEntity(ctx context.Context, entityType string, externalID int64, typeName string) ([]model.DocumentDetails, error)

	// ExistsActiveWithHash reports whether an active document for the given
	// (entity, type) already carries the content hash.
	ExistsActiveWithHash(ctx context.Context, entityID, documentTypeID, fileHash string) (bool, error)

	// ExistsWithFileName reports whether any document for the given
	// (entity, type) already uses the storage file name.
	ExistsWithFileName(ctx context.Context, entityID, documentTypeID, fileName string) (bool, error)

	// Update persists the mutable fields of doc (document_number, notes,
	// metadata, verification state) plus updated_at.
	Update(ctx context.Context, doc *model.Document) error

	// SetActive flips the soft-delete flag.
	SetActive(ctx context.Context, id string, active bool) error

	// HardDelete removes the row outright.
	HardDelete(ctx context.Context, id string) error

	// Search runs the conjunctive all-optional filter over active
	// documents, newest first.
	Search(ctx context.Context, f DocumentFilter) ([]model.DocumentDetails, error)

	// TypeStats aggregates active documents per type via a left join so
	// zero-document types still appear.
	TypeStats(ctx context.Context, entityType string) ([]model.TypeStat, error)

	// CountActive counts active documents, optionally for one entity type.
	CountActive(ctx context.Context, entityType string) (int, error)

	// ActiveFilePaths returns the file paths of all active documents.
	ActiveFilePaths(ctx context.Context) ([]string, error)
}

// DocumentFilter holds the all-optional search predicates. Nil pointer
// fields are unconstrained; they never mean "match null". Offset is
// applied only when Limit is positive.
type DocumentFilter struct {
	EntityType       *string
	ExternalEntityID *int64
	TypeName         *string
	IsVerified       *bool
	ExpiringBefore   *time.Time
	Limit            int
	Offset           int
}
