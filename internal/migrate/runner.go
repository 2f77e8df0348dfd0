package migrate

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
	"github.com/vaultdocs/vaultdocs/internal/storage"
)

// migrationActor is the accessed_by recorded for every migrated document.
const migrationActor = "migration-script"

// Status tracks the runner's lifecycle.
type Status string

const (
	StatusNotStarted          Status = "not_started"
	StatusRunning             Status = "running"
	StatusCompleted           Status = "completed"
	StatusCompletedWithErrors Status = "completed_with_errors"
)

// ItemError records why one legacy document failed to migrate.
type ItemError struct {
	LegacyID int64  `json:"legacy_id"`
	Reason   string `json:"reason"`
}

// Result aggregates one migration run.
type Result struct {
	Success int         `json:"success"`
	Failed  int         `json:"failed"`
	Skipped int         `json:"skipped"`
	Errors  []ItemError `json:"errors,omitempty"`
}

// Runner copies documents from a legacy store into the target subsystem.
// Items are processed in original upload order; each item fails in
// isolation, and the file-name idempotency check makes re-runs safe.
// Migration is an offline batch: one Runner, one Run at a time.
type Runner struct {
	source    LegacySource
	directory EntityDirectory
	store     repository.Store
	blobs     storage.Storage
	logger    *zap.Logger

	mu     sync.Mutex
	status Status
}

// NewRunner constructs a migration Runner.
func NewRunner(source LegacySource, directory EntityDirectory, store repository.Store, blobs storage.Storage, logger *zap.Logger) *Runner {
	return &Runner{
		source:    source,
		directory: directory,
		store:     store,
		blobs:     blobs,
		logger:    logger.Named("migrate"),
		status:    StatusNotStarted,
	}
}

// Status returns the runner's current lifecycle state.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Runner) setStatus(s Status) {
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
}

// Run migrates every active legacy document, oldest first.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	r.setStatus(StatusRunning)

	docs, err := r.source.ActiveDocuments(ctx)
	if err != nil {
		r.setStatus(StatusCompletedWithErrors)
		return nil, fmt.Errorf("read legacy documents: %w", err)
	}

	res := &Result{}
	for _, legacy := range docs {
		switch err := r.migrateOne(ctx, legacy); {
		case err == nil:
			res.Success++
		case errors.Is(err, errAlreadyMigrated):
			res.Skipped++
			r.logger.Debug("already migrated, skipping",
				zap.Int64("legacy_id", legacy.ID))
		default:
			res.Failed++
			res.Errors = append(res.Errors, ItemError{LegacyID: legacy.ID, Reason: err.Error()})
			r.logger.Warn("legacy document failed to migrate",
				zap.Int64("legacy_id", legacy.ID),
				zap.Error(err))
		}
	}

	if res.Failed > 0 {
		r.setStatus(StatusCompletedWithErrors)
	} else {
		r.setStatus(StatusCompleted)
	}

	r.logger.Info("migration run finished",
		zap.Int("success", res.Success),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

var errAlreadyMigrated = errors.New("already migrated")

func (r *Runner) migrateOne(ctx context.Context, legacy LegacyDocument) error {
	repos := r.store.Repos()

	// Display name from the external directory; a miss is non-fatal and
	// falls back to a synthesized label.
	name, err := r.directory.DisplayName(ctx, legacy.EntityType, legacy.EntityID)
	if err != nil {
		name = fmt.Sprintf("%s #%d", legacy.EntityType, legacy.EntityID)
	}

	typ, err := repos.Types.GetByName(ctx, legacy.DocumentType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("unknown document type %q", legacy.DocumentType)
		}
		return fmt.Errorf("resolve document type: %w", err)
	}

	entity, err := repos.Entities.Upsert(ctx, legacy.EntityType, legacy.EntityID, name)
	if err != nil {
		return fmt.Errorf("upsert entity: %w", err)
	}

	// The legacy basename keys idempotency: a re-run sees the previously
	// migrated file name and skips.
	fileName := filepath.Base(filepath.FromSlash(legacy.FilePath))
	exists, err := repos.Documents.ExistsWithFileName(ctx, entity.ID, typ.ID, fileName)
	if err != nil {
		return fmt.Errorf("check prior migration: %w", err)
	}
	if exists {
		return errAlreadyMigrated
	}

	src, err := r.source.Open(ctx, legacy.FilePath)
	if err != nil {
		return fmt.Errorf("open legacy file %s: %w", legacy.FilePath, err)
	}
	defer src.Close()

	// Copy into the partitioned layout, recomputing the digest post-copy.
	// Migration moves content rather than creating it, so the dedup rule
	// is intentionally bypassed.
	key := path.Join(legacy.EntityType, fmt.Sprintf("%d", legacy.EntityID), fileName)
	hasher := sha256.New()
	staged, err := r.blobs.Stage(ctx, key, io.TeeReader(src, hasher), storage.PutObjectOptions{
		Size:        legacy.FileSize,
		ContentType: legacy.MimeType,
	})
	if err != nil {
		return fmt.Errorf("copy legacy file: %w", err)
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))

	metadata, _ := json.Marshal(map[string]any{
		"migrated_from":      "legacy-store",
		"legacy_id":          legacy.ID,
		"legacy_uploaded_at": legacy.UploadedAt.UTC().Format(time.RFC3339),
		"legacy_file_path":   legacy.FilePath,
	})

	now := time.Now().UTC()
	doc := &model.Document{
		ID:               uuid.New().String(),
		EntityID:         entity.ID,
		DocumentTypeID:   typ.ID,
		FileName:         fileName,
		OriginalFileName: fileName,
		FilePath:         key,
		FileSize:         legacy.FileSize,
		MimeType:         legacy.MimeType,
		FileHash:         &fileHash,
		ExpiryDate:       legacy.ExpiryDate,
		Notes:            legacy.Notes,
		Metadata:         metadata,
		IsVerified:       legacy.IsVerified,
		VerifiedBy:       legacy.VerifiedBy,
		VerifiedAt:       legacy.VerifiedAt,
		IsActive:         true,
		UploadedAt:       legacy.UploadedAt,
		UpdatedAt:        now,
	}

	if err := r.store.WithinTx(ctx, func(tx repository.Repositories) error {
		if _, err := tx.Documents.Create(ctx, doc); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		return nil
	}); err != nil {
		if abortErr := staged.Abort(ctx); abortErr != nil {
			r.logger.Error("abort staged copy failed",
				zap.String("key", key), zap.Error(abortErr))
		}
		return err
	}

	if _, err := staged.Commit(ctx); err != nil {
		return fmt.Errorf("publish migrated file: %w", err)
	}

	entry := &model.AccessLogEntry{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		AccessType: model.AccessUpload,
		AccessedBy: migrationActor,
		Success:    true,
		Timestamp:  now,
	}
	if err := repos.AccessLogs.Append(ctx, entry); err != nil {
		r.logger.Error("access log append failed",
			zap.String("document_id", doc.ID), zap.Error(err))
	}

	return nil
}
