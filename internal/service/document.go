package service

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
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaultdocs/vaultdocs/internal/model"
	"github.com/vaultdocs/vaultdocs/internal/repository"
	"github.com/vaultdocs/vaultdocs/internal/storage"
)

// UploadInput carries everything the upload boundary collects for one file.
type UploadInput struct {
	EntityType       string
	ExternalEntityID int64
	EntityName       string
	TypeName         string
	DocumentNumber   string
	FileName         string
	MimeType         string
	Size             int64
	Content          io.Reader
	ExpiryDate       *time.Time
	Notes            string
	Metadata         json.RawMessage
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload enforces the type's upload policy, deduplicates by content
	// hash within (entity, type), stores the bytes and the row, and records
	// the touch in the access and audit logs.
	Upload(ctx context.Context, in UploadInput, actor model.Actor) (*model.DocumentDetails, error)

	// Get returns a single active document joined with display fields.
	Get(ctx context.Context, id string) (*model.DocumentDetails, error)

	// ListByEntity returns an entity's active documents, newest first.
	ListByEntity(ctx context.Context, entityType string, externalID int64, typeName string) ([]model.DocumentDetails, error)

	// Update applies a partial update of the mutable fields. A change of
	// the verification flag stamps verified_by/verified_at and tags the
	// audit entry VERIFY or UNVERIFY.
	Update(ctx context.Context, id string, patch model.DocumentUpdate, actor model.Actor) (*model.DocumentDetails, error)

	// Delete soft-deletes by default; hard delete also removes the row and
	// best-effort removes the stored file.
	Delete(ctx context.Context, id string, actor model.Actor, hard bool) error

	// Restore reverses a soft delete.
	Restore(ctx context.Context, id string, actor model.Actor) (*model.DocumentDetails, error)

	// FetchForRead resolves the document's content for viewing or
	// downloading, logging the touch either way.
	FetchForRead(ctx context.Context, id string, actor model.Actor, purpose model.AccessType) (io.ReadCloser, *model.DocumentDetails, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   repository.Store
	blobs   storage.Storage
	logger  *zap.Logger
	metrics *Metrics
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store repository.Store, blobs storage.Storage, logger *zap.Logger, metrics *Metrics) DocumentService {
	return &documentService{store: store, blobs: blobs, logger: logger, metrics: metrics}
}

func (s *documentService) Upload(ctx context.Context, in UploadInput, actor model.Actor) (out *model.DocumentDetails, err error) {
	defer func() { s.metrics.observe("upload", err) }()

	if in.Content == nil {
		return nil, ErrReaderNil
	}

	repos := s.store.Repos()

	// Policy checks come first so a rejected upload writes nothing at all.
	typ, err := repos.Types.GetByName(ctx, in.TypeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentTypeInvalid
		}
		return nil, fmt.Errorf("resolve document type: %w", err)
	}
	if in.Size > typ.MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if !typ.AllowsMime(in.MimeType) {
		return nil, ErrUnsupportedMimeType
	}

	// Stage the bytes to a temporary location, hashing as they stream.
	// The staged object is only published after the row commits.
	genName := uuid.New().String() + filepath.Ext(in.FileName)
	key := path.Join(in.EntityType, fmt.Sprintf("%d", in.ExternalEntityID), genName)

	hasher := sha256.New()
	staged, err := s.blobs.Stage(ctx, key, io.TeeReader(in.Content, hasher), storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.MimeType,
		Metadata:    map[string]string{"original-filename": in.FileName},
	})
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))

	now := time.Now().UTC()
	doc := &model.Document{
		ID:               uuid.New().String(),
		DocumentNumber:   in.DocumentNumber,
		FileName:         genName,
		OriginalFileName: in.FileName,
		FilePath:         key,
		FileSize:         in.Size,
		MimeType:         in.MimeType,
		FileHash:         &fileHash,
		ExpiryDate:       in.ExpiryDate,
		Notes:            in.Notes,
		Metadata:         in.Metadata,
		IsActive:         true,
		UploadedAt:       now,
		UpdatedAt:        now,
	}

	var entity *model.Entity
	txErr := s.store.WithinTx(ctx, func(tx repository.Repositories) error {
		var err error
		entity, err = tx.Entities.Upsert(ctx, in.EntityType, in.ExternalEntityID, in.EntityName)
		if err != nil {
			return fmt.Errorf("upsert entity: %w", err)
		}

		dup, err := tx.Documents.ExistsActiveWithHash(ctx, entity.ID, typ.ID, fileHash)
		if err != nil {
			return fmt.Errorf("check duplicate content: %w", err)
		}
		if dup {
			return ErrDuplicateContent
		}

		doc.EntityID = entity.ID
		doc.DocumentTypeID = typ.ID
		stored, err := tx.Documents.Create(ctx, doc)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		doc = stored
		return nil
	})
	if txErr != nil {
		if abortErr := staged.Abort(ctx); abortErr != nil {
			s.logger.Error("abort staged upload failed",
				zap.String("key", key), zap.Error(abortErr))
		}
		return nil, txErr
	}

	// Publish the staged bytes. A failure here leaves a committed row
	// without a file; FetchForRead reports that drift per document.
	if _, err := staged.Commit(ctx); err != nil {
		s.logger.Error("publish uploaded file failed",
			zap.String("document_id", doc.ID),
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("publish upload: %w", err)
	}

	s.logAccess(ctx, doc.ID, model.AccessUpload, actor, true, "")
	s.logAudit(ctx, doc.ID, model.AuditCreate, actor, nil, doc, nil, "")

	return &model.DocumentDetails{
		Document:         *doc,
		TypeName:         typ.TypeName,
		TypeDisplayName:  typ.DisplayName,
		TypeCategory:     typ.Category,
		EntityType:       entity.EntityType,
		ExternalEntityID: entity.ExternalEntityID,
		EntityName:       entity.EntityName,
	}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.DocumentDetails, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.store.Repos().Documents.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// ListByEntity returns an entity's active documents, newest first.
func (s *documentService) ListByEntity(ctx context.Context, entityType string, externalID int64, typeName string) ([]model.DocumentDetails, error) {
	return s.store.Repos().Documents.ListByEntity(ctx, entityType, externalID, typeName)
}

// mutableFields drive the changed-fields diff recorded in audit entries.
func diffFields(old, updated model.Document) []string {
	changed := []string{}
	if old.DocumentNumber != updated.DocumentNumber {
		changed = append(changed, "document_number")
	}
	if old.Notes != updated.Notes {
		changed = append(changed, "notes")
	}
	if string(old.Metadata) != string(updated.Metadata) {
		changed = append(changed, "metadata")
	}
	if old.IsVerified != updated.IsVerified {
		changed = append(changed, "is_verified")
	}
	return changed
}

func (s *documentService) Update(ctx context.Context, id string, patch model.DocumentUpdate, actor model.Actor) (out *model.DocumentDetails, err error) {
	defer func() { s.metrics.observe("update", err) }()

	if id == "" {
		return nil, ErrIDRequired
	}
	if patch.Empty() {
		return nil, ErrNotFound
	}

	repos := s.store.Repos()
	current, err := repos.Documents.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	old := current.Document
	updated := old
	op := model.AuditUpdate

	if patch.DocumentNumber != nil {
		updated.DocumentNumber = *patch.DocumentNumber
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}
	if patch.Metadata != nil {
		updated.Metadata = *patch.Metadata
	}
	if patch.IsVerified != nil && *patch.IsVerified != old.IsVerified {
		now := time.Now().UTC()
		updated.IsVerified = *patch.IsVerified
		if *patch.IsVerified {
			op = model.AuditVerify
			by := actor.UserID
			if patch.VerifiedBy != nil && *patch.VerifiedBy != "" {
				by = *patch.VerifiedBy
			}
			updated.VerifiedBy = &by
			updated.VerifiedAt = &now
		} else {
			op = model.AuditUnverify
			updated.VerifiedBy = nil
			updated.VerifiedAt = nil
		}
	}
	updated.UpdatedAt = time.Now().UTC()

	changed := diffFields(old, updated)
	// A patch that changes nothing must not rewrite the row or put an
	// empty entry in the append-only trail.
	if len(changed) == 0 {
		return current, nil
	}

	if err := repos.Documents.Update(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.logAccess(ctx, id, model.AccessUpdate, actor, true, "")
	s.logAudit(ctx, id, op, actor, &old, &updated, changed, "")

	details := *current
	details.Document = updated
	return &details, nil
}

func (s *documentService) Delete(ctx context.Context, id string, actor model.Actor, hard bool) (err error) {
	defer func() { s.metrics.observe("delete", err) }()

	if id == "" {
		return ErrIDRequired
	}
	repos := s.store.Repos()
	current, err := repos.Documents.FindAnyByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !current.IsActive && !hard {
		return ErrNotFound
	}

	if hard {
		if err := repos.Documents.HardDelete(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		// File removal is best-effort; the logical delete already happened.
		if err := s.blobs.Delete(ctx, current.FilePath); err != nil {
			s.logger.Warn("hard delete could not remove file",
				zap.String("document_id", id),
				zap.String("key", current.FilePath),
				zap.Error(err))
		}
	} else {
		if err := repos.Documents.SetActive(ctx, id, false); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
	}

	s.logAccess(ctx, id, model.AccessDelete, actor, true, "")
	reason := "soft delete"
	if hard {
		reason = "hard delete"
	}
	s.logAudit(ctx, id, model.AuditDelete, actor, &current.Document, nil, nil, reason)
	return nil
}

func (s *documentService) Restore(ctx context.Context, id string, actor model.Actor) (out *model.DocumentDetails, err error) {
	defer func() { s.metrics.observe("restore", err) }()

	if id == "" {
		return nil, ErrIDRequired
	}
	repos := s.store.Repos()
	current, err := repos.Documents.FindAnyByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if current.IsActive {
		return nil, ErrNotFound
	}

	if err := repos.Documents.SetActive(ctx, id, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	restored := current.Document
	restored.IsActive = true
	s.logAudit(ctx, id, model.AuditRestore, actor, &current.Document, &restored, []string{"is_active"}, "")

	details := *current
	details.Document = restored
	return &details, nil
}

func (s *documentService) FetchForRead(ctx context.Context, id string, actor model.Actor, purpose model.AccessType) (io.ReadCloser, *model.DocumentDetails, error) {
	if purpose != model.AccessView && purpose != model.AccessDownload {
		return nil, nil, fmt.Errorf("invalid read purpose %q", purpose)
	}
	if id == "" {
		return nil, nil, ErrIDRequired
	}

	doc, err := s.store.Repos().Documents.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	rc, _, err := s.blobs.Get(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			// Row present, file missing: log the failed touch and surface
			// the drift distinctly so operators can act on it.
			s.logAccess(ctx, id, purpose, actor, false, "stored file missing")
			s.logger.Error("document file missing on read",
				zap.String("document_id", id),
				zap.String("key", doc.FilePath))
			return nil, nil, ErrFileMissing
		}
		return nil, nil, err
	}

	s.logAccess(ctx, id, purpose, actor, true, "")
	return rc, doc, nil
}

// logAccess appends an access log entry. Failures are logged and swallowed:
// losing a log entry is preferable to failing the operation it records.
func (s *documentService) logAccess(ctx context.Context, docID string, at model.AccessType, actor model.Actor, success bool, errMsg string) {
	entry := &model.AccessLogEntry{
		ID:           uuid.New().String(),
		DocumentID:   docID,
		AccessType:   at,
		AccessedBy:   actor.UserID,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
		ClientLabel:  clientLabel(actor.UserAgent),
		Success:      success,
		ErrorMessage: errMsg,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.store.Repos().AccessLogs.Append(ctx, entry); err != nil {
		s.logger.Error("access log append failed",
			zap.String("document_id", docID),
			zap.String("access_type", string(at)),
			zap.Error(err))
	}
}

// logAudit appends an audit log entry, best-effort like logAccess.
func (s *documentService) logAudit(ctx context.Context, docID string, op model.AuditOperation, actor model.Actor, oldDoc, newDoc *model.Document, changed []string, reason string) {
	entry := &model.AuditLogEntry{
		ID:            uuid.New().String(),
		DocumentID:    docID,
		Operation:     op,
		RecordID:      docID,
		ChangedFields: changed,
		UserID:        actor.UserID,
		UserRole:      actor.UserRole,
		SessionID:     actor.SessionID,
		IPAddress:     actor.IPAddress,
		UserAgent:     actor.UserAgent,
		Reason:        reason,
		Timestamp:     time.Now().UTC(),
	}
	if oldDoc != nil {
		entry.OldValues, _ = json.Marshal(oldDoc)
	}
	if newDoc != nil {
		entry.NewValues, _ = json.Marshal(newDoc)
	}
	if err := s.store.Repos().AuditLogs.Append(ctx, entry); err != nil {
		s.logger.Error("audit log append failed",
			zap.String("document_id", docID),
			zap.String("operation", string(op)),
			zap.Error(err))
	}
}
