package service

import "errors"

var (
	// ErrIDRequired is returned when a caller passes an empty document id.
	ErrIDRequired = errors.New("id is required")
	// ErrReaderNil is returned when an upload carries no content reader.
	ErrReaderNil = errors.New("reader is nil")
	// ErrNotFound covers unknown documents, entities and empty updates.
	ErrNotFound = errors.New("document not found")
	// ErrDocumentTypeInvalid is returned for unknown or inactive type names.
	ErrDocumentTypeInvalid = errors.New("unknown or inactive document type")
	// ErrFileTooLarge is returned when the upload exceeds the type's size cap.
	ErrFileTooLarge = errors.New("file exceeds maximum size for document type")
	// ErrUnsupportedMimeType is returned when the MIME type is not in the
	// type's allow-list.
	ErrUnsupportedMimeType = errors.New("mime type not allowed for document type")
	// ErrDuplicateContent is returned when identical bytes already exist as
	// an active document for the same (entity, type). Surfaced distinctly so
	// callers can explain "already uploaded".
	ErrDuplicateContent = errors.New("identical content already uploaded for this entity and type")
	// ErrFileMissing marks row/file drift: the document row exists but the
	// underlying file does not. Retryable and alertable, not fatal for the row.
	ErrFileMissing = errors.New("stored file is missing")
)
