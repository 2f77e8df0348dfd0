package model

import (
	"encoding/json"
	"time"
)

// Document represents a stored file linked to an entity and a document type.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID               string          `json:"id"`
	EntityID         string          `json:"entity_id"`
	DocumentTypeID   string          `json:"document_type_id"`
	DocumentNumber   string          `json:"document_number,omitempty"`
	FileName         string          `json:"file_name"`
	OriginalFileName string          `json:"original_file_name"`
	FilePath         string          `json:"file_path"`
	FileSize         int64           `json:"file_size"`
	MimeType         string          `json:"mime_type"`
	FileHash         *string         `json:"file_hash,omitempty"`
	ExpiryDate       *time.Time      `json:"expiry_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
	IsVerified       bool            `json:"is_verified"`
	VerifiedBy       *string         `json:"verified_by,omitempty"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	IsActive         bool            `json:"is_active"`
	UploadedAt       time.Time       `json:"uploaded_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DocumentDetails is a Document joined with the display fields of its
// document type and owning entity. Read paths return this shape.
type DocumentDetails struct {
	Document
	TypeName         string `json:"type_name"`
	TypeDisplayName  string `json:"type_display_name"`
	TypeCategory     string `json:"type_category"`
	EntityType       string `json:"entity_type"`
	ExternalEntityID int64  `json:"external_entity_id"`
	EntityName       string `json:"entity_name"`
}

// DocumentUpdate is a partial update of a document's mutable fields.
// Nil pointers mean "leave unchanged".
type DocumentUpdate struct {
	DocumentNumber *string          `json:"document_number,omitempty"`
	IsVerified     *bool            `json:"is_verified,omitempty"`
	VerifiedBy     *string          `json:"verified_by,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	Metadata       *json.RawMessage `json:"metadata,omitempty"`
}

// Empty reports whether the update carries no effective field.
// VerifiedBy only qualifies a verification change, so on its own it
// does not constitute an update.
func (u DocumentUpdate) Empty() bool {
	return u.DocumentNumber == nil && u.IsVerified == nil &&
		u.Notes == nil && u.Metadata == nil
}
