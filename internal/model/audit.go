package model

import (
	"encoding/json"
	"time"
)

// AccessType classifies a touch recorded in the access log.
type AccessType string

const (
	AccessView     AccessType = "view"
	AccessDownload AccessType = "download"
	AccessUpload   AccessType = "upload"
	AccessUpdate   AccessType = "update"
	AccessDelete   AccessType = "delete"
)

// AuditOperation tags an audit trail entry with the mutation it records.
type AuditOperation string

const (
	AuditCreate   AuditOperation = "CREATE"
	AuditUpdate   AuditOperation = "UPDATE"
	AuditDelete   AuditOperation = "DELETE"
	AuditRestore  AuditOperation = "RESTORE"
	AuditVerify   AuditOperation = "VERIFY"
	AuditUnverify AuditOperation = "UNVERIFY"
)

// AccessLogEntry records a single touch of a document, successful or not.
// Entries are append-only and never altered after creation.
type AccessLogEntry struct {
	ID           string     `json:"id"`
	DocumentID   string     `json:"document_id"`
	AccessType   AccessType `json:"access_type"`
	AccessedBy   string     `json:"accessed_by"`
	IPAddress    string     `json:"ip_address,omitempty"`
	UserAgent    string     `json:"user_agent,omitempty"`
	ClientLabel  string     `json:"client_label,omitempty"`
	Success      bool       `json:"success"`
	ErrorMessage string     `json:"error_message,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}

// AuditLogEntry records a structured before/after diff for a mutating
// operation. Entries are append-only and never altered after creation.
type AuditLogEntry struct {
	ID            string          `json:"id"`
	DocumentID    string          `json:"document_id"`
	Operation     AuditOperation  `json:"operation"`
	RecordID      string          `json:"record_id"`
	OldValues     json.RawMessage `json:"old_values,omitempty"`
	NewValues     json.RawMessage `json:"new_values,omitempty"`
	ChangedFields []string        `json:"changed_fields,omitempty"`
	UserID        string          `json:"user_id"`
	UserRole      string          `json:"user_role,omitempty"`
	SessionID     string          `json:"session_id,omitempty"`
	IPAddress     string          `json:"ip_address,omitempty"`
	UserAgent     string          `json:"user_agent,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// AuditTrailEntry is an AuditLogEntry joined with document display fields,
// used by the per-user trail query.
type AuditTrailEntry struct {
	AuditLogEntry
	FileName   string `json:"file_name"`
	TypeName   string `json:"type_name"`
	EntityType string `json:"entity_type"`
	EntityName string `json:"entity_name"`
}

// OperationStat aggregates audit entries for one operation kind.
type OperationStat struct {
	Operation         AuditOperation `json:"operation"`
	Count             int            `json:"count"`
	DistinctDocuments int            `json:"distinct_documents"`
	DistinctUsers     int            `json:"distinct_users"`
}

// Actor identifies who is performing an operation, as supplied by the
// transport boundary. Authentication is out of scope here.
type Actor struct {
	UserID    string `json:"user_id"`
	UserRole  string `json:"user_role,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}
