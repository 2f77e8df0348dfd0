package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_entities",
		SQL: `CREATE TABLE IF NOT EXISTS entities (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  entity_type        TEXT        NOT NULL,
  external_entity_id BIGINT      NOT NULL,
  entity_name        TEXT        NOT NULL DEFAULT '',
  updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (entity_type, external_entity_id)
);`,
	},
	{
		Name: "create_table_document_types",
		SQL: `CREATE TABLE IF NOT EXISTS document_types (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  type_name          TEXT        NOT NULL UNIQUE,
  display_name       TEXT        NOT NULL,
  category           TEXT        NOT NULL,
  allowed_mime_types JSONB       NOT NULL DEFAULT '[]',
  max_file_size      BIGINT      NOT NULL CHECK (max_file_size > 0),
  is_active          BOOLEAN     NOT NULL DEFAULT TRUE
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  entity_id          UUID        NOT NULL REFERENCES entities(id),
  document_type_id   UUID        NOT NULL REFERENCES document_types(id),
  document_number    TEXT        NOT NULL DEFAULT '',
  file_name          TEXT        NOT NULL,
  original_file_name TEXT        NOT NULL,
  file_path          TEXT        NOT NULL UNIQUE,
  file_size          BIGINT      NOT NULL CHECK (file_size >= 0),
  mime_type          TEXT        NOT NULL,
  file_hash          TEXT,
  expiry_date        TIMESTAMPTZ,
  notes              TEXT        NOT NULL DEFAULT '',
  metadata           JSONB,
  is_verified        BOOLEAN     NOT NULL DEFAULT FALSE,
  verified_by        TEXT,
  verified_at        TIMESTAMPTZ,
  is_active          BOOLEAN     NOT NULL DEFAULT TRUE,
  uploaded_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_entity_type_active",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_entity_type_active ON documents (entity_id, document_type_id) WHERE is_active;`,
	},
	{
		// Lookup index only. Duplicate-content rejection is an upload
		// policy check inside the service transaction; the legacy-store
		// migrator inserts identical content verbatim and must not be
		// refused by the schema.
		Name: "create_index_documents_dedup_lookup",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_dedup_lookup ON documents (entity_id, document_type_id, file_hash) WHERE is_active AND file_hash IS NOT NULL;`,
	},
	{
		Name: "create_index_documents_uploaded_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents (uploaded_at DESC);`,
	},
	{
		Name: "create_index_documents_expiry_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_expiry_date ON documents (expiry_date) WHERE is_active AND expiry_date IS NOT NULL;`,
	},
	{
		Name: "create_table_document_access_logs",
		SQL: `CREATE TABLE IF NOT EXISTS document_access_logs (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id   UUID        NOT NULL,
  access_type   TEXT        NOT NULL,
  accessed_by   TEXT        NOT NULL,
  ip_address    TEXT        NOT NULL DEFAULT '',
  user_agent    TEXT        NOT NULL DEFAULT '',
  client_label  TEXT        NOT NULL DEFAULT '',
  success       BOOLEAN     NOT NULL,
  error_message TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_access_logs_document",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_access_logs_document ON document_access_logs (document_id, created_at DESC);`,
	},
	{
		Name: "create_table_document_audit_logs",
		SQL: `CREATE TABLE IF NOT EXISTS document_audit_logs (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  document_id    UUID        NOT NULL,
  operation      TEXT        NOT NULL,
  record_id      UUID        NOT NULL,
  old_values     JSONB,
  new_values     JSONB,
  changed_fields JSONB,
  user_id        TEXT        NOT NULL,
  user_role      TEXT        NOT NULL DEFAULT '',
  session_id     TEXT        NOT NULL DEFAULT '',
  ip_address     TEXT        NOT NULL DEFAULT '',
  user_agent     TEXT        NOT NULL DEFAULT '',
  reason         TEXT        NOT NULL DEFAULT '',
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_audit_logs_document",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_logs_document ON document_audit_logs (document_id, created_at DESC);`,
	},
	{
		Name: "create_index_audit_logs_user",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_audit_logs_user ON document_audit_logs (user_id, created_at DESC);`,
	},
	{
		Name: "seed_document_types",
		SQL: `INSERT INTO document_types (type_name, display_name, category, allowed_mime_types, max_file_size) VALUES
  ('pan_card',                  'PAN Card',                  'kyc',      '["application/pdf","image/jpeg","image/png"]', 52428800),
  ('aadhaar_card',              'Aadhaar Card',              'kyc',      '["application/pdf","image/jpeg","image/png"]', 52428800),
  ('address_proof',             'Address Proof',             'kyc',      '["application/pdf","image/jpeg","image/png"]', 52428800),
  ('owner_photo',               'Owner Photograph',          'kyc',      '["image/jpeg","image/png"]',                   10485760),
  ('gst_certificate',           'GST Certificate',           'business', '["application/pdf"]',                          52428800),
  ('shop_license',              'Shop License',              'business', '["application/pdf","image/jpeg","image/png"]', 52428800),
  ('incorporation_certificate', 'Incorporation Certificate', 'business', '["application/pdf"]',                          52428800),
  ('bank_statement',            'Bank Statement',            'banking',  '["application/pdf"]',                          104857600),
  ('cancelled_cheque',          'Cancelled Cheque',          'banking',  '["application/pdf","image/jpeg","image/png"]', 10485760)
ON CONFLICT (type_name) DO NOTHING;`,
	},
}

// EnsureMigrated checks if the 'documents' table exists and runs the schema
// steps if it doesn't. The seed step is idempotent so re-runs are safe.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	start := time.Now()
	logger = logger.Named("migration")

	var exists bool
	query := "SELECT to_regclass('public.documents') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logger.Error("sentinel table check failed", zap.Error(err))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.Info("schema already exists, skipping migration",
			zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	logger.Info("running schema migration", zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error("migration step failed",
				zap.String("step", step.Name),
				zap.Error(err))
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		logger.Debug("migration step applied",
			zap.String("step", step.Name),
			zap.Duration("elapsed", time.Since(stepStart)))
	}

	logger.Info("schema migration complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}
