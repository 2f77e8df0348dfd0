package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultdocs/vaultdocs/internal/model"
)

var auditColumns = []string{
	"id", "document_id", "operation", "record_id",
	"old_values", "new_values", "changed_fields",
	"user_id", "user_role", "session_id", "ip_address", "user_agent",
	"reason", "created_at",
}

func TestAuditLogPostgres_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogPostgres(db)
	ctx := context.Background()

	entry := &model.AuditLogEntry{
		ID:            "a1",
		DocumentID:    "doc-1",
		Operation:     model.AuditUpdate,
		RecordID:      "doc-1",
		OldValues:     json.RawMessage(`{"notes":"old"}`),
		NewValues:     json.RawMessage(`{"notes":"new"}`),
		ChangedFields: []string{"notes"},
		UserID:        "user-1",
		Timestamp:     time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO document_audit_logs").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Append(ctx, entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogPostgres_TrailByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(auditColumns).
		AddRow("a2", "doc-1", "UPDATE", "doc-1",
			[]byte(`{"notes":"old"}`), []byte(`{"notes":"new"}`), []byte(`["notes"]`),
			"user-1", "admin", "sess-1", "10.0.0.1", "curl/8",
			"", now).
		AddRow("a1", "doc-1", "CREATE", "doc-1",
			nil, []byte(`{}`), nil,
			"user-1", "admin", "sess-1", "10.0.0.1", "curl/8",
			"", now.Add(-time.Hour))

	mock.ExpectQuery(`FROM document_audit_logs(.+)WHERE document_id = \$1(.+)LIMIT \$2`).
		WithArgs("doc-1", 10).
		WillReturnRows(rows)

	entries, err := repo.TrailByDocument(ctx, "doc-1", 10)

	assert.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.AuditUpdate, entries[0].Operation)
	assert.Equal(t, []string{"notes"}, entries[0].ChangedFields)
	assert.Empty(t, entries[1].ChangedFields)
	assert.Nil(t, entries[1].OldValues)
}

func TestAuditLogPostgres_TrailByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogPostgres(db)
	ctx := context.Background()

	cols := append(append([]string{}, auditColumns...),
		"file_name", "type_name", "entity_type", "entity_name")
	rows := sqlmock.NewRows(cols).
		AddRow("a1", "doc-1", "DELETE", "doc-1",
			[]byte(`{}`), nil, nil,
			"user-1", "admin", "sess-1", "10.0.0.1", "curl/8",
			"soft delete", time.Now().UTC(),
			"gen.pdf", "pan_card", "client", "Acme Traders")

	mock.ExpectQuery(`FROM document_audit_logs a(.+)WHERE a.user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(rows)

	entries, err := repo.TrailByUser(ctx, "user-1", 0)

	assert.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.AuditDelete, entries[0].Operation)
	assert.Equal(t, "pan_card", entries[0].TypeName)
	assert.Equal(t, "soft delete", entries[0].Reason)
}

func TestAuditLogPostgres_OperationStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogPostgres(db)
	ctx := context.Background()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"operation", "count", "docs", "users"}).
		AddRow("CREATE", 5, 5, 2).
		AddRow("UPDATE", 3, 2, 1)

	mock.ExpectQuery(`GROUP BY operation`).
		WithArgs(from).
		WillReturnRows(rows)

	stats, err := repo.OperationStats(ctx, &from, nil)

	assert.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, model.AuditCreate, stats[0].Operation)
	assert.Equal(t, 5, stats[0].Count)
	assert.Equal(t, 1, stats[1].DistinctUsers)
}
