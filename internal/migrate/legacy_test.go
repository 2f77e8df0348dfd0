package migrate

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLLegacySource_ActiveDocuments(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uploaded := time.Date(2023, 4, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "entity_type", "entity_id", "document_type", "file_path", "file_size",
		"mime_type", "uploaded_at", "expiry_date", "is_verified", "verified_by",
		"verified_at", "notes", "is_active",
	}).AddRow(
		int64(7), "client", int64(42), "pan_card", "uploads/2023/pan.pdf", int64(11),
		"application/pdf", uploaded, nil, false, nil,
		nil, "from the old portal", true,
	)

	dbMock.ExpectQuery("SELECT id, entity_type, entity_id(.+)FROM documents(.+)WHERE is_active = TRUE(.+)ORDER BY uploaded_at ASC").
		WillReturnRows(rows)

	source := NewSQLLegacySource(db, t.TempDir())
	docs, err := source.ActiveDocuments(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, int64(7), docs[0].ID)
	assert.Equal(t, "client", docs[0].EntityType)
	assert.Equal(t, "uploads/2023/pan.pdf", docs[0].FilePath)
	assert.Nil(t, docs[0].ExpiryDate)
	assert.Equal(t, "from the old portal", docs[0].Notes)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSQLLegacySource_CountActive(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE is_active = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	source := NewSQLLegacySource(db, t.TempDir())
	n, err := source.CountActive(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSQLLegacySource_Open(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "uploads"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "uploads", "pan.pdf"), []byte("hello world"), 0o644))

	source := NewSQLLegacySource(nil, root)

	t.Run("streams a stored file", func(t *testing.T) {
		rc, err := source.Open(context.Background(), "uploads/pan.pdf")
		require.NoError(t, err)
		defer rc.Close()

		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(b))
	})

	t.Run("rejects paths escaping the root", func(t *testing.T) {
		for _, p := range []string{"../outside.pdf", "/etc/passwd", "uploads/../../secret"} {
			_, err := source.Open(context.Background(), p)
			assert.Error(t, err, "path %q", p)
		}
	})
}

func TestSQLEntityDirectory_DisplayName(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	directory := NewSQLEntityDirectory(db)

	t.Run("client", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT name FROM clients WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Acme Traders"))

		name, err := directory.DisplayName(context.Background(), "client", 42)
		require.NoError(t, err)
		assert.Equal(t, "Acme Traders", name)
	})

	t.Run("shop", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT shop_name FROM shops WHERE id = \$1`).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows([]string{"shop_name"}).AddRow("Corner Shop"))

		name, err := directory.DisplayName(context.Background(), "shop", 9)
		require.NoError(t, err)
		assert.Equal(t, "Corner Shop", name)
	})

	t.Run("unknown entity type", func(t *testing.T) {
		_, err := directory.DisplayName(context.Background(), "warehouse", 1)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
