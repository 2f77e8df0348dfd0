package migration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sentinelQuery = "SELECT to_regclass('public.documents') IS NOT NULL"

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("applies every step on a fresh database", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectQuery(sentinelQuery).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		for _, step := range steps {
			dbMock.ExpectExec(step.SQL).WillReturnResult(sqlmock.NewResult(0, 0))
		}

		require.NoError(t, EnsureMigrated(ctx, db, zap.NewNop()))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("skips when the schema already exists", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectQuery(sentinelQuery).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, EnsureMigrated(ctx, db, zap.NewNop()))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("reports the failing step by name", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()

		dbMock.ExpectQuery(sentinelQuery).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		dbMock.ExpectExec(steps[0].SQL).WillReturnError(errors.New("boom"))

		err = EnsureMigrated(ctx, db, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), steps[0].Name)
	})
}

// The legacy-store migrator copies duplicate content verbatim; only the
// upload path rejects duplicates, inside its service transaction. The
// schema must therefore stay free of uniqueness over file_hash.
func TestSchemaPermitsDuplicateContent(t *testing.T) {
	for _, step := range steps {
		if strings.Contains(step.SQL, "UNIQUE") && strings.Contains(step.SQL, "file_hash") {
			t.Errorf("step %s imposes a unique constraint over file_hash", step.Name)
		}
	}
}
