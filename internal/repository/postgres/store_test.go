package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultdocs/vaultdocs/internal/repository"
)

func TestStore_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM documents WHERE id = \$1`).
			WithArgs("doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		store := NewStore(db)
		err = store.WithinTx(ctx, func(tx repository.Repositories) error {
			return tx.Documents.HardDelete(ctx, "doc-1")
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		store := NewStore(db)
		wantErr := errors.New("boom")
		err = store.WithinTx(ctx, func(tx repository.Repositories) error {
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		store := NewStore(db)
		err = store.WithinTx(ctx, func(tx repository.Repositories) error {
			t.Fatal("fn must not run when begin fails")
			return nil
		})

		assert.ErrorContains(t, err, "begin tx")
	})
}

func TestOneRowAffected(t *testing.T) {
	assert.NoError(t, oneRowAffected(sqlmock.NewResult(0, 1)))
	assert.ErrorIs(t, oneRowAffected(sqlmock.NewResult(0, 0)), sql.ErrNoRows)
}
