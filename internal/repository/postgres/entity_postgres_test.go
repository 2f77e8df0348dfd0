package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPostgres_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewEntityPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "entity_type", "external_entity_id", "entity_name", "updated_at"}).
		AddRow("ent-1", "client", int64(42), "Acme Traders", time.Now().UTC())

	mock.ExpectQuery("INSERT INTO entities(.+)ON CONFLICT").
		WillReturnRows(rows)

	e, err := repo.Upsert(ctx, "client", 42, "Acme Traders")

	assert.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "ent-1", e.ID)
	assert.Equal(t, int64(42), e.ExternalEntityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityPostgres_Lookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewEntityPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "entity_type", "external_entity_id", "entity_name", "updated_at"}).
			AddRow("ent-1", "shop", int64(7), "Corner Shop", time.Now().UTC())

		mock.ExpectQuery("SELECT (.+) FROM entities").
			WithArgs("shop", int64(7)).
			WillReturnRows(rows)

		e, err := repo.Lookup(ctx, "shop", 7)
		assert.NoError(t, err)
		assert.Equal(t, "Corner Shop", e.EntityName)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entities").
			WithArgs("shop", int64(8)).
			WillReturnError(sql.ErrNoRows)

		e, err := repo.Lookup(ctx, "shop", 8)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, e)
	})
}
