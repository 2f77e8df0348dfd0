package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var typeColumns = []string{
	"id", "type_name", "display_name", "category", "allowed_mime_types", "max_file_size", "is_active",
}

func TestDocumentTypePostgres_GetByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentTypePostgres(db)
	ctx := context.Background()

	t.Run("decodes the mime allow-list", func(t *testing.T) {
		rows := sqlmock.NewRows(typeColumns).
			AddRow("type-1", "pan_card", "PAN Card", "identity",
				[]byte(`["application/pdf","image/jpeg","image/png"]`), int64(5242880), true)

		mock.ExpectQuery(`FROM document_types(.+)WHERE type_name = \$1 AND is_active = TRUE`).
			WithArgs("pan_card").
			WillReturnRows(rows)

		typ, err := repo.GetByName(ctx, "pan_card")

		assert.NoError(t, err)
		require.NotNil(t, typ)
		assert.Equal(t, []string{"application/pdf", "image/jpeg", "image/png"}, typ.AllowedMimeTypes)
		assert.True(t, typ.AllowsMime("image/png"))
		assert.False(t, typ.AllowsMime("application/zip"))
	})

	t.Run("unknown name", func(t *testing.T) {
		mock.ExpectQuery(`FROM document_types`).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		typ, err := repo.GetByName(ctx, "nope")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, typ)
	})
}

func TestDocumentTypePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentTypePostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(typeColumns).
		AddRow("type-2", "aadhaar_card", "Aadhaar Card", "identity",
			[]byte(`["application/pdf"]`), int64(5242880), true).
		AddRow("type-1", "pan_card", "PAN Card", "identity",
			[]byte(`["application/pdf"]`), int64(5242880), true)

	mock.ExpectQuery(`FROM document_types(.+)AND category = \$1`).
		WithArgs("identity").
		WillReturnRows(rows)

	types, err := repo.List(ctx, "identity")

	assert.NoError(t, err)
	assert.Len(t, types, 2)
	assert.Equal(t, "aadhaar_card", types[0].TypeName)
}
