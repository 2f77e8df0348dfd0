package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories are written against it so the same code serves pooled
// queries and transactional ones.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements repository.Store over a PostgreSQL connection pool.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store from an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ repository.Store = (*Store)(nil)

// Repos returns repositories bound to the pooled connection (autocommit).
func (s *Store) Repos() repository.Repositories {
	return reposFor(s.db)
}

// WithinTx runs fn against transaction-bound repositories. The transaction
// commits when fn returns nil and rolls back otherwise.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(reposFor(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// oneRowAffected maps a zero-row mutation to sql.ErrNoRows so services can
// translate it with the same errors.Is check they use for reads.
func oneRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func reposFor(db DBTX) repository.Repositories {
	return repository.Repositories{
		Entities:   NewEntityPostgres(db),
		Types:      NewDocumentTypePostgres(db),
		Documents:  NewDocumentPostgres(db),
		AccessLogs: NewAccessLogPostgres(db),
		AuditLogs:  NewAuditLogPostgres(db),
	}
}
