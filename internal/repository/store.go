package repository

import "context"

// Repositories bundles every repository over one database handle, either
// the pooled connection or a single transaction.
type Repositories struct {
	Entities   EntityRepository
	Types      DocumentTypeRepository
	Documents  DocumentRepository
	AccessLogs AccessLogRepository
	AuditLogs  AuditLogRepository
}

// Store gives services repository access plus transactional execution.
// WithinTx runs fn against transaction-bound repositories, committing on
// nil and rolling back on error.
type Store interface {
	Repos() Repositories
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}
