package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaultdocs/vaultdocs/internal/repository"
)

// MockStore hands the same mock repositories to direct access and to
// WithinTx callbacks, so a test can set expectations once. TxErr, when
// set, short-circuits WithinTx without invoking fn.
type MockStore struct {
	Entities   *MockEntityRepository
	Types      *MockDocumentTypeRepository
	Documents  *MockDocumentRepository
	AccessLogs *MockAccessLogRepository
	AuditLogs  *MockAuditLogRepository

	TxErr error
}

func NewMockStore() *MockStore {
	return &MockStore{
		Entities:   new(MockEntityRepository),
		Types:      new(MockDocumentTypeRepository),
		Documents:  new(MockDocumentRepository),
		AccessLogs: new(MockAccessLogRepository),
		AuditLogs:  new(MockAuditLogRepository),
	}
}

func (s *MockStore) Repos() repository.Repositories {
	return repository.Repositories{
		Entities:   s.Entities,
		Types:      s.Types,
		Documents:  s.Documents,
		AccessLogs: s.AccessLogs,
		AuditLogs:  s.AuditLogs,
	}
}

func (s *MockStore) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	if s.TxErr != nil {
		return s.TxErr
	}
	return fn(s.Repos())
}

// AssertExpectations asserts every repository mock in one call.
func (s *MockStore) AssertExpectations(t mock.TestingT) {
	s.Entities.AssertExpectations(t)
	s.Types.AssertExpectations(t)
	s.Documents.AssertExpectations(t)
	s.AccessLogs.AssertExpectations(t)
	s.AuditLogs.AssertExpectations(t)
}
