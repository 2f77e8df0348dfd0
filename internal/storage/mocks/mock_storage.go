package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/vaultdocs/vaultdocs/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Stage(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.Staged, error) {
	// Drain the reader so callers computing a digest through a tee see
	// the full content, as a real backend would.
	if r != nil {
		io.Copy(io.Discard, r)
	}
	args := m.Called(ctx, key, r, opt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(storage.Staged), args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockStorage) Stat(ctx context.Context, key string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockStaged struct {
	mock.Mock
}

func (m *MockStaged) Commit(ctx context.Context) (storage.ObjectInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStaged) Abort(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
