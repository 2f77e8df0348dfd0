package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) Storage {
	t.Helper()
	s, err := NewFS(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestFSStorage_StageCommit(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewFS(root)
	require.NoError(t, err)

	staged, err := s.Stage(ctx, "client/42/a.pdf", strings.NewReader("hello"), PutObjectOptions{Size: 5})
	require.NoError(t, err)

	// Not visible before commit.
	_, err = s.Stat(ctx, "client/42/a.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	info, err := staged.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "client/42/a.pdf", info.Key)
	assert.Equal(t, int64(5), info.Size)

	rc, got, err := s.Get(ctx, "client/42/a.pdf")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	assert.Equal(t, int64(5), got.Size)
}

func TestFSStorage_StageAbort(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewFS(root)
	require.NoError(t, err)

	staged, err := s.Stage(ctx, "client/42/a.pdf", strings.NewReader("hello"), PutObjectOptions{Size: 5})
	require.NoError(t, err)
	require.NoError(t, staged.Abort(ctx))

	_, err = s.Stat(ctx, "client/42/a.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// Temp dir holds nothing after abort.
	entries, err := os.ReadDir(filepath.Join(root, fsTempDir))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFSStorage_StageSizeMismatch(t *testing.T) {
	ctx := context.Background()
	s := newTestFS(t)

	_, err := s.Stage(ctx, "a.txt", strings.NewReader("hello"), PutObjectOptions{Size: 99})
	assert.ErrorContains(t, err, "short write")
}

func TestFSStorage_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestFS(t)

	for _, key := range []string{"../outside.txt", "/etc/passwd", "a/../../b"} {
		_, err := s.Stage(ctx, key, strings.NewReader("x"), PutObjectOptions{Size: 1})
		assert.Error(t, err, key)
	}
}

func TestFSStorage_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestFS(t)

	staged, err := s.Stage(ctx, "a.txt", strings.NewReader("x"), PutObjectOptions{Size: 1})
	require.NoError(t, err)
	_, err = staged.Commit(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "a.txt"))
	_, err = s.Stat(ctx, "a.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// Deleting again is not an error.
	assert.NoError(t, s.Delete(ctx, "a.txt"))
}

func TestFSStorage_GetMissing(t *testing.T) {
	ctx := context.Background()
	s := newTestFS(t)

	_, _, err := s.Get(ctx, "missing.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
