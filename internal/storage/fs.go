package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// fsStorage implements Storage on a local directory tree. Staged writes go
// to a hidden temp directory under the root and are published with
// os.Rename, which is atomic on one filesystem.
type fsStorage struct {
	root string
}

const fsTempDir = ".staged"

// NewFS creates a local-disk storage rooted at dir, creating it if needed.
func NewFS(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, fsTempDir), 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &fsStorage{root: abs}, nil
}

// resolve maps a key to an absolute path, rejecting escapes from the root.
func (s *fsStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

type fsStaged struct {
	store    *fsStorage
	tempPath string
	key      string
	info     ObjectInfo
}

// Stage writes the bytes to the temp directory under a unique name.
func (s *fsStorage) Stage(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (Staged, error) {
	if _, err := s.resolve(key); err != nil {
		return nil, err
	}
	tempPath := filepath.Join(s.root, fsTempDir, uuid.NewString())

	f, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && opt.Size >= 0 && n != opt.Size {
		err = fmt.Errorf("short write: got %d bytes, want %d", n, opt.Size)
	}
	if err != nil {
		_ = os.Remove(tempPath)
		return nil, err
	}

	return &fsStaged{
		store:    s,
		tempPath: tempPath,
		key:      key,
		info: ObjectInfo{
			Key:         key,
			Size:        n,
			ContentType: opt.ContentType,
		},
	}, nil
}

// Commit publishes the staged file under its final key via rename.
func (o *fsStaged) Commit(ctx context.Context) (ObjectInfo, error) {
	dst, err := o.store.resolve(o.key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return ObjectInfo{}, fmt.Errorf("create parent dirs: %w", err)
	}
	if err := os.Rename(o.tempPath, dst); err != nil {
		return ObjectInfo{}, fmt.Errorf("publish staged file: %w", err)
	}
	info := o.info
	if st, err := os.Stat(dst); err == nil {
		info.LastModified = st.ModTime()
	}
	return info, nil
}

// Abort discards the staged file.
func (o *fsStaged) Abort(ctx context.Context) error {
	if err := os.Remove(o.tempPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Get opens the file under key for streaming reads.
func (s *fsStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ObjectInfo{}, ErrObjectNotFound
		}
		return nil, ObjectInfo{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, err
	}
	return f, ObjectInfo{Key: key, Size: st.Size(), LastModified: st.ModTime()}, nil
}

// Stat returns file info without opening content.
func (s *fsStorage) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	path, err := s.resolve(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ObjectInfo{}, ErrObjectNotFound
		}
		return ObjectInfo{}, err
	}
	return ObjectInfo{Key: key, Size: st.Size(), LastModified: st.ModTime()}, nil
}

// Delete removes the file under key. A missing file is not an error.
func (s *fsStorage) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
