package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Package storage contains byte-storage abstractions for document files.
// Keys are slash-separated relative paths; backends create parents on
// demand. Implementations must be safe for concurrent use.

// ErrObjectNotFound is returned by Get and Stat when no object exists
// under the key. Callers use it to tell row/file drift from real failures.
var ErrObjectNotFound = errors.New("storage: object not found")

// PutObjectOptions define optional parameters for staging objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Staged is a written-but-unpublished object. Commit atomically publishes
// it under its final key; Abort discards it. Exactly one of the two must
// be called.
type Staged interface {
	Commit(ctx context.Context) (ObjectInfo, error)
	Abort(ctx context.Context) error
}

// Storage is the byte-storage client interface. Stage/Commit splits a
// write so the caller can commit its database transaction between the
// byte write and the publish, leaving no visible object when the
// transaction fails.
type Storage interface {
	// Stage writes the object's bytes to a temporary location keyed for
	// eventual publication under key.
	Stage(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (Staged, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Stat returns object info without reading content.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
