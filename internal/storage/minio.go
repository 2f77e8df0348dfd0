package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vaultdocs/vaultdocs/internal/config"
)

// minioStorage implements the Storage interface using an S3-compatible
// backend (MinIO, AWS S3, etc.). Staged writes go under a tmp/ prefix and
// Commit performs a server-side copy to the final key; S3 has no rename,
// so copy-then-remove is the closest equivalent.
type minioStorage struct {
	client *minio.Client
	bucket string
}

const minioStagePrefix = "tmp/"

// NewMinIO creates a new S3-compatible storage client backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

type minioStaged struct {
	store    *minioStorage
	stageKey string
	key      string
	info     ObjectInfo
}

// Stage uploads the object under a unique tmp/ key using streaming I/O.
func (m *minioStorage) Stage(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (Staged, error) {
	stageKey := minioStagePrefix + uuid.NewString()
	putOpts := minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	}
	info, err := m.client.PutObject(ctx, m.bucket, stageKey, r, opt.Size, putOpts)
	if err != nil {
		return nil, err
	}
	return &minioStaged{
		store:    m,
		stageKey: stageKey,
		key:      key,
		info: ObjectInfo{
			Key:         key,
			Size:        info.Size,
			ContentType: opt.ContentType,
		},
	}, nil
}

// Commit copies the staged object to its final key server-side, then
// removes the staged copy.
func (o *minioStaged) Commit(ctx context.Context) (ObjectInfo, error) {
	_, err := o.store.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: o.store.bucket, Object: o.key},
		minio.CopySrcOptions{Bucket: o.store.bucket, Object: o.stageKey},
	)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("publish staged object: %w", err)
	}
	_ = o.store.client.RemoveObject(ctx, o.store.bucket, o.stageKey, minio.RemoveObjectOptions{})
	info := o.info
	info.LastModified = time.Now()
	return info, nil
}

// Abort removes the staged object.
func (o *minioStaged) Abort(ctx context.Context) error {
	return o.store.client.RemoveObject(ctx, o.store.bucket, o.stageKey, minio.RemoveObjectOptions{})
}

// Get downloads an object content as a ReadCloser along with basic info.
func (m *minioStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, mapMinioErr(err)
	}
	// Stat to surface missing keys eagerly; GetObject is lazy.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, ObjectInfo{}, mapMinioErr(err)
	}
	info := ObjectInfo{
		Key:          key,
		Size:         st.Size,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
	}
	return obj, info, nil
}

// Stat returns object info without reading content.
func (m *minioStorage) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	st, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, mapMinioErr(err)
	}
	return ObjectInfo{
		Key:          key,
		Size:         st.Size,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
	}, nil
}

// Delete removes an object by key. Missing keys are not an error.
func (m *minioStorage) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && errors.Is(mapMinioErr(err), ErrObjectNotFound) {
		return nil
	}
	return err
}

func mapMinioErr(err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	return err
}
