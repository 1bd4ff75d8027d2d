// Package storage writes report files to a named disk.
//
// Two drivers are available:
//   - "local" writes under STORAGE_LOCAL_ROOT (default)
//   - "s3" targets any S3-compatible bucket (AWS, MinIO, R2)
//
// Boot once, then resolve the disk the operator configured:
//
//	storage.Connect(ctx)
//	disk, err := storage.Default()
//	err = disk.Put(ctx, "exports/sales-2026-10.csv", data)
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get for a missing path.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is the driver interface. Paths are slash separated and relative
// to the disk root.
type Disk interface {
	Put(ctx context.Context, path string, content []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	// Delete removes path. A missing path is not an error.
	Delete(ctx context.Context, path string) error
	// Files lists the files directly under dir.
	Files(ctx context.Context, dir string) ([]string, error)
	// URL is the public address of path.
	URL(path string) string
}
