// Package storage is a filesystem abstraction over image hosting backends.
//
// Two drivers are available:
//   - "local" — local filesystem, served back under a public base URL
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Disks are constructed explicitly and injected; there is no package-level
// default.
package storage

import (
	"io"
	"time"
)

// Disk is the driver interface the upload endpoint writes through.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// LastModified returns the file's last-modified time.
	LastModified(path string) (time.Time, error)

	// URL returns the stable public URL for path.
	URL(path string) string

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error
}
