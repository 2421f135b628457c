// Package storage provides object storage for company logos and archived documents.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyKey is returned when an operation is called without an object key
var ErrEmptyKey = errors.New("storage key is required")

// ObjectStorage is the subset of object storage operations the services need
type ObjectStorage interface {
	// Upload writes data under key, replacing any previous object
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// GenerateDownloadURL returns a time limited URL for reading the object.
	// A zero expiresIn uses the storage default.
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object. Missing objects are not an error.
	DeleteObject(ctx context.Context, key string) error

	// ObjectExists reports whether an object is stored under key
	ObjectExists(ctx context.Context, key string) (bool, error)
}
