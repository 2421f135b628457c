package storage

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// MemoryObject is an object held by MemoryObjectStorage
type MemoryObject struct {
	Data        []byte
	ContentType string
}

// MemoryObjectStorage keeps objects in process memory.
// It serves local runs without an S3 endpoint and the service tests.
type MemoryObjectStorage struct {
	// BaseURL prefixes the generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string]MemoryObject
}

// NewMemoryObjectStorage creates an empty MemoryObjectStorage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL: "memory://objects",
		objects: make(map[string]MemoryObject),
	}
}

var _ ObjectStorage = (*MemoryObjectStorage)(nil)

// Upload stores a copy of data under key
func (s *MemoryObjectStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = MemoryObject{Data: copied, ContentType: contentType}
	return nil
}

// GenerateDownloadURL returns a fake URL that embeds the key and the expiry
func (s *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + key + "?expires=" + url.QueryEscape(expiresAt.Format(time.RFC3339)), expiresAt, nil
}

// DeleteObject removes the object if present
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// ObjectExists reports whether key is stored
func (s *MemoryObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Object returns the stored object, for assertions in tests
func (s *MemoryObjectStorage) Object(key string) (MemoryObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}
