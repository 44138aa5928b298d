package storage

// Package storage contains an in-memory object store double.

import (
	"context"
	"sync"

	"github.com/collabhub/collabhub-api/internal/ports"
)

var _ ports.ObjectStorage = (*MemoryObjectStore)(nil)

// MemoryObjectStore records uploads in memory. Error fields force the next
// call of that kind to fail.
type MemoryObjectStore struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte

	EnsureErr error
	UploadErr error
	BaseURL   string
}

// NewMemoryObjectStore creates a new MemoryObjectStore.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{
		buckets: make(map[string]bool),
		objects: make(map[string][]byte),
		BaseURL: "https://storage.test",
	}
}

func (m *MemoryObjectStore) EnsureBucket(_ context.Context, bucket string) error {
	if m.EnsureErr != nil {
		return m.EnsureErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets[bucket] = true
	return nil
}

func (m *MemoryObjectStore) Upload(_ context.Context, in ports.UploadInput) error {
	if m.UploadErr != nil {
		return m.UploadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[in.Bucket+"/"+in.Path] = in.Data
	return nil
}

func (m *MemoryObjectStore) PublicURL(bucket, path string) string {
	return m.BaseURL + "/object/public/" + bucket + "/" + path
}

// ObjectCount reports how many objects were uploaded.
func (m *MemoryObjectStore) ObjectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
