package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/frontendhub/hub/pkg/hub"
)

// Backend is an in-memory implementation of the hub.ImageStore interface.
// URLs are synthetic; it exists for tests and local development.
type Backend struct {
	mu      sync.RWMutex
	objects map[string]struct{}
	baseURL string
}

// New creates a new in-memory image store
func New() hub.ImageStore {
	return &Backend{
		objects: make(map[string]struct{}),
		baseURL: "memory://covers",
	}
}

// GetUploadURL returns a synthetic upload URL and marks the key as present
func (b *Backend) GetUploadURL(ctx context.Context, objectKey string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = struct{}{}
	return fmt.Sprintf("%s/%s?op=upload", b.baseURL, objectKey), nil
}

// GetDownloadURL returns a synthetic download URL for a known key
func (b *Backend) GetDownloadURL(ctx context.Context, objectKey string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, exists := b.objects[objectKey]; !exists {
		return "", fmt.Errorf("object not found: %s", objectKey)
	}
	return fmt.Sprintf("%s/%s", b.baseURL, objectKey), nil
}

// Delete removes a key
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return fmt.Errorf("object not found: %s", objectKey)
	}

	delete(b.objects, objectKey)
	return nil
}
