package storage

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// Object is a stored blob in Memory.
type Object struct {
	Body        []byte
	ContentType string
}

// Memory is a FileStorage kept in process. Download URLs use the memory://
// scheme and are only meaningful to tests and local runs.
type Memory struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string]Object
}

func NewMemory(bucket string) *Memory {
	return &Memory{bucket: bucket, objects: make(map[string]Object)}
}

func (m *Memory) PutObject(_ context.Context, objectKey string, body []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey] = Object{Body: append([]byte(nil), body...), ContentType: contentType}
	return nil
}

func (m *Memory) GeneratePresignedDownloadURL(_ context.Context, objectKey string, expires time.Duration) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[objectKey]
	m.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	u := url.URL{
		Scheme:   "memory",
		Host:     m.bucket,
		Path:     "/" + objectKey,
		RawQuery: url.Values{"expires": {expires.String()}}.Encode(),
	}
	return u.String(), nil
}

func (m *Memory) DeleteObject(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectKey)
	return nil
}

// Get returns a stored object.
func (m *Memory) Get(objectKey string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[objectKey]
	return o, ok
}
