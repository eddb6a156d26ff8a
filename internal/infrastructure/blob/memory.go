package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/internal/domain"
)

var _ ports.BlobStore = (*MemoryStore)(nil)

type memObject struct {
	data []byte
	info ports.BlobInfo
}

// MemoryStore blob store en memoria (desarrollo y tests).
// Las URLs "firmadas" apuntan a baseURL, que sirve el propio API.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
	baseURL string
}

// NewMemoryStore crea el store. baseURL p.ej. "/api/blobs".
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{objects: map[string]memObject{}, baseURL: baseURL}
}

func (m *MemoryStore) Put(ctx context.Context, key string, body io.Reader, _ int64, contentType string) (ports.BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return ports.BlobInfo{}, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return ports.BlobInfo{}, fmt.Errorf("blob: leer %s: %w", key, err)
	}
	info := ports.BlobInfo{Key: key, ContentType: contentType, Size: int64(len(data)), UpdatedAt: time.Now().UTC()}
	m.mu.Lock()
	m.objects[key] = memObject{data: data, info: info}
	m.mu.Unlock()
	return info, nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (io.ReadCloser, ports.BlobInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, ports.BlobInfo{}, err
	}
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ports.BlobInfo{}, fmt.Errorf("blob %s: %w", key, domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) PresignURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("blob %s: %w", key, domain.ErrNotFound)
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	expires := strconv.FormatInt(time.Now().Add(ttl).Unix(), 10)
	return m.baseURL + "/" + url.PathEscape(key) + "?expires=" + expires, nil
}
