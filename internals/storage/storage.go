// Package storage menyimpan objek (foto galeri) ke S3-compatible storage atau Aliyun OSS.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"
	"time"

	"masjidku_portal/internals/configs"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// PublicURL: URL publik untuk key (tanpa presign).
	PublicURL(key string) string
}

// New memilih backend sesuai STORAGE_DRIVER (s3 | oss).
func New(ctx context.Context, cfg configs.StorageConfig, zl *zap.Logger) (ObjectStorage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "s3":
		return NewS3Storage(ctx, cfg, zl)
	case "oss":
		return NewOSSStorage(cfg, zl)
	default:
		return nil, fmt.Errorf("storage driver tidak dikenal: %q", cfg.Driver)
	}
}

// ObjectKey: "<folder>/<yyyy>/<mm>/<uuid><ext>".
func ObjectKey(folder, ext string, now time.Time) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(strings.Trim(folder, "/"), now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// MemoryStorage dipakai test & mode lokal tanpa bucket.
type MemoryStorage struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{BaseURL: baseURL, objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *MemoryStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	m.types[key] = contentType
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

func (m *MemoryStorage) PublicURL(key string) string {
	return joinURL(m.BaseURL, key)
}

// Object mengembalikan isi & content-type; ok=false bila tidak ada.
func (m *MemoryStorage) Object(key string) ([]byte, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return b, m.types[key], ok
}

func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
