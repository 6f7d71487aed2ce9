package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"masjidku_portal/internals/configs"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"
)

// OSSStorage: Aliyun OSS. Endpoint tanpa skema, mis. "oss-ap-southeast-5.aliyuncs.com".
type OSSStorage struct {
	bucket  *oss.Bucket
	baseURL string
	log     *zap.Logger
}

func NewOSSStorage(cfg configs.StorageConfig, zl *zap.Logger) (*OSSStorage, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("STORAGE_ENDPOINT/BUCKET/ACCESS_KEY/SECRET_KEY wajib untuk driver oss")
	}
	if zl == nil {
		zl = zap.NewNop()
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
		base = fmt.Sprintf("https://%s.%s", cfg.Bucket, host)
	}
	return &OSSStorage{bucket: bkt, baseURL: base, log: zl}, nil
}

func (s *OSSStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return fmt.Errorf("oss put %s: %w", key, err)
	}
	s.log.Debug("oss object stored", zap.String("key", key), zap.Int64("size", size))
	return nil
}

func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("oss delete %s: %w", key, err)
	}
	return nil
}

func (s *OSSStorage) PublicURL(key string) string {
	return joinURL(s.baseURL, key)
}
