// Package cache menyimpan hasil baca yang mahal (ringkasan keuangan) dan penanda idempotensi webhook.
package cache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
)

// Tag yang dipakai lintas fitur.
const (
	TagFinance = "finance"
)

// Store adalah cache key/value dengan invalidasi per tag.
type Store interface {
	// Get mengisi dest dan mengembalikan true bila key ada dan belum kadaluarsa.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error
	InvalidateTag(ctx context.Context, tag string) error
	// Generation naik setiap InvalidateTag. Baca sebelum menghitung nilai yang akan disimpan.
	Generation(ctx context.Context, tag string) (int64, error)
	// SetAtGeneration = Set dengan tag, hanya bila generasi tag masih gen.
	// false -> tag sudah diinvalidasi sejak gen dibaca, nilai tidak disimpan.
	SetAtGeneration(ctx context.Context, key string, value any, ttl time.Duration, tag string, gen int64) (bool, error)
}

// IdempotencyStore menandai event yang sudah diproses.
type IdempotencyStore interface {
	// MarkProcessed mengembalikan true bila key baru ditandai, false bila sudah pernah.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release menghapus tanda agar event boleh diproses ulang (mis. pemrosesan gagal).
	Release(ctx context.Context, key string) error
}

func encode(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

func decode(b []byte, dest any) error {
	return sonic.Unmarshal(b, dest)
}

// Invalidate aman dipanggil dengan Store nil (cache dimatikan).
func Invalidate(ctx context.Context, s Store, tag string) error {
	if s == nil {
		return nil
	}
	return s.InvalidateTag(ctx, tag)
}
