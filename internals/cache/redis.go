package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore berbagi cache antar instance. Anggota tag disimpan di SET "tag:<nama>".
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("gagal konek redis: %w", err)
	}
	return NewRedisStoreWithClient(client, ""), nil
}

func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "masjidku:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) Client() *redis.Client { return s.client }

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	b, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := decode(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration, tags ...string) error {
	b, err := encode(value)
	if err != nil {
		return err
	}
	full := s.keyPrefix + key
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, full, b, ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, s.tagKey(tag), full)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// InvalidateTag menaikkan generasi dulu agar SetAtGeneration yang sedang jalan gagal WATCH.
func (s *RedisStore) InvalidateTag(ctx context.Context, tag string) error {
	if err := s.client.Incr(ctx, s.genKey(tag)).Err(); err != nil {
		return fmt.Errorf("redis incr gen %s: %w", tag, err)
	}
	tk := s.tagKey(tag)
	keys, err := s.client.SMembers(ctx, tk).Result()
	if err != nil {
		return fmt.Errorf("redis smembers %s: %w", tag, err)
	}
	keys = append(keys, tk)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis invalidate %s: %w", tag, err)
	}
	return nil
}

func (s *RedisStore) Generation(ctx context.Context, tag string) (int64, error) {
	return readGen(ctx, s.client, s.genKey(tag))
}

func (s *RedisStore) SetAtGeneration(ctx context.Context, key string, value any, ttl time.Duration, tag string, gen int64) (bool, error) {
	b, err := encode(value)
	if err != nil {
		return false, err
	}
	full, gk := s.keyPrefix+key, s.genKey(tag)

	stored := false
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readGen(ctx, tx, gk)
		if err != nil {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, full, b, ttl)
			pipe.SAdd(ctx, s.tagKey(tag), full)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, gk)
	if errors.Is(err, redis.TxFailedErr) {
		// generasi berubah di antara WATCH dan EXEC
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis set %s: %w", key, err)
	}
	return stored, nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGen(ctx context.Context, c stringGetter, key string) (int64, error) {
	n, err := c.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", key, err)
	}
	return n, nil
}

// MarkProcessed memakai SETNX agar atomik antar instance.
func (s *RedisStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+"idem:"+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+"idem:"+key).Err(); err != nil {
		return fmt.Errorf("redis release %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) tagKey(tag string) string {
	return s.keyPrefix + "tag:" + tag
}

func (s *RedisStore) genKey(tag string) string {
	return s.keyPrefix + "gen:" + tag
}
