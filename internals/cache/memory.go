package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore dipakai saat Redis tidak aktif (single instance) dan di test.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	tags    map[string]map[string]struct{}
	gens    map[string]int64
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		tags:    make(map[string]map[string]struct{}),
		gens:    make(map[string]int64),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return false, nil
	}
	if err := decode(e.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration, tags ...string) error {
	e, err := s.entry(value, ttl)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(key, e, tags)
	return nil
}

func (s *MemoryStore) SetAtGeneration(_ context.Context, key string, value any, ttl time.Duration, tag string, gen int64) (bool, error) {
	e, err := s.entry(value, ttl)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[tag] != gen {
		return false, nil
	}
	s.putLocked(key, e, []string{tag})
	return true, nil
}

func (s *MemoryStore) Generation(_ context.Context, tag string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[tag], nil
}

func (s *MemoryStore) InvalidateTag(_ context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.tags[tag] {
		delete(s.entries, key)
	}
	delete(s.tags, tag)
	s.gens[tag]++
	return nil
}

func (s *MemoryStore) entry(value any, ttl time.Duration) (memoryEntry, error) {
	b, err := encode(value)
	if err != nil {
		return memoryEntry{}, err
	}
	e := memoryEntry{data: b}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	return e, nil
}

func (s *MemoryStore) putLocked(key string, e memoryEntry, tags []string) {
	s.entries[key] = e
	for _, tag := range tags {
		set, ok := s.tags[tag]
		if !ok {
			set = make(map[string]struct{})
			s.tags[tag] = set
		}
		set[key] = struct{}{}
	}
}

// MarkProcessed membuat MemoryStore sekaligus IdempotencyStore.
func (s *MemoryStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := "idem:" + key
	if e, ok := s.entries[k]; ok && (e.expiresAt.IsZero() || s.now().Before(e.expiresAt)) {
		return false, nil
	}
	e := memoryEntry{data: []byte("1")}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[k] = e
	return true, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, "idem:"+key)
	return nil
}
