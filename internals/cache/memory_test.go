package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSummary struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

func TestMemoryStore_GetSet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var got cachedSummary
	ok, err := store.Get(ctx, "finance:2025-03", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "finance:2025-03", cachedSummary{Income: "1500000", Expense: "200000"}, time.Minute, TagFinance))

	ok, err = store.Get(ctx, "finance:2025-03", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1500000", got.Income)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", cachedSummary{Income: "1"}, time.Minute))
	now = now.Add(2 * time.Minute)

	var got cachedSummary
	ok, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_InvalidateTag(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "finance:a", cachedSummary{Income: "1"}, 0, TagFinance))
	require.NoError(t, store.Set(ctx, "finance:b", cachedSummary{Income: "2"}, 0, TagFinance))
	require.NoError(t, store.Set(ctx, "other", cachedSummary{Income: "3"}, 0))

	require.NoError(t, store.InvalidateTag(ctx, TagFinance))

	var got cachedSummary
	ok, _ := store.Get(ctx, "finance:a", &got)
	assert.False(t, ok)
	ok, _ = store.Get(ctx, "finance:b", &got)
	assert.False(t, ok)
	ok, _ = store.Get(ctx, "other", &got)
	assert.True(t, ok, "untagged keys survive invalidation")
}

func TestMemoryStore_MarkProcessed(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "DON-1:settlement", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.MarkProcessed(ctx, "DON-1:settlement", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	other, err := store.MarkProcessed(ctx, "DON-1:expire", time.Hour)
	require.NoError(t, err)
	assert.True(t, other)
}

func TestMemoryStore_Release(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "DON-2:settlement", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "DON-2:settlement"))

	again, err := store.MarkProcessed(ctx, "DON-2:settlement", time.Hour)
	require.NoError(t, err)
	assert.True(t, again, "released key can be marked again")
}

func TestMemoryStore_SetAtGeneration(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	gen, err := store.Generation(ctx, TagFinance)
	require.NoError(t, err)

	ok, err := store.SetAtGeneration(ctx, "finance:a", cachedSummary{Income: "1"}, time.Minute, TagFinance, gen)
	require.NoError(t, err)
	assert.True(t, ok)

	// invalidasi di tengah jalan -> nilai yang dihitung dengan generasi lama ditolak
	require.NoError(t, store.InvalidateTag(ctx, TagFinance))
	ok, err = store.SetAtGeneration(ctx, "finance:a", cachedSummary{Income: "stale"}, time.Minute, TagFinance, gen)
	require.NoError(t, err)
	assert.False(t, ok)

	var got cachedSummary
	hit, err := store.Get(ctx, "finance:a", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	next, err := store.Generation(ctx, TagFinance)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)

	ok, err = store.SetAtGeneration(ctx, "finance:a", cachedSummary{Income: "2"}, time.Minute, TagFinance, next)
	require.NoError(t, err)
	assert.True(t, ok)

	// entri baru ikut tag sehingga invalidasi berikutnya tetap menghapusnya
	require.NoError(t, store.InvalidateTag(ctx, TagFinance))
	hit, _ = store.Get(ctx, "finance:a", &got)
	assert.False(t, hit)
}
