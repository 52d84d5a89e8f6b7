package insights

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartreceipt/backend/internal/store"
)

func newTestCache(ttl time.Duration) (*Cache, *time.Time) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	cache := NewCache(store.NewMemoryBackend(), ttl)
	cache.now = func() time.Time { return now }
	return cache, &now
}

func TestCacheMissWhenEmpty(t *testing.T) {
	cache, _ := newTestCache(0)

	snapshot, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestCachePutThenGet(t *testing.T) {
	ctx := context.Background()
	cache, now := newTestCache(0)

	stored, err := cache.Put(ctx, &Snapshot{
		TotalSpent:  123.45,
		TopCategory: "food",
		Insights:    []string{"spending is up this month"},
	})
	require.NoError(t, err)
	assert.Equal(t, *now, stored.ComputedAt)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 123.45, got.TotalSpent)
	assert.Equal(t, "food", got.TopCategory)
	assert.Equal(t, *now, got.ComputedAt)
}

func TestCachePutRejectsNil(t *testing.T) {
	cache, _ := newTestCache(0)

	_, err := cache.Put(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilSnapshot)
}

func TestCacheEvictsStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	cache, now := newTestCache(DefaultTTL)
	backend := cache.backend

	_, err := cache.Put(ctx, &Snapshot{TotalSpent: 10})
	require.NoError(t, err)

	// Just inside the TTL the snapshot is still served.
	*now = now.Add(DefaultTTL - time.Minute)
	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Past the TTL it is evicted and stays evicted.
	*now = now.Add(2 * time.Minute)
	got, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, ok, err := backend.Get(ctx, store.InsightsSlot)
	require.NoError(t, err)
	assert.False(t, ok, "stale snapshot removed from the backend")
}

func TestCacheEvictsUndecodablePayload(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(0)

	require.NoError(t, cache.backend.Set(ctx, store.InsightsSlot, []byte(`{not json`)))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, ok, err := cache.backend.Get(ctx, store.InsightsSlot)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheClear(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(0)

	_, err := cache.Put(ctx, &Snapshot{TotalSpent: 10})
	require.NoError(t, err)

	require.NoError(t, cache.Clear(ctx))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotRoundTripsUnknownFields(t *testing.T) {
	doc := []byte(`{"totalSpent": 50, "riskScore": 0.7, "tips": ["pack lunch"]}`)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(doc, &snapshot))
	assert.Equal(t, 50.0, snapshot.TotalSpent)
	require.Contains(t, snapshot.Extra, "riskScore")
	require.Contains(t, snapshot.Extra, "tips")

	encoded, err := json.Marshal(snapshot)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &fields))
	assert.JSONEq(t, `0.7`, string(fields["riskScore"]))
	assert.JSONEq(t, `["pack lunch"]`, string(fields["tips"]))
	assert.JSONEq(t, `50`, string(fields["totalSpent"]))
}

func TestCachedSnapshotKeepsUnknownFields(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(0)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"totalSpent": 50, "riskScore": 0.7}`), &snapshot))

	_, err := cache.Put(ctx, &snapshot)
	require.NoError(t, err)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Contains(t, got.Extra, "riskScore")
	assert.JSONEq(t, `0.7`, string(got.Extra["riskScore"]))
}
