package insights

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/smartreceipt/backend/internal/store"
)

// DefaultTTL is how long a cached snapshot stays fresh.
const DefaultTTL = 24 * time.Hour

// ErrNilSnapshot is returned by Put when given no snapshot to cache.
var ErrNilSnapshot = errors.New("insight snapshot is required")

// Cache stores at most one Snapshot in the insights slot and evicts it lazily
// once it is older than the TTL. Staleness is only ever checked on read; an
// expired snapshot sits in the backend untouched until the next Get.
type Cache struct {
	backend store.Backend
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates an insight cache over the given backend. A non-positive ttl
// falls back to DefaultTTL.
func NewCache(backend store.Backend, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		backend: backend,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached snapshot, or nil when the slot is empty. A snapshot
// older than the TTL is evicted and reported as a miss. A payload that no
// longer decodes is treated the same way: evicted, not surfaced as an error.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	data, ok, err := c.backend.Get(ctx, store.InsightsSlot)
	if err != nil {
		return nil, &store.PersistenceError{Op: "read insights", Cause: err}
	}
	if !ok {
		return nil, nil
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.WithError(err).Warn("evicting undecodable insight snapshot")
		return nil, c.evict(ctx)
	}

	if c.now().Sub(snapshot.ComputedAt) > c.ttl {
		log.WithField("computedAt", snapshot.ComputedAt).Debug("evicting stale insight snapshot")
		return nil, c.evict(ctx)
	}
	return &snapshot, nil
}

// Put stores a snapshot, stamping its computedAt with the current time. The
// previous snapshot, fresh or stale, is overwritten. Returns the stored copy.
func (c *Cache) Put(ctx context.Context, s *Snapshot) (*Snapshot, error) {
	if s == nil {
		return nil, ErrNilSnapshot
	}

	stored := *s
	stored.ComputedAt = c.now()

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, &store.PersistenceError{Op: "encode insights", Cause: err}
	}
	if err := c.backend.Set(ctx, store.InsightsSlot, data); err != nil {
		return nil, &store.PersistenceError{Op: "write insights", Cause: err}
	}
	return &stored, nil
}

// Clear removes any cached snapshot, fresh or not.
func (c *Cache) Clear(ctx context.Context) error {
	return c.evict(ctx)
}

func (c *Cache) evict(ctx context.Context) error {
	if err := c.backend.Delete(ctx, store.InsightsSlot); err != nil {
		return &store.PersistenceError{Op: "clear insights", Cause: err}
	}
	return nil
}
