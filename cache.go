package tripkit

import (
	"sync"
	"time"
)

// TripCache is an in-memory cache of the parsed canonical trip with TTL.
// Every commit invalidates it, so a read immediately after a write
// always observes the committed document.
type TripCache struct {
	mu      sync.RWMutex
	trip    *Trip
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewTripCache creates a TripCache backed by the given Store.
func NewTripCache(s *Store, ttl time.Duration) *TripCache {
	return &TripCache{store: s, ttl: ttl}
}

func (c *TripCache) valid() bool {
	return c.trip != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *TripCache) Invalidate() {
	c.mu.Lock()
	c.trip = nil
	c.mu.Unlock()
}

// Get returns the cached trip, loading from the store when stale.
// The returned value is shared; callers that mutate must Clone first.
func (c *TripCache) Get() (*Trip, error) {
	c.mu.RLock()
	if c.valid() {
		t := c.trip
		c.mu.RUnlock()
		return t, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.trip, nil
	}
	t, err := c.store.LoadTrip()
	if err != nil {
		return nil, err
	}
	c.trip = t
	c.fetched = time.Now()
	return t, nil
}
