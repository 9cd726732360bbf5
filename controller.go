package tripkit

import (
	"errors"
	"sync"
	"time"
)

// Controller owns the canonical trip document. All owner-path reads and
// writes go through it: reads hand out reconciled deep copies, writes
// are read-latest, compute, commit-whole-document, serialized behind a
// mutex so two logical writes never interleave.
type Controller struct {
	mu    sync.Mutex // serializes commits
	store *Store
	cache *TripCache
}

// NewController creates a Controller over the given store.
func NewController(store *Store, cacheTTL time.Duration) *Controller {
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Controller{store: store, cache: NewTripCache(store, cacheTTL)}
}

// Get returns a deep copy of the canonical trip with the schema
// reconciler applied. When the stored document predates the current
// default schema, the upgraded document is committed back so the
// migration runs once, not on every read. ErrNotFound when no trip
// exists yet.
func (c *Controller) Get() (*Trip, error) {
	t, err := c.cache.Get()
	if err != nil {
		return nil, err
	}
	snapshot, err := t.Clone()
	if err != nil {
		return nil, err
	}
	upgraded, changed, err := ReconcileSchema(snapshot)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := c.Commit(upgraded); err != nil {
			return nil, err
		}
	}
	return upgraded, nil
}

// Commit atomically replaces the canonical trip document.
func (c *Controller) Commit(t *Trip) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.SaveTrip(t); err != nil {
		return err
	}
	c.cache.Invalidate()
	return nil
}

// Update applies fn to a copy of the latest canonical trip and commits
// the result. fn always sees the current document, never a stale
// snapshot, even when updates are dispatched back to back; this is the
// functional-update form that prevents lost updates.
func (c *Controller) Update(fn func(*Trip) error) (*Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.store.LoadTrip()
	if err != nil {
		return nil, err
	}
	next, err := stored.Clone()
	if err != nil {
		return nil, err
	}
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := c.store.SaveTrip(next); err != nil {
		return nil, err
	}
	c.cache.Invalidate()
	return next, nil
}

// Replace validates nothing about the incoming document beyond its
// being present and swaps it in wholesale. Import uses this after its
// own validation; the existing trip is untouched when validation fails
// upstream.
func (c *Controller) Replace(t *Trip) error {
	if t == nil {
		return errors.New("tripkit: nil trip")
	}
	return c.Commit(t)
}

// Exists reports whether a canonical trip document has been created.
func (c *Controller) Exists() bool {
	_, err := c.cache.Get()
	return err == nil
}
