// Package cache is the client-side read cache: last-known server truth,
// keyed by entity kind (lists) and kind+id (single entities). Invalidation
// is the only mutation primitive; cached values are never edited in place,
// so the cache can only ever disagree with the server by being absent.
package cache

import (
	"sync"

	"github.com/curriculoxpress/cxpress/internal/client/models"
)

// Key addresses one cached read. ID is empty for list reads.
type Key struct {
	Kind models.Kind
	ID   string
}

// ListKey addresses the list() read of a kind.
func ListKey(kind models.Kind) Key { return Key{Kind: kind} }

// ItemKey addresses a single-entity read. Curriculum detail is
// ItemKey(KindCurriculums, id).
func ItemKey(kind models.Kind, id string) Key { return Key{Kind: kind, ID: id} }

// Cache is a mutex-guarded keyed store shared by all resource services of
// one app instance.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]any
}

func New() *Cache {
	return &Cache{entries: make(map[Key]any)}
}

func (c *Cache) Get(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate drops the given keys. Absent keys are ignored.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// InvalidateKind drops the list entry and every single-entity entry of
// one kind. Used when a mutation's blast radius is unknown, e.g. deleting
// an archive item detaches it from every curriculum.
func (c *Cache) InvalidateKind(kind models.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Kind == kind {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of cached reads. Test helper.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
