// Package resources provides the per-kind read/write operations of the
// client: list/get with caching, create/update/delete with cache
// invalidation, and the curriculum association operations. Nothing here
// retries; errors propagate to the caller, which owns recovery.
package resources

import (
	"context"
	"net/http"

	"github.com/curriculoxpress/cxpress/internal/client/api"
	"github.com/curriculoxpress/cxpress/internal/client/cache"
	"github.com/curriculoxpress/cxpress/internal/client/models"
)

// Collection is the uniform resource surface for one entity kind.
type Collection[T any] struct {
	kind  models.Kind
	api   api.Doer
	cache *cache.Cache
}

func newCollection[T any](kind models.Kind, d api.Doer, c *cache.Cache) *Collection[T] {
	return &Collection[T]{kind: kind, api: d, cache: c}
}

// List fetches all items of this kind owned by the session's user.
// The result is cached under the kind until a mutation invalidates it.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if v, ok := c.cache.Get(cache.ListKey(c.kind)); ok {
		return v.([]T), nil
	}

	var items []T
	if err := c.api.Do(ctx, http.MethodGet, c.kind.Path(), nil, &items); err != nil {
		return nil, err
	}

	c.cache.Set(cache.ListKey(c.kind), items)
	return items, nil
}

// Get fetches a single item. An empty id is a deliberate no-op returning
// (nil, nil), so callers can pass an id that is not known yet.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, nil
	}

	if v, ok := c.cache.Get(cache.ItemKey(c.kind, id)); ok {
		return v.(*T), nil
	}

	item := new(T)
	if err := c.api.Do(ctx, http.MethodGet, c.kind.Path()+"/"+id, nil, item); err != nil {
		return nil, err
	}

	c.cache.Set(cache.ItemKey(c.kind, id), item)
	return item, nil
}

// Create posts the payload; validation is the server's. On success the
// list cache for this kind is invalidated so the next read sees the item.
func (c *Collection[T]) Create(ctx context.Context, payload any) (*T, error) {
	item := new(T)
	if err := c.api.Do(ctx, http.MethodPost, c.kind.Path(), payload, item); err != nil {
		return nil, err
	}

	c.cache.Invalidate(cache.ListKey(c.kind))
	return item, nil
}

// Update sends a partial-field update. Both the list cache and the
// single-item cache are invalidated on success.
func (c *Collection[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	item := new(T)
	if err := c.api.Do(ctx, http.MethodPut, c.kind.Path()+"/"+id, payload, item); err != nil {
		return nil, err
	}

	c.cache.Invalidate(cache.ListKey(c.kind), cache.ItemKey(c.kind, id))
	return item, nil
}

// Delete removes the item. The server detaches a deleted archive item
// from every curriculum referencing it, so for archive kinds every cached
// curriculum read is invalidated too.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.api.Do(ctx, http.MethodDelete, c.kind.Path()+"/"+id, nil, nil); err != nil {
		return err
	}

	c.cache.Invalidate(cache.ListKey(c.kind), cache.ItemKey(c.kind, id))
	for _, k := range models.ArchiveKinds() {
		if c.kind == k {
			c.cache.InvalidateKind(models.KindCurriculums)
			break
		}
	}
	return nil
}
