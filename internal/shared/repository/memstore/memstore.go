// Package memstore provides the org-partitioned, cursor-paged collection
// behind every in-memory repository. Domain stores wrap a Collection and add
// their own Create/Update semantics; the tenant partitioning and keyset
// pagination live here exactly once.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"carebase/internal/shared/repository"
	"carebase/pkg/domain"
)

// Key is the sort key for keyset pagination.
type Key struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func (k Key) less(other Key) bool {
	if !k.CreatedAt.Equal(other.CreatedAt) {
		return k.CreatedAt.Before(other.CreatedAt)
	}
	return k.ID.String() < other.ID.String()
}

// Collection stores entities partitioned by org, ordered by (createdAt, id).
// Entities from one org are invisible to every other org: lookups outside
// the owning scope behave exactly like absence.
type Collection[E any] struct {
	mu    sync.RWMutex
	byOrg map[domain.OrgID][]E
	key   func(E) Key
}

// NewCollection builds a Collection with the given sort-key extractor.
func NewCollection[E any](key func(E) Key) *Collection[E] {
	return &Collection[E]{
		byOrg: make(map[domain.OrgID][]E),
		key:   key,
	}
}

// Insert adds an entity to its org partition, keeping sort order.
func (c *Collection[E]) Insert(org domain.OrgID, e E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.byOrg[org]
	k := c.key(e)
	idx := sort.Search(len(items), func(i int) bool {
		return k.less(c.key(items[i]))
	})
	items = append(items, e)
	copy(items[idx+1:], items[idx:])
	items[idx] = e
	c.byOrg[org] = items
}

// Get returns the entity with the given ID within the org scope.
func (c *Collection[E]) Get(org domain.OrgID, id uuid.UUID) (E, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.byOrg[org] {
		if c.key(e).ID == id {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// Replace swaps the stored entity with the given ID. The sort key must not
// change (createdAt is immutable).
func (c *Collection[E]) Replace(org domain.OrgID, id uuid.UUID, e E) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.byOrg[org]
	for i := range items {
		if c.key(items[i]).ID == id {
			items[i] = e
			return true
		}
	}
	return false
}

// Remove deletes the entity with the given ID within the org scope.
func (c *Collection[E]) Remove(org domain.OrgID, id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.byOrg[org]
	for i := range items {
		if c.key(items[i]).ID == id {
			c.byOrg[org] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// Each calls fn for every entity in the org partition in sort order,
// stopping early when fn returns false.
func (c *Collection[E]) Each(org domain.OrgID, fn func(E) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.byOrg[org] {
		if !fn(e) {
			return
		}
	}
}

// List returns one page of the org partition. The page never exceeds the
// effective limit; cursors continue the walk in either direction.
func (c *Collection[E]) List(org domain.OrgID, params repository.ListParams) (repository.Page[E], error) {
	limit := params.EffectiveLimit()

	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.byOrg[org]
	n := len(items)

	start, end := 0, min(limit, n)
	if params.Cursor != "" {
		cur, err := repository.DecodeCursor(params.Cursor)
		if err != nil {
			return repository.Page[E]{}, err
		}
		pivot := Key{CreatedAt: cur.CreatedAt, ID: cur.ID}
		switch cur.Dir {
		case repository.After:
			// First index strictly after the pivot.
			start = sort.Search(n, func(i int) bool {
				return pivot.less(c.key(items[i]))
			})
			end = min(start+limit, n)
		case repository.Before:
			// First index at or after the pivot; page ends there.
			end = sort.Search(n, func(i int) bool {
				return !c.key(items[i]).less(pivot)
			})
			start = max(0, end-limit)
		}
	}

	page := repository.Page[E]{Items: make([]E, end-start)}
	copy(page.Items, items[start:end])

	if end < n && end > start {
		k := c.key(items[end-1])
		next := repository.EncodeAfter(k.CreatedAt, k.ID)
		page.NextCursor = &next
	}
	if start > 0 && end > start {
		k := c.key(items[start])
		prev := repository.EncodeBefore(k.CreatedAt, k.ID)
		page.PrevCursor = &prev
	}
	return page, nil
}
