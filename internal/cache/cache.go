// Package cache implements the shared cache of §4.11: per-element and
// per-selector memoization used across generation and resolution. Keys are
// element/document identity, not values — callers must not mutate the
// underlying document between a Put and a Get and expect eviction to notice.
package cache

import (
	"container/list"
	"sync"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/model"
)

// Stats records hit/miss counters for one store.
type Stats struct {
	Hits   int
	Misses int
}

// AnchorResult is the memoized output of the anchor finder for one element.
type AnchorResult struct {
	Element dom.Element
	Anchor  model.AnchorNode
	Found   bool
}

// queryKey identifies a memoized query: a root element plus the compiled
// selector string executed against it.
type queryKey struct {
	root     dom.Element
	selector string
}

// Cache is the process-wide (or per-call private) value object of §4.11. Its
// zero value is not usable; construct with New or Default.
//
// The core is documented as single-threaded and cooperative (§5), but the
// default instance is process-global, so every store is still guarded by a
// mutex: a host embedding the core in a concurrent runtime must otherwise
// pass a private instance per call.
type Cache struct {
	mu sync.Mutex

	eids      map[dom.Element]model.EID
	eidStats  Stats

	semantics map[dom.Element]model.Semantics
	semStats  Stats

	anchors     map[dom.Element]AnchorResult
	anchorStats Stats

	queryMaxSize int
	queryResults map[queryKey]*list.Element
	queryOrder   *list.List
	queryStats   Stats
}

type queryEntry struct {
	key   queryKey
	value []dom.Element
}

// defaultQueryLRUSize bounds the query-result store absent an explicit size.
const defaultQueryLRUSize = 256

var defaultInstance = New(defaultQueryLRUSize)

// Default returns the process-global Cache instance.
func Default() *Cache { return defaultInstance }

// New builds a private Cache whose query-result store is bounded to
// queryLRUSize entries (insertion-order eviction, promotion on access).
func New(queryLRUSize int) *Cache {
	if queryLRUSize <= 0 {
		queryLRUSize = defaultQueryLRUSize
	}
	c := &Cache{queryMaxSize: queryLRUSize}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.eids = make(map[dom.Element]model.EID)
	c.semantics = make(map[dom.Element]model.Semantics)
	c.anchors = make(map[dom.Element]AnchorResult)
	c.queryResults = make(map[queryKey]*list.Element)
	c.queryOrder = list.New()
	c.eidStats = Stats{}
	c.semStats = Stats{}
	c.anchorStats = Stats{}
	c.queryStats = Stats{}
}

// Clear resets every store and every counter.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// GetEID returns a memoized EID for el, if present.
func (c *Cache) GetEID(el dom.Element) (model.EID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.eids[el]
	if ok {
		c.eidStats.Hits++
	} else {
		c.eidStats.Misses++
	}
	return v, ok
}

// PutEID memoizes an EID for el.
func (c *Cache) PutEID(el dom.Element, eid model.EID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eids[el] = eid
}

// GetSemantics returns memoized Semantics for el, if present.
func (c *Cache) GetSemantics(el dom.Element) (model.Semantics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.semantics[el]
	if ok {
		c.semStats.Hits++
	} else {
		c.semStats.Misses++
	}
	return v, ok
}

// PutSemantics memoizes Semantics for el.
func (c *Cache) PutSemantics(el dom.Element, s model.Semantics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.semantics[el] = s
}

// GetAnchor returns a memoized anchor-finder result for el, if present.
func (c *Cache) GetAnchor(el dom.Element) (AnchorResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.anchors[el]
	if ok {
		c.anchorStats.Hits++
	} else {
		c.anchorStats.Misses++
	}
	return v, ok
}

// PutAnchor memoizes an anchor-finder result for el.
func (c *Cache) PutAnchor(el dom.Element, r AnchorResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anchors[el] = r
}

// GetQuery returns a memoized query result for (root, selector), promoting
// it to most-recently-used on hit.
func (c *Cache) GetQuery(root dom.Element, selector string) ([]dom.Element, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := queryKey{root: root, selector: selector}
	elem, ok := c.queryResults[key]
	if !ok {
		c.queryStats.Misses++
		return nil, false
	}
	c.queryStats.Hits++
	c.queryOrder.MoveToBack(elem)
	return elem.Value.(*queryEntry).value, true
}

// PutQuery memoizes a query result for (root, selector), evicting the
// least-recently-used entry if the store is at capacity.
func (c *Cache) PutQuery(root dom.Element, selector string, result []dom.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := queryKey{root: root, selector: selector}
	if elem, ok := c.queryResults[key]; ok {
		elem.Value.(*queryEntry).value = result
		c.queryOrder.MoveToBack(elem)
		return
	}
	entry := &queryEntry{key: key, value: result}
	elem := c.queryOrder.PushBack(entry)
	c.queryResults[key] = elem
	if c.queryOrder.Len() > c.queryMaxSize {
		oldest := c.queryOrder.Front()
		if oldest != nil {
			c.queryOrder.Remove(oldest)
			delete(c.queryResults, oldest.Value.(*queryEntry).key)
		}
	}
}

// Stats returns a snapshot of every store's hit/miss counters.
func (c *Cache) Stats() (eid, semantics, anchor, query Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eidStats, c.semStats, c.anchorStats, c.queryStats
}
