// Package lookup provides the lookup cache a selection reconciler keeps
// from selection id to the last seen record for that id. Options populate
// it as they are rendered; selections are rebuilt from it.
//
// A Cache belongs to one reconciler and lives as long as it does. It is
// never persisted. It is safe for concurrent use, so option rendering and
// selection handling may run on different goroutines.
package lookup

import (
	"sort"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/refselect/pkg/references"
)

// Entry is what the cache remembers about one selection id.
type Entry struct {
	PrefLabel string
	Labels    []references.Label
	ListID    string
	URI       string
}

// Reference rebuilds the reference the entry was recorded from.
func (e Entry) Reference() references.Reference {
	return references.Reference{
		URI:    e.URI,
		Labels: append([]references.Label(nil), e.Labels...),
		ListID: e.ListID,
	}
}

// Cache maps selection ids to entries.
type Cache struct {
	store *gocache.Cache
}

// New creates an empty cache. Entries never expire.
func New() *Cache {
	return &Cache{store: gocache.New(gocache.NoExpiration, 0)}
}

// Get returns the entry for id.
func (c *Cache) Get(id references.SelectionID) (Entry, bool) {
	v, ok := c.store.Get(id)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Put records entry under id, replacing any previous entry.
func (c *Cache) Put(id references.SelectionID, entry Entry) {
	c.store.Set(id, entry, gocache.NoExpiration)
}

// Has reports whether id is cached.
func (c *Cache) Has(id references.SelectionID) bool {
	_, ok := c.store.Get(id)
	return ok
}

// Missing returns the ids not present in the cache, in input order.
func (c *Cache) Missing(ids []references.SelectionID) []references.SelectionID {
	var missing []references.SelectionID
	for _, id := range ids {
		if !c.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// IDs returns the cached ids in sorted order.
func (c *Cache) IDs() []references.SelectionID {
	items := c.store.Items()
	ids := make([]references.SelectionID, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of cached ids.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.store.Flush()
}
