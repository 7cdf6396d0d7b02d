// Package controlledlists models controlled lists: named hierarchies of
// list items, each carrying labels and notes in several languages.
//
// Lists are the source the select control searches. The package flattens a
// hierarchy into the depth-annotated option list the control renders, and
// resolves ids or label text back into references.
package controlledlists

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/references"
)

// ControlledList is a named hierarchy of items.
type ControlledList struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Dynamic    bool   `json:"dynamic" yaml:"dynamic"`
	SearchOnly bool   `json:"search_only" yaml:"search_only"`
	Items      []Item `json:"items" yaml:"items"`
}

// Item is one entry of a controlled list. Guide items group their children
// and cannot be selected themselves.
type Item struct {
	ID        string             `json:"id" yaml:"id"`
	ListID    string             `json:"list_id" yaml:"list_id"`
	URI       string             `json:"uri" yaml:"uri"`
	SortOrder int                `json:"sortorder" yaml:"sortorder"`
	Guide     bool               `json:"guide" yaml:"guide"`
	Values    []references.Label `json:"values" yaml:"values"`
	Children  []Item             `json:"children" yaml:"children"`
	ParentID  string             `json:"parent_id" yaml:"parent_id"`
	Depth     int                `json:"depth" yaml:"depth"`
}

// Labels returns the item's label values, skipping notes.
func (i Item) Labels() []references.Label {
	return references.FilterLabels(i.Values)
}

// TileValue returns the reference stored when the item is selected.
func (i Item) TileValue() references.Reference {
	return references.Reference{
		URI:    i.URI,
		Labels: i.Labels(),
		ListID: i.ListID,
	}
}

// Option converts the item to a flat search result.
func (i Item) Option() references.Option {
	return references.Option{
		ID:         i.ID,
		ListItemID: i.ID,
		ListID:     i.ListID,
		URI:        i.URI,
		SortOrder:  i.SortOrder,
		Guide:      i.Guide,
		Values:     i.Values,
		ParentID:   i.ParentID,
		Depth:      i.Depth,
	}
}

// FromOptions rebuilds a flat list from search results, so ids and labels
// can be resolved against what a list service returned. Values without a
// list item id are attributed to their option.
func FromOptions(listID string, opts []references.Option) *ControlledList {
	items := make([]Item, 0, len(opts))
	for _, opt := range opts {
		id := opt.SelectionID()
		values := make([]references.Label, len(opt.Values))
		for i, v := range opt.Values {
			if v.ListItemID == "" {
				v.ListItemID = id
			}
			values[i] = v
		}
		items = append(items, Item{
			ID:        id,
			ListID:    opt.ListID,
			URI:       opt.URI,
			SortOrder: opt.SortOrder,
			Guide:     opt.Guide,
			Values:    values,
			ParentID:  opt.ParentID,
			Depth:     opt.Depth,
		})
	}
	return &ControlledList{ID: listID, Items: items}
}

// Flatten returns items depth first, siblings ordered by sortorder, with
// Depth set from the position in the tree. Children are omitted from the
// returned copies.
func Flatten(items []Item) []Item {
	var flat []Item
	var walk func(items []Item, depth int)
	walk = func(items []Item, depth int) {
		for _, item := range sortedBySortOrder(items) {
			children := item.Children
			item.Children = nil
			item.Depth = depth
			flat = append(flat, item)
			walk(children, depth+1)
		}
	}
	walk(items, 0)
	return flat
}

func sortedBySortOrder(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].SortOrder < sorted[b].SortOrder
	})
	return sorted
}

// Flat returns the list's items flattened.
func (l *ControlledList) Flat() []Item {
	return Flatten(l.Items)
}

// Options returns the flattened items as search results.
func (l *ControlledList) Options() []references.Option {
	flat := l.Flat()
	opts := make([]references.Option, len(flat))
	for i, item := range flat {
		opts[i] = item.Option()
	}
	return opts
}

// FindByID returns the item with the given id anywhere in the hierarchy.
func (l *ControlledList) FindByID(id string) (Item, bool) {
	for _, item := range l.Flat() {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// FindByLabel returns the lowest sortorder item having a value whose text
// equals text exactly.
func (l *ControlledList) FindByLabel(text string) (Item, bool) {
	if text == "" {
		return Item{}, false
	}
	var (
		found Item
		ok    bool
	)
	for _, item := range l.Flat() {
		for _, v := range item.Values {
			if v.Value != text {
				continue
			}
			if !ok || item.SortOrder < found.SortOrder {
				found, ok = item, true
			}
			break
		}
	}
	return found, ok
}

// Resolve turns ids or label texts into a value. Inputs that parse as a
// UUID are looked up by id, anything else by label. Unknown inputs yield
// a NotFoundError after every input has been tried.
func (l *ControlledList) Resolve(inputs ...string) (references.Value, error) {
	var (
		value   references.Value
		missing []string
	)
	for _, in := range inputs {
		var (
			item Item
			ok   bool
		)
		if _, err := uuid.Parse(in); err == nil {
			item, ok = l.FindByID(in)
		} else {
			item, ok = l.FindByLabel(in)
		}
		if !ok {
			missing = append(missing, in)
			continue
		}
		value = append(value, item.TileValue())
	}
	if len(missing) > 0 {
		return value, errors.NewNotFoundError("list item", joinQuoted(missing))
	}
	return value, nil
}

func joinQuoted(s []string) string {
	quoted := make([]string, len(s))
	for i, v := range s {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
