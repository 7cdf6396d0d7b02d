// Package differ compares two stored reference values and reports what a
// selection change added, removed, relabeled or reordered.
package differ

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/refselect/pkg/references"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to one field of a reference.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"` // e.g. "uri" or "labels[de/prefLabel]"
	OldValue string     `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	NewValue string     `json:"new_value,omitempty" yaml:"new_value,omitempty"`
	Type     ChangeType `json:"type" yaml:"type"`
}

// ReferenceUpdate is a reference present in both values whose fields differ.
type ReferenceUpdate struct {
	ID      references.SelectionID `json:"id" yaml:"id"`
	Changes []FieldChange          `json:"changes" yaml:"changes"`
}

// Changeset represents all changes between two values.
type Changeset struct {
	Added     []references.Reference `json:"added,omitempty" yaml:"added,omitempty"`
	Updated   []ReferenceUpdate      `json:"updated,omitempty" yaml:"updated,omitempty"`
	Removed   []references.Reference `json:"removed,omitempty" yaml:"removed,omitempty"`
	Reordered bool                   `json:"reordered,omitempty" yaml:"reordered,omitempty"`
}

// HasChanges reports whether the values differ in any way.
func (c *Changeset) HasChanges() bool {
	return len(c.Added) > 0 || len(c.Updated) > 0 || len(c.Removed) > 0 || c.Reordered
}

// Summary returns a one-line description of the changeset.
func (c *Changeset) Summary() string {
	if !c.HasChanges() {
		return "no changes"
	}
	parts := make([]string, 0, 4)
	if n := len(c.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := len(c.Updated); n > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", n))
	}
	if n := len(c.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	if c.Reordered {
		parts = append(parts, "reordered")
	}
	return strings.Join(parts, ", ")
}

// Option configures a comparison.
type Option func(*differ)

type differ struct {
	ignoreFields map[string]bool
}

// WithIgnoredFields skips the named fields ("uri", "list_id", "labels").
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// Values compares before and after. References are matched by selection
// id. Reordered is set when the ids both values share appear in another
// order.
func Values(before, after references.Value, opts ...Option) *Changeset {
	d := &differ{ignoreFields: make(map[string]bool)}
	for _, opt := range opts {
		opt(d)
	}

	oldByID := index(before)
	newByID := index(after)
	cs := &Changeset{}

	for _, ref := range after {
		prev, ok := oldByID[ref.ID()]
		if !ok {
			cs.Added = append(cs.Added, ref.Clone())
			continue
		}
		if changes := d.compare(prev, ref); len(changes) > 0 {
			cs.Updated = append(cs.Updated, ReferenceUpdate{ID: ref.ID(), Changes: changes})
		}
	}
	for _, ref := range before {
		if _, ok := newByID[ref.ID()]; !ok {
			cs.Removed = append(cs.Removed, ref.Clone())
		}
	}

	cs.Reordered = !slices.Equal(shared(before.IDs(), newByID), shared(after.IDs(), oldByID))
	return cs
}

func index(v references.Value) map[references.SelectionID]references.Reference {
	m := make(map[references.SelectionID]references.Reference, len(v))
	for _, ref := range v {
		m[ref.ID()] = ref
	}
	return m
}

// shared keeps the ids that also appear in other, preserving order.
func shared(ids []references.SelectionID, other map[references.SelectionID]references.Reference) []references.SelectionID {
	out := make([]references.SelectionID, 0, len(ids))
	for _, id := range ids {
		if _, ok := other[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (d *differ) compare(prev, next references.Reference) []FieldChange {
	var changes []FieldChange
	if !d.ignoreFields["uri"] && prev.URI != next.URI {
		changes = append(changes, FieldChange{Path: "uri", OldValue: prev.URI, NewValue: next.URI, Type: ChangeTypeUpdate})
	}
	if !d.ignoreFields["list_id"] && prev.ListID != next.ListID {
		changes = append(changes, FieldChange{Path: "list_id", OldValue: prev.ListID, NewValue: next.ListID, Type: ChangeTypeUpdate})
	}
	if !d.ignoreFields["labels"] {
		changes = append(changes, compareLabels(prev.Labels, next.Labels)...)
	}
	return changes
}

// compareLabels keys labels by language and value type.
func compareLabels(before, after []references.Label) []FieldChange {
	key := func(l references.Label) string { return l.LanguageID + "/" + l.ValueTypeID }
	path := func(k string) string { return "labels[" + k + "]" }

	oldByKey := make(map[string]string, len(before))
	for _, l := range before {
		oldByKey[key(l)] = l.Value
	}

	var changes []FieldChange
	seen := make(map[string]bool, len(after))
	for _, l := range after {
		k := key(l)
		seen[k] = true
		prev, ok := oldByKey[k]
		switch {
		case !ok:
			changes = append(changes, FieldChange{Path: path(k), NewValue: l.Value, Type: ChangeTypeAdd})
		case prev != l.Value:
			changes = append(changes, FieldChange{Path: path(k), OldValue: prev, NewValue: l.Value, Type: ChangeTypeUpdate})
		}
	}
	for _, l := range before {
		if k := key(l); !seen[k] {
			seen[k] = true
			changes = append(changes, FieldChange{Path: path(k), OldValue: l.Value, Type: ChangeTypeRemove})
		}
	}
	return changes
}
