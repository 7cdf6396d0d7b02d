package references

import "slices"

// SelectionID is the opaque option identifier used by the select control.
// It is the list item id of a reference's first label.
type SelectionID = string

// Reference is a labeled record pointing at one controlled list item.
type Reference struct {
	URI    string  `json:"uri" yaml:"uri"`
	Labels []Label `json:"labels" yaml:"labels"`
	ListID string  `json:"list_id" yaml:"list_id"`
}

// ID returns the selection id of the reference, or "" when it has no labels.
func (r Reference) ID() SelectionID {
	if len(r.Labels) == 0 {
		return ""
	}
	return r.Labels[0].ListItemID
}

// Clone returns a deep copy of the reference.
func (r Reference) Clone() Reference {
	r.Labels = slices.Clone(r.Labels)
	return r
}

// Value is the canonical stored state of a reference node. A nil Value
// means "no value"; the host never stores an empty, non-nil Value.
type Value []Reference

// IDs returns the ordered selection ids derived from the value.
func (v Value) IDs() []SelectionID {
	if v == nil {
		return nil
	}
	ids := make([]SelectionID, 0, len(v))
	for _, ref := range v {
		ids = append(ids, ref.ID())
	}
	return ids
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	if v == nil {
		return nil
	}
	out := make(Value, len(v))
	for i, ref := range v {
		out[i] = ref.Clone()
	}
	return out
}
