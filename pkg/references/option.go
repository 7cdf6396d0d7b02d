package references

// Option is one entry of a flat controlled list search result.
type Option struct {
	ID         string  `json:"id,omitempty" yaml:"id,omitempty"`
	ListItemID string  `json:"list_item_id,omitempty" yaml:"list_item_id,omitempty"`
	ListID     string  `json:"list_id" yaml:"list_id"`
	URI        string  `json:"uri" yaml:"uri"`
	SortOrder  int     `json:"sortorder" yaml:"sortorder"`
	Guide      bool    `json:"guide" yaml:"guide"`
	Values     []Label `json:"values" yaml:"values"`
	ParentID   string  `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Depth      int     `json:"depth,omitempty" yaml:"depth,omitempty"`

	// Derived by Prepare.
	Labels   []Label `json:"labels,omitempty" yaml:"labels,omitempty"`
	Disabled bool    `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Prepare derives Labels and Disabled from the raw option fields.
// Guide options are group headers and cannot be selected.
func (o *Option) Prepare() {
	o.Labels = FilterLabels(o.Values)
	o.Disabled = o.Guide
}

// SelectionID returns the id the select control uses for this option:
// the list item id of its first label, falling back to the option's own ids.
func (o Option) SelectionID() SelectionID {
	labels := o.Labels
	if labels == nil {
		labels = FilterLabels(o.Values)
	}
	if len(labels) > 0 && labels[0].ListItemID != "" {
		return labels[0].ListItemID
	}
	if o.ListItemID != "" {
		return o.ListItemID
	}
	return o.ID
}

// Reference builds the reference a selection of this option stores.
// Labels without a list item id get the option's selection id, so the
// reference's ID always equals the option's SelectionID.
func (o Option) Reference() Reference {
	labels := o.Labels
	if labels == nil {
		labels = FilterLabels(o.Values)
	}
	id := o.SelectionID()
	out := make([]Label, len(labels))
	for i, l := range labels {
		if l.ListItemID == "" {
			l.ListItemID = id
		}
		out[i] = l
	}
	return Reference{URI: o.URI, Labels: out, ListID: o.ListID}
}

// OptionPage is one page of search results handed to the select control.
type OptionPage struct {
	Results []Option `json:"results" yaml:"results"`
	More    bool     `json:"more" yaml:"more"`
}
