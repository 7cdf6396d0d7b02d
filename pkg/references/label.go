// Package references defines the data contracts shared by the selection
// reconciler, the controlled list client and the host application: labels,
// references (labeled records pointing at a controlled list item), stored
// values and the options returned by a list search.
package references

// ValueType identifies the kind of a list item value.
type ValueType = string

// Label kinds.
const (
	PrefLabel ValueType = "prefLabel"
	AltLabel  ValueType = "altLabel"
)

// Note kinds and other non-label value types.
const (
	ScopeNote     ValueType = "scopeNote"
	Definition    ValueType = "definition"
	Example       ValueType = "example"
	HistoryNote   ValueType = "historyNote"
	EditorialNote ValueType = "editorialNote"
	ChangeNote    ValueType = "changeNote"
	Note          ValueType = "note"
	Description   ValueType = "description"
	URI           ValueType = "URI"
)

// Label is a single language-tagged value of a list item.
type Label struct {
	ID          string    `json:"id" yaml:"id"`
	Value       string    `json:"value" yaml:"value"`
	LanguageID  string    `json:"language_id" yaml:"language_id"`
	ValueTypeID ValueType `json:"valuetype_id" yaml:"valuetype_id"`
	ListItemID  string    `json:"list_item_id" yaml:"list_item_id"`
}

// IsLabel reports whether the value is a preferred or alternate label.
func (l Label) IsLabel() bool {
	return l.ValueTypeID == PrefLabel || l.ValueTypeID == AltLabel
}

// FilterLabels returns the values that are labels, preserving order.
func FilterLabels(values []Label) []Label {
	labels := make([]Label, 0, len(values))
	for _, v := range values {
		if v.IsLabel() {
			labels = append(labels, v)
		}
	}
	return labels
}
