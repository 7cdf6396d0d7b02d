package controlledlists

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the items having a label whose text contains term,
// compared with Unicode case folding. An empty term keeps every item.
// Notes are not searched.
func Filter(items []Item, term string) []Item {
	term = strings.TrimSpace(term)
	if term == "" {
		return items
	}

	fold := cases.Fold()
	needle := fold.String(term)

	var matched []Item
	for _, item := range items {
		for _, l := range item.Labels() {
			if strings.Contains(fold.String(l.Value), needle) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}
