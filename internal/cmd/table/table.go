// Package table converts refselect values into rows for table output.
package table

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/refselect/internal/cmd/emoji"
	"github.com/agentstation/refselect/pkg/controlledlists"
	"github.com/agentstation/refselect/pkg/references"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

var titler = cases.Title(language.English)

// Headers turns snake_case keys into column titles.
func Headers(keys ...string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = titler.String(strings.ReplaceAll(k, "_", " "))
	}
	return out
}

// OptionsData renders an option page. label renders each option the way
// the control would; guide rows are marked as not selectable.
func OptionsData(opts []references.Option, label func(references.Option) string) Data {
	rows := make([][]string, 0, len(opts))
	for _, opt := range opts {
		selectable := emoji.Success
		if opt.Disabled {
			selectable = emoji.Error
		}
		rows = append(rows, []string{
			label(opt),
			opt.SelectionID(),
			selectable,
			opt.URI,
		})
	}
	return Data{
		Headers:         Headers("label", "id", "selectable", "uri"),
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignCenter, AlignLeft},
	}
}

// ListsData renders the controlled lists of a registry.
func ListsData(lists []*controlledlists.ControlledList) Data {
	rows := make([][]string, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, []string{
			l.Name,
			l.ID,
			strconv.Itoa(len(l.Flat())),
			strconv.FormatBool(l.SearchOnly),
		})
	}
	return Data{
		Headers:         Headers("name", "id", "items", "search_only"),
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignCenter},
	}
}

// ValueData renders each reference of a stored value with its display
// label in lang.
func ValueData(v references.Value, lang, fallback string) Data {
	rows := make([][]string, 0, len(v))
	for _, ref := range v {
		rows = append(rows, []string{
			references.DisplayLabel(ref.Labels, lang, fallback),
			ref.ID(),
			ref.ListID,
			ref.URI,
		})
	}
	return Data{
		Headers: Headers("label", "id", "list_id", "uri"),
		Rows:    rows,
	}
}
