// Package options provides the options command, which renders a list
// search the way the select control would show it.
package options

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/refselect/internal/cmd/application"
	"github.com/agentstation/refselect/internal/cmd/output"
	"github.com/agentstation/refselect/internal/cmd/table"
	"github.com/agentstation/refselect/pkg/references"
	"github.com/agentstation/refselect/pkg/selection"
)

// Row is one rendered option in structured output.
type Row struct {
	ID       references.SelectionID `json:"id" yaml:"id"`
	Label    string                 `json:"label" yaml:"label"`
	Disabled bool                   `json:"disabled" yaml:"disabled"`
	Depth    int                    `json:"depth" yaml:"depth"`
	URI      string                 `json:"uri" yaml:"uri"`
}

// Result is the structured output of the options command.
type Result struct {
	ListID  string `json:"list_id" yaml:"list_id"`
	Term    string `json:"term,omitempty" yaml:"term,omitempty"`
	Results []Row  `json:"results" yaml:"results"`
	More    bool   `json:"more" yaml:"more"`
}

// NewCommand creates the options command.
func NewCommand(app application.Application) *cobra.Command {
	var indent string

	cmd := &cobra.Command{
		Use:     "options <list-id> [term]",
		GroupID: "core",
		Short:   "Search a controlled list and render its options",
		Long: `Options searches a controlled list through the configured list
service and renders each result as the select control would: indented by
depth, with guide rows marked as not selectable.`,
		Example: `  refselect options 2f0d0b84-5e58-4e6c-9d0b-7a0f0f6d1c11
  refselect options 2f0d0b84-5e58-4e6c-9d0b-7a0f0f6d1c11 red -o json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) > 1 {
				term = args[1]
			}

			searcher, err := app.Searcher()
			if err != nil {
				return err
			}

			opts := append(app.SelectionOptions(), selection.WithIndent(indent))
			rec, err := selection.New(selection.Config{ControlledList: args[0], MultiValue: true},
				selection.NewObservable[references.Value](nil), searcher, opts...)
			if err != nil {
				return err
			}
			defer rec.Close()

			page, err := searcher.Search(cmd.Context(), args[0], term)
			if err != nil {
				return err
			}
			prepared := rec.ProcessResults(*page)

			result := Result{ListID: args[0], Term: term, Results: make([]Row, 0, len(prepared.Results))}
			labels := make(map[references.SelectionID]string, len(prepared.Results))
			for _, opt := range prepared.Results {
				label := rec.RenderOptionLabel(opt)
				labels[opt.SelectionID()] = label
				result.Results = append(result.Results, Row{
					ID:       opt.SelectionID(),
					Label:    label,
					Disabled: opt.Disabled,
					Depth:    opt.Depth,
					URI:      opt.URI,
				})
			}

			app.Logger().Debug().
				Str("list_id", args[0]).
				Int("count", len(result.Results)).
				Msg("Rendered options")

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, result, func() table.Data {
				return table.OptionsData(prepared.Results, func(o references.Option) string {
					return labels[o.SelectionID()]
				})
			})
		},
	}

	cmd.Flags().StringVar(&indent, "indent", "  ", "string repeated once per depth level")

	return cmd
}
