// Package selectcmd provides the select command, which drives a
// reconciler end to end and prints the stored value it produces.
package selectcmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/refselect/internal/cmd/application"
	"github.com/agentstation/refselect/internal/cmd/output"
	"github.com/agentstation/refselect/internal/cmd/table"
	"github.com/agentstation/refselect/pkg/controlledlists"
	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/references"
	"github.com/agentstation/refselect/pkg/selection"
)

// NewCommand creates the select command.
func NewCommand(app application.Application) *cobra.Command {
	var single bool

	cmd := &cobra.Command{
		Use:     "select <list-id> <id|label>...",
		GroupID: "core",
		Short:   "Select options by id or label and print the stored value",
		Long: `Select fetches every option of a controlled list, renders them so
they can be selected, then applies the given selection in order. Each
argument is a list item id or the exact text of any of its labels; a
label shared by several items selects the one with the lowest sortorder.
The resulting value is validated and printed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, inputs := args[0], args[1:]

			searcher, err := app.Searcher()
			if err != nil {
				return err
			}

			value := selection.NewObservable[references.Value](nil)
			cfg := selection.Config{ControlledList: listID, MultiValue: !single}
			rec, err := selection.New(cfg, value, searcher, app.SelectionOptions()...)
			if err != nil {
				return err
			}
			defer rec.Close()

			page, err := searcher.Search(cmd.Context(), listID, "")
			if err != nil {
				return err
			}
			prepared := rec.ProcessResults(*page)

			disabled := make(map[references.SelectionID]bool)
			for _, opt := range prepared.Results {
				rec.RenderOptionLabel(opt)
				if opt.Disabled {
					disabled[opt.SelectionID()] = true
				}
			}

			ids, err := resolveInputs(listID, prepared.Results, inputs, disabled)
			if err != nil {
				return err
			}

			if err := rec.Select(ids...); err != nil {
				return err
			}
			if err := references.Validate(value.Get(), cfg.MultiValue); err != nil {
				return err
			}

			app.Logger().Info().
				Str("list_id", listID).
				Str("display", rec.DisplayValue()).
				Msg("Selection applied")

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, value.Get(), func() table.Data {
				return table.ValueData(value.Get(), app.Language(), app.Unlabeled())
			})
		},
	}

	cmd.Flags().BoolVar(&single, "single", false, "treat the node as single-valued")

	return cmd
}

// resolveInputs maps each input to a selection id. Inputs that are UUIDs
// are taken as ids, anything else as label text, which picks the lowest
// sortorder item carrying that text. Guide rows cannot be selected.
func resolveInputs(listID string, opts []references.Option, inputs []string, disabled map[references.SelectionID]bool) ([]references.SelectionID, error) {
	value, err := controlledlists.FromOptions(listID, opts).Resolve(inputs...)
	if err != nil {
		return nil, err
	}
	ids := value.IDs()
	for i, id := range ids {
		if disabled[id] {
			return nil, errors.NewValidationError("selection", inputs[i], "'"+inputs[i]+"' is a guide item and cannot be selected")
		}
	}
	return ids, nil
}
