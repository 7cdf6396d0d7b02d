// Package lists provides the lists command, which loads controlled list
// files and reports what they contain.
package lists

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/refselect/internal/cmd/application"
	"github.com/agentstation/refselect/internal/cmd/output"
	"github.com/agentstation/refselect/internal/cmd/table"
	"github.com/agentstation/refselect/internal/embedded"
	"github.com/agentstation/refselect/internal/matcher"
	"github.com/agentstation/refselect/pkg/controlledlists"
)

// Summary is one list in structured output.
type Summary struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Items      int    `json:"items" yaml:"items"`
	SearchOnly bool   `json:"search_only" yaml:"search_only"`
}

// NewCommand creates the lists command.
func NewCommand(app application.Application) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:     "lists [dir]",
		GroupID: "management",
		Short:   "Load controlled list files and show their ids",
		Long: `Lists loads every .yaml, .yml and .json list file in a directory,
normalizes it the way the serve command does, and prints the stable ids
the other commands expect. Without a directory the built-in sample lists
are shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "built-in"
			var (
				loaded []*controlledlists.ControlledList
				err    error
			)
			if len(args) == 1 {
				dir = args[0]
				loaded, err = controlledlists.LoadDir(dir)
			} else {
				loaded, err = embedded.Lists()
			}
			if err != nil {
				return err
			}
			if pattern != "" {
				m, err := matcher.New(matcher.Auto, pattern, matcher.Options{CaseInsensitive: true})
				if err != nil {
					return err
				}
				kept := loaded[:0]
				for _, l := range loaded {
					if m.Match(l.Name) {
						kept = append(kept, l)
					}
				}
				loaded = kept
			}
			app.Logger().Debug().Str("dir", dir).Int("count", len(loaded)).Msg("Loaded controlled lists")

			summaries := make([]Summary, 0, len(loaded))
			for _, l := range loaded {
				summaries = append(summaries, Summary{
					ID:         l.ID,
					Name:       l.Name,
					Items:      len(l.Flat()),
					SearchOnly: l.SearchOnly,
				})
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, summaries, func() table.Data {
				return table.ListsData(loaded)
			})
		},
	}

	cmd.Flags().StringVar(&pattern, "match", "", "only show lists whose name matches a glob or regex")

	return cmd
}
