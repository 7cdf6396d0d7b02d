// Package resolve provides the resolve command, which inspects a stored
// reference value.
package resolve

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/refselect/internal/cmd/application"
	"github.com/agentstation/refselect/internal/cmd/emoji"
	"github.com/agentstation/refselect/internal/cmd/output"
	"github.com/agentstation/refselect/internal/cmd/table"
	"github.com/agentstation/refselect/pkg/differ"
	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/references"
)

// Report describes a stored value.
type Report struct {
	Display        string                      `json:"display" yaml:"display"`
	Representation []references.Representation `json:"representation" yaml:"representation"`
	Valid          bool                        `json:"valid" yaml:"valid"`
	Problems       []string                    `json:"problems,omitempty" yaml:"problems,omitempty"`
	Changes        *differ.Changeset           `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// NewCommand creates the resolve command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		single  bool
		against string
	)

	cmd := &cobra.Command{
		Use:     "resolve <value.json|-> [--against earlier.json]",
		GroupID: "core",
		Short:   "Decode a stored value and report its labels and problems",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			value, err := references.ParseValue(data)
			if err != nil {
				return err
			}

			report := Build(value, !single, app.Language(), app.Unlabeled())

			if against != "" {
				prevData, err := readInput(cmd.InOrStdin(), against)
				if err != nil {
					return err
				}
				prev, err := references.ParseValue(prevData)
				if err != nil {
					return err
				}
				report.Changes = differ.Values(prev, value)
				app.Logger().Debug().Str("change", report.Changes.Summary()).Msg("Compared values")
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, report, func() table.Data {
				data := table.ValueData(value, app.Language(), app.Unlabeled())
				for _, p := range report.Problems {
					data.Rows = append(data.Rows, []string{emoji.Warning, p, "", ""})
				}
				if report.Changes != nil {
					data.Rows = append(data.Rows, []string{emoji.Info, report.Changes.Summary(), "", ""})
				}
				return data
			})
		},
	}

	cmd.Flags().BoolVar(&single, "single", false, "validate as a single-valued node")
	cmd.Flags().StringVar(&against, "against", "", "earlier value file to report changes from")

	return cmd
}

// Build assembles the report for value.
func Build(value references.Value, multiValue bool, lang, unlabeled string) Report {
	report := Report{
		Display:        references.DisplayValue(value, lang, unlabeled),
		Representation: references.ToRepresentation(value, lang),
		Valid:          true,
	}
	checks := []error{
		references.ValidatePrefLabels(value),
		references.ValidateListItemConsistency(value),
		references.ValidateMultiValue(value, multiValue),
	}
	for _, err := range checks {
		if err != nil {
			report.Valid = false
			report.Problems = append(report.Problems, err.Error())
		}
	}
	return report
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.WrapIO("read", "stdin", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}
