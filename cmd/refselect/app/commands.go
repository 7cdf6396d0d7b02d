package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/refselect/cmd/refselect/cmd/lists"
	"github.com/agentstation/refselect/cmd/refselect/cmd/options"
	"github.com/agentstation/refselect/cmd/refselect/cmd/resolve"
	"github.com/agentstation/refselect/cmd/refselect/cmd/selectcmd"
	"github.com/agentstation/refselect/cmd/refselect/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(options.NewCommand(a))
	rootCmd.AddCommand(selectcmd.NewCommand(a))
	rootCmd.AddCommand(resolve.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(serve.NewCommand(a))
	rootCmd.AddCommand(lists.NewCommand(a))

	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("refselect %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
