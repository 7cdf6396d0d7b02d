package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the refselect CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "refselect",
		Short:   "Controlled vocabulary selection CLI",
		Version: a.version,
		Long: `refselect binds controlled vocabulary lists to a searchable
multi-select control. It searches lists through a list service, keeps the
selection and the stored reference value in sync, and can serve list
files for local development.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.refselect.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("base-url", "", "list service base URL")
	flags.String("token", "", "list service API token")
	flags.String("language", "", "active UI language for labels")

	rootCmd.SetVersionTemplate("refselect {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --config is given, then applies flag values on top.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if file := mustGetString(cmd, "config"); file != "" {
		config, err := LoadConfig(file)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)
	if v := mustGetString(cmd, "base-url"); v != "" {
		a.config.BaseURL = v
	}
	if v := mustGetString(cmd, "token"); v != "" {
		a.config.APIToken = v
	}
	if v := mustGetString(cmd, "language"); v != "" {
		a.config.Language = v
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
