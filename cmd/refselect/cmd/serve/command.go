// Package serve provides the development controlled list server command.
package serve

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/refselect/internal/cmd/application"
	"github.com/agentstation/refselect/internal/cmd/emoji"
	"github.com/agentstation/refselect/internal/embedded"
	"github.com/agentstation/refselect/internal/server"
	"github.com/agentstation/refselect/pkg/controlledlists"
	"github.com/agentstation/refselect/pkg/errors"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Serve controlled lists from a directory of YAML or JSON files",
		Long: `Serve starts a development controlled list server backed by list
files on disk. It answers the same flat search requests the select control
makes, so the other commands can run against it. Without --lists the
built-in sample lists are served.

Routes:
  GET /controlled_lists[?flat=true]
  GET /controlled_list/{id}[?flat=true&term=...]
  GET /controlled_list/{id}/resolve?value=...
  GET /health
  GET /metrics`,
		Example: `  refselect serve
  refselect serve --lists ./lists
  refselect serve --lists ./lists --port 9000 --prefix /plugins --auth --auth-token secret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, dir, err := parseConfig(cmd)
			if err != nil {
				return err
			}
			logger := app.Logger()

			var loaded []*controlledlists.ControlledList
			if dir == "" {
				loaded, err = embedded.Lists()
			} else {
				loaded, err = controlledlists.LoadDir(dir)
			}
			if err != nil {
				return err
			}
			lists := controlledlists.NewRegistry(loaded...)

			srv, err := server.New(lists, cfg, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Serving %d lists on http://%s:%d%s\n",
				emoji.Info, lists.Len(), cfg.Host, cfg.Port, cfg.PathPrefix)

			if err := srv.ListenAndServe(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Server stopped\n", emoji.Success)
			return nil
		},
	}

	cmd.Flags().String("lists", "", "directory of controlled list files (default: built-in samples)")
	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", "", "path prefix for list routes")
	cmd.Flags().Bool("cors", defaults.CORSEnabled, "Enable CORS")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")
	cmd.Flags().Bool("auth", false, "Require a token on list routes")
	cmd.Flags().String("auth-token", "", "token clients must present")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per client (0 disables)")
	cmd.Flags().Bool("trust-proxy", defaults.TrustProxy, "Identify rate-limited clients by X-Forwarded-For (only behind a trusted proxy)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "response cache lifetime")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Expose /metrics")

	return cmd
}

// parseConfig reads the command flags into a server configuration and the
// list directory.
func parseConfig(cmd *cobra.Command) (server.Config, string, error) {
	cfg := server.Config{
		Host:           mustGetString(cmd, "host"),
		Port:           mustGetInt(cmd, "port"),
		PathPrefix:     mustGetString(cmd, "prefix"),
		CORSEnabled:    mustGetBool(cmd, "cors"),
		CORSOrigins:    mustGetStringSlice(cmd, "cors-origins"),
		AuthEnabled:    mustGetBool(cmd, "auth"),
		AuthToken:      mustGetString(cmd, "auth-token"),
		AuthHeader:     mustGetString(cmd, "auth-header"),
		RateLimit:      mustGetInt(cmd, "rate-limit"),
		TrustProxy:     mustGetBool(cmd, "trust-proxy"),
		CacheTTL:       mustGetDuration(cmd, "cache-ttl"),
		ReadTimeout:    mustGetDuration(cmd, "read-timeout"),
		WriteTimeout:   mustGetDuration(cmd, "write-timeout"),
		IdleTimeout:    mustGetDuration(cmd, "idle-timeout"),
		MetricsEnabled: mustGetBool(cmd, "metrics"),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return cfg, "", errors.NewValidationError("port", cfg.Port, fmt.Sprintf("port out of range: %d", cfg.Port))
	}
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}
	return cfg, mustGetString(cmd, "lists"), nil
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetStringSlice retrieves a string slice flag value or panics if the flag doesn't exist.
func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

// mustGetDuration retrieves a duration flag value or panics if the flag doesn't exist.
func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
