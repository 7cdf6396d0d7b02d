package app

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/pkg/logging"
)

var validLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger creates a configured logger based on the application configuration.
// Log level precedence (highest to lowest):
//  1. --log-level flag or REFSELECT_LOG_LEVEL
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

// determineLogLevel determines the log level using the precedence rules.
func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		if slices.Contains(validLevels, config.LogLevel) {
			return config.LogLevel
		}
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", config.LogLevel)
		return "info"
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}
	return "info"
}
