// Package application provides the application interface for refselect
// commands.
//
// Commands accept this interface rather than the concrete App so they can
// be tested with Mock:
//
//	mock := &application.Mock{
//	    SearcherFunc: func() (selection.Searcher, error) { return fake, nil },
//	}
//	cmd := options.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/pkg/selection"
)

// Application provides what commands need from the running app.
type Application interface {
	// Searcher returns the list search backend, creating it lazily.
	Searcher() (selection.Searcher, error)

	// SelectionOptions returns reconciler options derived from config:
	// language, quiet period, translations and logger.
	SelectionOptions() []selection.Option

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format ("" for auto).
	OutputFormat() string

	// Language returns the active UI language.
	Language() string

	// Unlabeled returns the placeholder for records without a label.
	Unlabeled() string

	// Version information.
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
