// Package app provides the application context and dependency management
// for the refselect CLI: configuration, logging, and the lazily created
// list service client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/internal/cmd/application"
	"github.com/agentstation/refselect/internal/transport"
	"github.com/agentstation/refselect/pkg/errors"
	"github.com/agentstation/refselect/pkg/listclient"
	"github.com/agentstation/refselect/pkg/selection"
)

// App holds the CLI's configuration, logger and list client.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	mu     sync.Mutex
	client *listclient.Client
}

var _ application.Application = (*App)(nil)

// Option configures an App.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(cfg *Config) Option {
	return func(a *App) error {
		a.config = cfg
		logger := NewLogger(cfg)
		a.logger = &logger
		return nil
	}
}

// WithLogger replaces the application logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string { return a.config.Format }

// Language returns the active UI language.
func (a *App) Language() string { return a.config.Language }

// Unlabeled returns the placeholder for records without a label.
func (a *App) Unlabeled() string { return a.config.Unlabeled }

// Searcher returns the list service client, creating it on first use.
func (a *App) Searcher() (selection.Searcher, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	if a.config.BaseURL == "" {
		return nil, errors.NewConfigError("list service",
			"base_url is not set (use --base-url or "+EnvPrefix+"_BASE_URL)", nil)
	}

	client, err := listclient.New(a.config.BaseURL,
		listclient.WithPathTemplate(a.config.ListPath),
		listclient.WithAuth(transport.ParseAuth(a.config.AuthScheme), a.config.APIToken),
		listclient.WithTimeout(a.config.HTTPTimeout),
		listclient.WithCacheTTL(a.config.CacheTTL),
		listclient.WithLogger(a.logger),
	)
	if err != nil {
		return nil, errors.WrapResource("create", "list client", a.config.BaseURL, err)
	}

	a.client = client
	return client, nil
}

// SelectionOptions returns reconciler options derived from the config.
func (a *App) SelectionOptions() []selection.Option {
	translations := selection.DefaultTranslations()
	if a.config.Unlabeled != "" {
		translations.Unlabeled = a.config.Unlabeled
	}
	return []selection.Option{
		selection.WithLanguage(a.config.Language),
		selection.WithQuietPeriod(a.config.QuietPeriod),
		selection.WithTranslations(translations),
		selection.WithLogger(a.logger),
	}
}

// Shutdown drops cached list pages.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		a.client.Invalidate()
		a.client = nil
	}
	return nil
}
