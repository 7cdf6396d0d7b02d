package selection

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/pkg/constants"
)

// Translations holds the user-facing strings the reconciler renders.
type Translations struct {
	// Unlabeled replaces a missing preferred label.
	Unlabeled string
	// Searching is shown, followed by "...", for an option whose label
	// resolves to blank.
	Searching string
}

// Option configures a Reconciler.
type Option func(*options) error

type options struct {
	language     string
	indent       string
	quietPeriod  time.Duration
	logger       *zerolog.Logger
	control      Control
	translations Translations
}

// WithLanguage sets the active UI language used to pick display labels.
func WithLanguage(lang string) Option {
	return func(o *options) error {
		o.language = lang
		return nil
	}
}

// WithIndent sets the string repeated once per depth level when rendering
// options.
func WithIndent(indent string) Option {
	return func(o *options) error {
		o.indent = indent
		return nil
	}
}

// WithQuietPeriod sets the delay between the last keystroke and a search.
func WithQuietPeriod(d time.Duration) Option {
	return func(o *options) error {
		o.quietPeriod = d
		return nil
	}
}

// WithLogger sets the logger. Nil uses the default logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithControl sets the sink that receives pre-selected rows.
func WithControl(c Control) Option {
	return func(o *options) error {
		o.control = c
		return nil
	}
}

// DefaultTranslations returns the built-in English strings.
func DefaultTranslations() Translations {
	return Translations{
		Unlabeled: constants.DefaultUnlabeled,
		Searching: constants.DefaultSearching,
	}
}

// WithTranslations replaces the rendered strings. Start from
// DefaultTranslations to override a single field.
func WithTranslations(t Translations) Option {
	return func(o *options) error {
		o.translations = t
		return nil
	}
}

func defaultOptions() *options {
	return &options{
		language:     constants.DefaultLanguage,
		indent:       constants.HTMLIndent,
		quietPeriod:  constants.DefaultQuietPeriod,
		translations: DefaultTranslations(),
	}
}
