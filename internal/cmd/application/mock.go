package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/refselect/pkg/constants"
	"github.com/agentstation/refselect/pkg/logging"
	"github.com/agentstation/refselect/pkg/selection"
)

// Mock provides a mock implementation of Application for testing.
// A nil function field makes the method return a default.
type Mock struct {
	SearcherFunc         func() (selection.Searcher, error)
	SelectionOptionsFunc func() []selection.Option
	LoggerFunc           func() *zerolog.Logger
	OutputFormatFunc     func() string
	LanguageFunc         func() string
	UnlabeledFunc        func() string
	VersionFunc          func() string
	CommitFunc           func() string
	DateFunc             func() string
	BuiltByFunc          func() string
}

var _ Application = (*Mock)(nil)

// Searcher returns a searcher using the mock function or nil.
func (m *Mock) Searcher() (selection.Searcher, error) {
	if m.SearcherFunc != nil {
		return m.SearcherFunc()
	}
	return nil, nil
}

// SelectionOptions returns options using the mock function or a nop logger.
func (m *Mock) SelectionOptions() []selection.Option {
	if m.SelectionOptionsFunc != nil {
		return m.SelectionOptionsFunc()
	}
	return []selection.Option{selection.WithLogger(m.Logger())}
}

// Logger returns a logger using the mock function or a nop logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the mock format or json.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Language returns the mock language or the default.
func (m *Mock) Language() string {
	if m.LanguageFunc != nil {
		return m.LanguageFunc()
	}
	return constants.DefaultLanguage
}

// Unlabeled returns the mock placeholder or the default.
func (m *Mock) Unlabeled() string {
	if m.UnlabeledFunc != nil {
		return m.UnlabeledFunc()
	}
	return constants.DefaultUnlabeled
}

// Version returns the mock version or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the mock commit or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the mock date or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the mock builder or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
