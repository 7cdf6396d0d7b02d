// Package constants provides shared constants used throughout refselect.
// This includes timeouts, cache lifetimes and the
// defaults handed to the searchable select control.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for list service requests
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultQuietPeriod is how long the control waits after the last
	// keystroke before firing a search request
	DefaultQuietPeriod = 250 * time.Millisecond

	// DefaultCacheTTL is how long fetched option pages are reused
	DefaultCacheTTL = 5 * time.Minute

	// ShutdownTimeout bounds graceful shutdown of the dev list server
	ShutdownTimeout = 5 * time.Second
)

// FilePermissions is the default permission for created log files (rw-r--r--)
const FilePermissions = 0644

// Control defaults
const (
	// DefaultLanguage is used when no UI language is configured
	DefaultLanguage = "en"

	// DefaultListPath is the list search endpoint path; {id} is replaced
	// with the controlled list id
	DefaultListPath = "/controlled_list/{id}"

	// HTMLIndent is one indentation step for markup-rendering controls
	HTMLIndent = "&nbsp;&nbsp;&nbsp;&nbsp;"

	// DefaultUnlabeled is shown when a record has no preferred label in
	// the active language
	DefaultUnlabeled = "Unlabeled Item"

	// DefaultSearching is shown while an option's label is still unknown
	DefaultSearching = "Searching"
)
