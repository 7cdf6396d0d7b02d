// Package emoji provides symbol constants for CLI output.
package emoji

const (
	// Success marks a passing check or a selectable row.
	Success = "✓"

	// Error marks a failed check or a row that cannot be selected.
	Error = "✗"

	// Warning marks a non-fatal problem.
	Warning = "!"

	// Info marks neutral status lines.
	Info = "•"
)
