package rules

import (
	"asynclint/internal/diag"
)

// Options selects and tunes the checks for one analysis run. The zero value
// is not useful; call DefaultOptions and override.
type Options struct {
	// Patterns are event name patterns (exact or '*' globs). Empty means
	// the engine defaults.
	Patterns []string
	// ContinuationMethods are property names that register deferred
	// callbacks. Empty means then/catch/finally.
	ContinuationMethods []string

	// Reference enables the bare-reference check.
	Reference bool
	// Properties lists disallowed property reads on event-like bases.
	Properties []string
	// Methods lists disallowed one-shot method calls on event-like bases.
	Methods []string

	// Severity of escape diagnostics.
	Severity diag.Severity
}

// DefaultOptions enables all three checks with the conventional DOM event
// surface: the handler-attachment target property and the three one-shot
// control methods.
func DefaultOptions() Options {
	return Options{
		Reference:  true,
		Properties: []string{"currentTarget"},
		Methods:    []string{"preventDefault", "stopPropagation", "stopImmediatePropagation"},
		Severity:   diag.SevWarning,
	}
}
