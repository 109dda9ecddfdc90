package ot

import (
	"errors"
	"fmt"
)

// ErrMissingRequiredTable is returned by Load when the table tree carries no
// substitution data. Without it no shaping is possible; the condition is
// fatal, not recoverable.
var ErrMissingRequiredTable = errors.New("font has no substitution table")

// ErrNoActiveScript signals that neither the preferred nor the fallback
// script tag is present in the font. Conversion must abort rather than pass
// raw characters through silently.
var ErrNoActiveScript = errors.New("no active script in font")

// errTableFormat produces user level errors for table-tree normalization.
func errTableFormat(message string) error {
	return fmt.Errorf("substitution table format: %s", message)
}

// ErrorSeverity represents the severity level of a table-loading diagnostic.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the table model unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error that may affect functionality
	// but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// TableError represents a diagnostic encountered while normalizing the table
// tree. Diagnostics are accumulated during Load and can be inspected after
// loading completes; only a missing substitution table aborts the load.
type TableError struct {
	Section  string        // section within the tree (e.g., "LookupList", "cmap")
	Issue    string        // human-readable description of the issue
	Severity ErrorSeverity // severity level of the error
}

// Error implements the error interface.
func (e TableError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Section, e.Issue)
}

// errorCollector accumulates diagnostics during table normalization.
type errorCollector struct {
	errors []TableError
}

func (ec *errorCollector) addError(section, issue string, severity ErrorSeverity) {
	ec.errors = append(ec.errors, TableError{
		Section:  section,
		Issue:    issue,
		Severity: severity,
	})
}
