package core

import "strings"

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a rule violation.
type Severity int

// Severity levels for violations.
const (
	// SeverityError indicates a violation that breaks accessibility or layout.
	SeverityError Severity = iota
	// SeverityWarning indicates a violation that degrades composition quality.
	SeverityWarning
	// SeveritySuggestion indicates an optional improvement.
	SeveritySuggestion
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeveritySuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize
// as their names in JSON/YAML reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "suggestion":
		return SeveritySuggestion, true
	default:
		return SeverityWarning, false
	}
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a composition rule for documentation and
// tooling. This is a DTO - it carries data without behavior.
type RuleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`
}
