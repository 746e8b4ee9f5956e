package rule

// Severity classifies a resolved match. All values are lowercase strings
// as they appear in rule-set YAML and in machine-readable output.
type Severity string

const (
	// Fail represents a policy violation that gates CI (exit code 1).
	Fail Severity = "fail"

	// Notice represents an advisory finding that is always surfaced
	// but never affects the exit code.
	Notice Severity = "notice"
)

// IsValid reports whether s is a recognized severity level.
func (s Severity) IsValid() bool {
	switch s {
	case Fail, Notice:
		return true
	}
	return false
}

// Score returns a numeric score for sorting and comparison.
// Fail=2, Notice=1, Unknown=0.
func (s Severity) Score() int {
	switch s {
	case Fail:
		return 2
	case Notice:
		return 1
	default:
		return 0
	}
}

// String returns the severity as a string.
func (s Severity) String() string {
	return string(s)
}

// ToSARIF maps severity to SARIF result level.
// Fail → error, Notice → note.
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
func (s Severity) ToSARIF() string {
	switch s {
	case Fail:
		return "error"
	default:
		return "note"
	}
}
