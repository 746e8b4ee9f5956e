// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for runtime configuration defaults.
//
// Usage:
//
//	window := defaults.ContextWindow
//	exclude := defaults.ExcludedDirs()
//
// DO NOT hardcode values like `window: 3` at call sites. Reference the
// appropriate constant from this package instead.
package defaults

// Version is the current docguard version.
const Version = "1.2.0"

// ============================================================================
// SCAN SETTINGS
// ============================================================================

const (
	// ContextWindow is the number of lines before and after a match that
	// are considered "nearby" when evaluating contextual exceptions.
	ContextWindow = 3

	// BinarySniffLen is the number of leading bytes inspected for NUL
	// bytes when deciding whether a file is binary.
	BinarySniffLen = 512

	// MaxFileSize is the largest file (in bytes) the scanner will read.
	// Documentation files beyond this are almost certainly generated
	// artifacts; they are skipped with a notice.
	MaxFileSize = 8 << 20
)

// ExcludedDirs returns the directory names skipped entirely during the
// file walk. Callers own the returned slice.
func ExcludedDirs() []string {
	return []string{
		".git",
		"node_modules",
		"venv",
		".venv",
		"70_evidence",
		"20_receipts",
	}
}

// FileTypes returns the file extensions scanned when a rule set does not
// declare its own list. Callers own the returned slice.
func FileTypes() []string {
	return []string{".md", ".markdown", ".yaml", ".yml", ".txt"}
}

// ============================================================================
// OUTPUT SETTINGS
// ============================================================================

const (
	// FormatConsole renders a styled human-readable report.
	FormatConsole = "console"
	// FormatJSON writes the full report as one JSON document.
	FormatJSON = "json"
	// FormatJSONL writes one match per line as newline-delimited JSON.
	FormatJSONL = "jsonl"
	// FormatSARIF writes SARIF 2.1.0 for code-scanning upload.
	FormatSARIF = "sarif"
	// FormatCSV writes file,line,rule,severity,text rows.
	FormatCSV = "csv"
)

// Formats returns the supported output format names in display order.
func Formats() []string {
	return []string{FormatConsole, FormatJSON, FormatJSONL, FormatSARIF, FormatCSV}
}
