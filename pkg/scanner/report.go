package scanner

import "github.com/docguard/docguard/pkg/rule"

// Match is one concrete occurrence of a rule's pattern in a scanned file.
// Matches are immutable once created.
type Match struct {
	// File is the slash-separated path relative to the scan root.
	File string `json:"file"`

	// Line is the 1-based line number of the match. Multiline matches
	// report the line where the match begins.
	Line int `json:"line"`

	// Text is the matched text. Multiline matches report only their
	// first line.
	Text string `json:"text"`

	RuleID string `json:"rule_id"`

	// Severity is the resolved severity after exception evaluation.
	Severity rule.Severity `json:"severity"`

	// Exception carries the description of the downgrading exception
	// when one applied. Downgraded matches are surfaced, never dropped.
	Exception string `json:"exception,omitempty"`
}

// Summary aggregates scan counters for renderers.
type Summary struct {
	FilesScanned int `json:"files_scanned"`

	// FilesSkipped counts files that could not be read mid-walk and
	// were recorded as file-access notices.
	FilesSkipped int `json:"files_skipped"`

	// RuleHits maps rule id to total match count, both severities.
	RuleHits map[string]int `json:"rule_hits,omitempty"`
}

// Report is the aggregate, ordered result of a scan. It is a pure
// function of the scanned tree and the rule set: identical inputs yield
// identical Reports, which is what makes CI gating reproducible.
type Report struct {
	RuleSet string `json:"rule_set,omitempty"`
	Root    string `json:"root"`

	// Errors holds resolved fail matches ordered by (file, line).
	Errors []Match `json:"errors"`

	// Notices holds resolved notice matches ordered by (file, line).
	Notices []Match `json:"notices"`

	Summary Summary `json:"summary"`
}

// ExitCode derives the process exit code from the report: 0 when no fail
// matches exist, 1 otherwise. Notices never affect it. Exit code 2 is
// reserved for setup errors, which occur before a Report exists.
func (r *Report) ExitCode() int {
	if len(r.Errors) > 0 {
		return 1
	}
	return 0
}

// Matches returns errors followed by notices, for writers that emit a
// single flat stream.
func (r *Report) Matches() []Match {
	out := make([]Match, 0, len(r.Errors)+len(r.Notices))
	out = append(out, r.Errors...)
	out = append(out, r.Notices...)
	return out
}
