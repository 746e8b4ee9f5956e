// Package scanner walks a documentation tree and applies a compiled rule
// set to every text file, producing a deterministic Report. The scan is
// single-threaded by design: the walk visits files in stable lexical
// order and no correctness property depends on parallelism.
package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/docguard/docguard/pkg/defaults"
	"github.com/docguard/docguard/pkg/rule"
	"github.com/docguard/docguard/pkg/ruleset"
)

// AccessRuleID is the synthetic rule id attached to file-access notices
// for files that could not be read mid-walk.
const AccessRuleID = "file-access"

// ErrBadRoot is returned when the scan root is not a readable directory.
// This is a setup error: no partial report is produced.
var ErrBadRoot = errors.New("scan root is not a readable directory")

// Scanner applies one compiled rule set. A Scanner holds no mutable
// state between scans and may be reused.
type Scanner struct {
	rules *ruleset.Compiled
}

// New returns a Scanner for the given compiled rule set.
func New(rules *ruleset.Compiled) *Scanner {
	return &Scanner{rules: rules}
}

// Scan walks all regular files under root and evaluates every rule
// against each. Only a setup failure (unreadable root) returns an error;
// everything else is accumulated into the Report so authors get the full
// batch of findings, not just the first.
func (s *Scanner) Scan(root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrBadRoot, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRoot, err)
	}

	report := &Report{
		RuleSet: s.rules.Name,
		Root:    root,
		Errors:  []Match{},
		Notices: []Match{},
		Summary: Summary{RuleHits: map[string]int{}},
	}

	fsys := os.DirFS(root)
	// WalkDir visits entries in lexical order, which fixes the file
	// ordering half of the determinism invariant.
	walkErr := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == "." {
				return fmt.Errorf("%w: %v", ErrBadRoot, err)
			}
			s.recordSkip(report, path, err)
			return nil
		}
		if d.IsDir() {
			if path != "." && s.rules.Excluded(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !s.rules.ScansFile(path) {
			return nil
		}
		s.scanFile(report, fsys, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return report, nil
}

// recordSkip turns a mid-walk read failure into a file-access notice.
// Access failures never abort the scan.
func (s *Scanner) recordSkip(report *Report, path string, err error) {
	report.Summary.FilesSkipped++
	report.Notices = append(report.Notices, Match{
		File:     path,
		Line:     0,
		Text:     fmt.Sprintf("skipped: %v", err),
		RuleID:   AccessRuleID,
		Severity: rule.Notice,
	})
}

// fileMatch pairs a Match with tie-break keys so per-file ordering is
// stable: line first, then rule declaration order, then byte offset.
type fileMatch struct {
	m       Match
	ruleIdx int
	offset  int
}

func (s *Scanner) scanFile(report *Report, fsys fs.FS, path string) {
	info, err := fs.Stat(fsys, path)
	if err != nil {
		s.recordSkip(report, path, err)
		return
	}
	if info.Size() > defaults.MaxFileSize {
		s.recordSkip(report, path, fmt.Errorf("file exceeds %d bytes", int64(defaults.MaxFileSize)))
		return
	}

	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		s.recordSkip(report, path, err)
		return
	}
	if isBinary(data) {
		// Binary files cannot violate textual policy rules.
		return
	}

	report.Summary.FilesScanned++
	content := string(data)
	lines := splitLines(content)

	var found []fileMatch
	for ri, r := range s.rules.Rules {
		if r.Multiline() {
			found = append(found, s.evalMultiline(r, ri, path, content, lines)...)
			continue
		}
		for li, line := range lines {
			for _, span := range r.FindAll(line) {
				ctx := window(lines, li, li, s.rules.ContextWindow)
				sev, ex := r.ResolveSeverity(ctx)
				m := Match{
					File:     path,
					Line:     li + 1,
					Text:     line[span.Start:span.End],
					RuleID:   r.ID,
					Severity: sev,
				}
				if ex != nil {
					m.Exception = ex.Description
				}
				found = append(found, fileMatch{m: m, ruleIdx: ri, offset: span.Start})
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].m.Line != found[j].m.Line {
			return found[i].m.Line < found[j].m.Line
		}
		if found[i].ruleIdx != found[j].ruleIdx {
			return found[i].ruleIdx < found[j].ruleIdx
		}
		return found[i].offset < found[j].offset
	})

	for _, fm := range found {
		report.Summary.RuleHits[fm.m.RuleID]++
		if fm.m.Severity == rule.Fail {
			report.Errors = append(report.Errors, fm.m)
		} else {
			report.Notices = append(report.Notices, fm.m)
		}
	}
}

// evalMultiline applies a multiline rule to whole-file content and maps
// byte offsets back to line numbers.
func (s *Scanner) evalMultiline(r *rule.Compiled, ri int, path, content string, lines []string) []fileMatch {
	var found []fileMatch
	for _, span := range r.FindAll(content) {
		startLine := strings.Count(content[:span.Start], "\n")
		endLine := strings.Count(content[:span.End], "\n")
		ctx := window(lines, startLine, endLine, s.rules.ContextWindow)
		sev, ex := r.ResolveSeverity(ctx)

		text := content[span.Start:span.End]
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		m := Match{
			File:     path,
			Line:     startLine + 1,
			Text:     strings.TrimRight(text, "\r"),
			RuleID:   r.ID,
			Severity: sev,
		}
		if ex != nil {
			m.Exception = ex.Description
		}
		found = append(found, fileMatch{m: m, ruleIdx: ri, offset: span.Start})
	}
	return found
}

// window joins the lines from first-n to last+n (0-based, inclusive),
// the "nearby context" an exception pattern is judged against.
func window(lines []string, first, last, n int) string {
	lo := first - n
	if lo < 0 {
		lo = 0
	}
	hi := last + n + 1
	if hi > len(lines) {
		hi = len(lines)
	}
	return strings.Join(lines[lo:hi], "\n")
}

// splitLines splits file content on newlines, trimming carriage returns
// so CRLF documents match the same patterns as LF ones.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// isBinary sniffs the leading bytes for NULs, the same heuristic git
// uses to tell text from binary.
func isBinary(data []byte) bool {
	n := len(data)
	if n > defaults.BinarySniffLen {
		n = defaults.BinarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}
