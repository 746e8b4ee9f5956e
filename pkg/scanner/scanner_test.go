package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/docguard/docguard/pkg/jsonutil"
	"github.com/docguard/docguard/pkg/rule"
	"github.com/docguard/docguard/pkg/ruleset"
)

// exitCode99Rules is the rule set used across the scenario tests: one
// fail rule with two historical-context exceptions.
const exitCode99Rules = `
name: scenario
rules:
  - id: exit-code-99
    severity: fail
    match: literal
    pattern: "exit code 99"
    exceptions:
      - context: removed
        description: historical removal note
      - context: no longer
        description: historical removal note
`

func compileRules(t *testing.T, content string) *ruleset.Compiled {
	t.Helper()
	rs, err := ruleset.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c, err := rs.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return c
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScanExceptionDowngrades(t *testing.T) {
	// Scenario: match with a nearby exception phrase resolves to notice
	// and the exit code stays 0.
	root := writeTree(t, map[string]string{
		"doc.md": "exit code 99 was removed in v2\n",
	})

	report, err := New(compileRules(t, exitCode99Rules)).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(report.Errors) != 0 {
		t.Fatalf("errors = %v, want none", report.Errors)
	}
	if len(report.Notices) != 1 {
		t.Fatalf("notices = %v, want exactly one", report.Notices)
	}
	n := report.Notices[0]
	if n.Severity != rule.Notice || n.RuleID != "exit-code-99" || n.Line != 1 {
		t.Errorf("unexpected notice %+v", n)
	}
	if n.Exception != "historical removal note" {
		t.Errorf("exception description = %q", n.Exception)
	}
	if report.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", report.ExitCode())
	}
}

func TestScanFailWithoutException(t *testing.T) {
	// Scenario: no exception phrase nearby, match keeps fail severity
	// and the exit code is 1.
	root := writeTree(t, map[string]string{
		"doc.md": "the validator returns exit code 99 on error\n",
	})

	report, err := New(compileRules(t, exitCode99Rules)).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(report.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", report.Errors)
	}
	m := report.Errors[0]
	if m.Severity != rule.Fail || m.File != "doc.md" || m.Line != 1 || m.Text != "exit code 99" {
		t.Errorf("unexpected match %+v", m)
	}
	if report.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", report.ExitCode())
	}
}

func TestScanMalformedRuleSetAbortsBeforeScanning(t *testing.T) {
	// Scenario: a malformed pattern is a setup error; no files scanned.
	rs, err := ruleset.Parse([]byte(`
rules:
  - {id: bad, severity: fail, pattern: "[unclosed", match: regex}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := rs.Compile(); !errors.Is(err, ruleset.ErrInvalid) {
		t.Fatalf("Compile error = %v, want ErrInvalid", err)
	}
}

func TestScanExcludedDirectories(t *testing.T) {
	// Scenario: only files under excluded directories yields an empty
	// report and exit 0.
	rules := compileRules(t, `
exclude: ["archive"]
rules:
  - {id: f, severity: fail, pattern: forbidden, match: literal}
`)
	root := writeTree(t, map[string]string{
		"archive/a.md":       "forbidden\n",
		"archive/deep/b.md":  "forbidden\n",
		"70_evidence/old.md": "forbidden\n", // built-in exclusion
	})

	report, err := New(rules).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Errors) != 0 || len(report.Notices) != 0 {
		t.Fatalf("report not empty: %+v", report)
	}
	if report.Summary.FilesScanned != 0 {
		t.Errorf("files scanned = %d, want 0", report.Summary.FilesScanned)
	}
	if report.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", report.ExitCode())
	}
}

func TestScanOrderAcrossFiles(t *testing.T) {
	// Scenario: file a.md sorts before b.md in errors.
	root := writeTree(t, map[string]string{
		"b.md":     "exit code 99\n",
		"a.md":     "intro\nexit code 99\n",
		"sub/c.md": "exit code 99\n",
	})

	report, err := New(compileRules(t, exitCode99Rules)).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	var got [][2]any
	for _, m := range report.Errors {
		got = append(got, [2]any{m.File, m.Line})
	}
	want := [][2]any{
		{"a.md", 2},
		{"b.md", 1},
		{"sub/c.md", 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("error order = %v, want %v", got, want)
	}
}

func TestScanDeterminism(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.md": "exit code 99\nexit code 99 was removed\n",
		"b.md": "exit code 99\n",
	})
	s := New(compileRules(t, exitCode99Rules))

	first, err := s.Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	second, err := s.Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	a, err := jsonutil.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := jsonutil.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("reports differ between identical runs:\n%s\n%s", a, b)
	}
}

func TestScanContextWindow(t *testing.T) {
	// The exception phrase sits 3 lines below the match: inside the
	// default window. Six lines away it must not downgrade.
	inWindow := "exit code 99\nx\nx\nremoved\n"
	outOfWindow := "exit code 99\nx\nx\nx\nx\nx\nremoved\n"

	t.Run("within window", func(t *testing.T) {
		root := writeTree(t, map[string]string{"d.md": inWindow})
		report, err := New(compileRules(t, exitCode99Rules)).Scan(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(report.Errors) != 0 || len(report.Notices) != 1 {
			t.Errorf("want downgrade, got errors=%d notices=%d", len(report.Errors), len(report.Notices))
		}
	})

	t.Run("outside window", func(t *testing.T) {
		root := writeTree(t, map[string]string{"d.md": outOfWindow})
		report, err := New(compileRules(t, exitCode99Rules)).Scan(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(report.Errors) != 1 || len(report.Notices) != 0 {
			t.Errorf("want fail, got errors=%d notices=%d", len(report.Errors), len(report.Notices))
		}
	})
}

func TestScanMultilineRule(t *testing.T) {
	rules := compileRules(t, `
rules:
  - id: run-location-block
    severity: fail
    match: multiline
    pattern: '(?im)^cd validators\n\s*python'
`)
	root := writeTree(t, map[string]string{
		"howto.md": "setup:\ncd validators\npython run_all.py\n",
	})

	report, err := New(rules).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("errors = %+v, want one", report.Errors)
	}
	m := report.Errors[0]
	if m.Line != 2 {
		t.Errorf("line = %d, want 2 (start of the multiline match)", m.Line)
	}
	if m.Text != "cd validators" {
		t.Errorf("text = %q, want first line of the match", m.Text)
	}
}

func TestScanSkipsBinaryAndForeignFiles(t *testing.T) {
	rules := compileRules(t, `
rules:
  - {id: f, severity: fail, pattern: forbidden, match: literal}
`)
	root := writeTree(t, map[string]string{
		"bin.md":  "forbid\x00den binary\n",
		"code.go": "// forbidden but not a doc file\n",
		"ok.md":   "clean\n",
	})

	report, err := New(rules).Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(report.Errors) != 0 || len(report.Notices) != 0 {
		t.Errorf("binary/foreign files must not match: %+v", report)
	}
	if report.Summary.FilesScanned != 1 {
		t.Errorf("files scanned = %d, want 1 (ok.md only)", report.Summary.FilesScanned)
	}
}

func TestScanUnreadableFileBecomesNotice(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are ignored when running as root")
	}
	rules := compileRules(t, `
rules:
  - {id: f, severity: fail, pattern: forbidden, match: literal}
`)
	root := writeTree(t, map[string]string{
		"ok.md":     "clean\n",
		"locked.md": "forbidden\n",
	})
	if err := os.Chmod(filepath.Join(root, "locked.md"), 0o000); err != nil {
		t.Fatal(err)
	}

	report, err := New(rules).Scan(root)
	if err != nil {
		t.Fatalf("Scan must continue past unreadable files: %v", err)
	}
	if len(report.Notices) != 1 || report.Notices[0].RuleID != AccessRuleID {
		t.Fatalf("expected one file-access notice, got %+v", report.Notices)
	}
	if report.Summary.FilesSkipped != 1 {
		t.Errorf("files skipped = %d, want 1", report.Summary.FilesSkipped)
	}
	if report.ExitCode() != 0 {
		t.Errorf("access notices must not affect the exit code")
	}
}

func TestScanBadRoot(t *testing.T) {
	rules := compileRules(t, exitCode99Rules)

	t.Run("missing directory", func(t *testing.T) {
		_, err := New(rules).Scan(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrBadRoot) {
			t.Errorf("error = %v, want ErrBadRoot", err)
		}
	})

	t.Run("root is a file", func(t *testing.T) {
		root := writeTree(t, map[string]string{"f.md": "x\n"})
		_, err := New(rules).Scan(filepath.Join(root, "f.md"))
		if !errors.Is(err, ErrBadRoot) {
			t.Errorf("error = %v, want ErrBadRoot", err)
		}
	})
}
