package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/docguard/docguard/pkg/defaults"
	"github.com/docguard/docguard/pkg/exitcode"
	"github.com/docguard/docguard/pkg/output"
	"github.com/docguard/docguard/pkg/rule"
	"github.com/docguard/docguard/pkg/ruleset"
	"github.com/docguard/docguard/pkg/scanner"
	"github.com/docguard/docguard/pkg/ui"
)

// =============================================================================
// SCAN COMMAND - apply a rule set to a documentation tree
// =============================================================================

func runScan() int {
	scanFlags := flag.NewFlagSet("scan", flag.ExitOnError)

	root := scanFlags.String("root", ".", "Root directory to scan")
	rulesFile := scanFlags.String("rules", "", "Rule-set YAML file (overrides -preset)")
	preset := scanFlags.String("preset", "", "Built-in rule set name (default: constitution)")
	window := scanFlags.Int("window", 0, "Context window in lines for exception evaluation (0 = rule-set value)")
	exclude := scanFlags.String("exclude", "", "Extra excluded directory names (comma-separated)")
	fileTypes := scanFlags.String("type", "", "File extensions to scan (comma-separated, e.g. .md,.yaml)")
	outFile := scanFlags.String("o", "", "Output file (default: stdout)")
	format := scanFlags.String("format", defaults.FormatConsole,
		"Output format: "+strings.Join(defaults.Formats(), ", "))
	silent := scanFlags.Bool("silent", false, "Suppress banner and notices")
	noColor := scanFlags.Bool("no-color", false, "Disable colored output")
	verbose := scanFlags.Bool("verbose", false, "Show exception details per match")

	scanFlags.Parse(os.Args[2:])

	ui.SetSilent(*silent)
	ui.SetNoColor(*noColor || !ui.IsTTY())

	mgr := exitcode.New()

	// Machine-readable formats own stdout; keep the banner off it.
	console := *format == defaults.FormatConsole
	if console && *outFile == "" {
		ui.PrintBanner()
	}

	rs, err := loadRuleSet(*rulesFile, *preset)
	if err != nil {
		ui.PrintError(err.Error())
		mgr.SetSetupError()
		return exitWith(mgr)
	}
	applyOverrides(rs, *window, *exclude, *fileTypes)

	compiled, err := rs.Compile()
	if err != nil {
		ui.PrintError(err.Error())
		mgr.SetSetupError()
		return exitWith(mgr)
	}

	if console && *outFile == "" {
		ui.PrintSection("Scan")
		ui.PrintConfigLine("Root", *root)
		ui.PrintConfigLine("Rule set", compiled.String())
		ui.PrintConfigLine("Window", fmt.Sprintf("%d lines", compiled.ContextWindow))
		fmt.Println()
	}

	report, err := scanner.New(compiled).Scan(*root)
	if err != nil {
		ui.PrintError(err.Error())
		mgr.SetSetupError()
		return exitWith(mgr)
	}

	for range report.Errors {
		mgr.RecordViolation()
	}
	for range report.Notices {
		mgr.RecordNotice()
	}

	if err := writeReport(report, *format, *outFile, *verbose); err != nil {
		ui.PrintError(err.Error())
		mgr.SetSetupError()
		return exitWith(mgr)
	}

	if console && *outFile == "" && len(report.Errors) > 0 {
		printRemediation(compiled, report)
	}

	return exitWith(mgr)
}

// loadRuleSet resolves the rule-set source: explicit file, named preset,
// or the built-in default.
func loadRuleSet(rulesFile, preset string) (*ruleset.RuleSet, error) {
	switch {
	case rulesFile != "":
		return ruleset.Load(rulesFile)
	case preset != "":
		return ruleset.LoadPreset(preset)
	default:
		return ruleset.Default()
	}
}

// applyOverrides lets run-time flags tighten a loaded rule set without
// editing it. Flags never relax the rule set: exclusions and file types
// replace or extend configuration, the window overrides the default.
func applyOverrides(rs *ruleset.RuleSet, window int, exclude, fileTypes string) {
	if window > 0 {
		rs.ContextWindow = window
	}
	if exclude != "" {
		for _, pat := range strings.Split(exclude, ",") {
			if pat = strings.TrimSpace(pat); pat != "" {
				rs.Exclude = append(rs.Exclude, pat)
			}
		}
	}
	if fileTypes != "" {
		rs.FileTypes = nil
		for _, ext := range strings.Split(fileTypes, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				rs.FileTypes = append(rs.FileTypes, ext)
			}
		}
	}
}

func writeReport(report *scanner.Report, format, outFile string, verbose bool) error {
	dest := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		dest = f
	}

	var w output.Writer
	var err error
	if format == defaults.FormatConsole {
		w = output.NewConsoleWriter(dest, verbose)
	} else {
		w, err = output.NewWriter(format, dest)
		if err != nil {
			return err
		}
	}
	return w.Write(report)
}

// printRemediation lists each failed rule's suggested fixes once,
// mirroring the batch-feedback goal: authors get everything they need
// to fix the tree in one run.
func printRemediation(compiled *ruleset.Compiled, report *scanner.Report) {
	byID := make(map[string]*rule.Compiled, len(compiled.Rules))
	for _, r := range compiled.Rules {
		byID[r.ID] = r
	}

	seen := map[string]bool{}
	var lines []string
	for _, m := range report.Errors {
		if seen[m.RuleID] {
			continue
		}
		seen[m.RuleID] = true
		if r, ok := byID[m.RuleID]; ok {
			lines = append(lines, r.Remediation...)
		}
	}
	if len(lines) == 0 {
		return
	}

	fmt.Println()
	ui.PrintSection("Remediation")
	for _, line := range lines {
		fmt.Printf("  %s %s\n", ui.BracketStyle.Render("•"), line)
	}
}

// exitWith resolves the manager's exit code, noting the reason on
// stderr so machine-readable stdout stays clean.
func exitWith(mgr *exitcode.Manager) int {
	code, reason := mgr.ExitCode()
	if code != exitcode.Pass && !ui.IsSilent() {
		fmt.Fprintf(os.Stderr, "exit: %d (%s)\n", int(code), reason)
	}
	return int(code)
}
