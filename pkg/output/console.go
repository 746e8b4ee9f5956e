package output

import (
	"fmt"
	"io"

	"github.com/docguard/docguard/pkg/scanner"
	"github.com/docguard/docguard/pkg/ui"
)

// ConsoleWriter renders a styled, human-readable report: fail matches
// first, then notices, then a summary block. It honors the global ui
// silent and no-color modes.
type ConsoleWriter struct {
	w       io.Writer
	verbose bool
}

// NewConsoleWriter creates a console writer. Verbose mode additionally
// prints exception descriptions and remediation context per match.
func NewConsoleWriter(w io.Writer, verbose bool) *ConsoleWriter {
	return &ConsoleWriter{w: w, verbose: verbose}
}

func (cw *ConsoleWriter) Write(report *scanner.Report) error {
	if len(report.Errors) > 0 {
		fmt.Fprintln(cw.w, ui.SectionStyle.Render("Violations"))
		for _, m := range report.Errors {
			cw.writeMatch(m)
		}
		fmt.Fprintln(cw.w)
	}

	if len(report.Notices) > 0 && !ui.IsSilent() {
		fmt.Fprintln(cw.w, ui.SectionStyle.Render("Notices"))
		for _, m := range report.Notices {
			cw.writeMatch(m)
		}
		fmt.Fprintln(cw.w)
	}

	cw.writeSummary(report)
	return nil
}

func (cw *ConsoleWriter) writeMatch(m scanner.Match) {
	fmt.Fprintf(cw.w, "  %s\n", ui.FormatMatch(m.Severity.String(), m.RuleID, m.File, m.Line, m.Text))
	if cw.verbose && m.Exception != "" {
		fmt.Fprintf(cw.w, "      %s\n", ui.SubtitleStyle.Render("allowed: "+m.Exception))
	}
}

func (cw *ConsoleWriter) writeSummary(report *scanner.Report) {
	s := report.Summary
	line := fmt.Sprintf("%d scanned, %d skipped, %d violations, %d notices",
		s.FilesScanned, s.FilesSkipped, len(report.Errors), len(report.Notices))

	if len(report.Errors) > 0 {
		fmt.Fprintf(cw.w, "%s %s\n", ui.FailStyle.Render(ui.Icon("✖", "[FAIL]")), line)
		return
	}
	fmt.Fprintf(cw.w, "%s %s\n", ui.SuccessStyle.Render(ui.Icon("✔", "[OK]")), line)
}
