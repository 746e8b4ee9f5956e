// Package ui renders docguard's console surface: banner, section
// headers, config lines, and per-match result lines. All styling is
// centralized here so writers and CLI commands never touch lipgloss
// directly.
package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Version information - overridable at build time via ldflags:
// go build -ldflags "-X github.com/docguard/docguard/pkg/ui.Version=1.0.0"
var (
	Version   = "1.2.0"
	BuildDate = "dev"
	Commit    = "dev"
)

// Global UI state
var (
	silentMode  bool
	noColorMode bool
	uiMu        sync.RWMutex
)

// SetSilent enables or disables silent mode (suppresses most output).
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// IsSilent returns whether silent mode is enabled.
func IsSilent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output.
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor returns whether color is disabled.
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

const bannerArt = `
     __                                   __
 ___/ /__  _______ ___ _____ ________/ /
/ _  / _ \/ __/ _ '/ // / _ '/ __/ _  /
\_,_/\___/\__/\_, /\_,_/\_,_/_/  \_,_/
             /___/
`

// PrintBanner renders the ASCII banner with version badge.
func PrintBanner() {
	if IsSilent() {
		return
	}
	fmt.Println(BannerStyle.Render(bannerArt))
	fmt.Printf("  %s %s\n\n",
		SubtitleStyle.Render("documentation policy scanner"),
		VersionStyle.Render("v"+Version))
}

// PrintSection renders a section header.
func PrintSection(title string) {
	if IsSilent() {
		return
	}
	fmt.Println(SectionStyle.Render(title))
	fmt.Println(BracketStyle.Render(strings.Repeat("─", len(title))))
}

// PrintConfigLine renders an aligned "label: value" line.
func PrintConfigLine(label, value string) {
	if IsSilent() {
		return
	}
	fmt.Printf("  %s %s\n",
		ConfigLabelStyle.Render(label+":"),
		ConfigValueStyle.Render(value))
}

// PrintError renders an error line to stdout.
func PrintError(msg string) {
	fmt.Printf("%s %s\n", ErrorStyle.Render(Icon("✖", "[FAIL]")), msg)
}

// PrintSuccess renders a success line to stdout.
func PrintSuccess(msg string) {
	if IsSilent() {
		return
	}
	fmt.Printf("%s %s\n", SuccessStyle.Render(Icon("✔", "[OK]")), msg)
}

// FormatMatch formats one match in nuclei-style bracket notation:
// [severity] [rule-id] file:line matched-text
func FormatMatch(severity, ruleID, file string, line int, text string) string {
	var parts []string
	parts = append(parts, BracketStyle.Render("[")+
		SeverityStyle(severity).Render(severity)+
		BracketStyle.Render("]"))
	parts = append(parts, BracketStyle.Render("[")+
		RuleIDStyle.Render(ruleID)+
		BracketStyle.Render("]"))
	if line > 0 {
		parts = append(parts, LocationStyle.Render(fmt.Sprintf("%s:%d", file, line)))
	} else {
		parts = append(parts, LocationStyle.Render(file))
	}
	parts = append(parts, StatValueStyle.Render(truncateString(text, 80)))
	return strings.Join(parts, " ")
}

// truncateString shortens s to max runes with an ellipsis.
func truncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
