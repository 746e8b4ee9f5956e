package ui

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all console output.
var (
	// Brand colors
	Primary   = lipgloss.Color("#7D56F4") // Purple
	Secondary = lipgloss.Color("#00D4AA") // Teal

	// Severity colors
	FailColor   = lipgloss.Color("#FF3838") // Red - gates the build
	NoticeColor = lipgloss.Color("#FFB800") // Amber - advisory only

	// Status colors
	SuccessColor = lipgloss.Color("#00D26A")
	Muted        = lipgloss.Color("#6B7280")
)

// Pre-configured styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(Primary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			MarginTop(1)

	ConfigLabelStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Width(15)

	ConfigValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA"))

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	BracketStyle = lipgloss.NewStyle().
			Foreground(Muted)

	FailStyle = lipgloss.NewStyle().
			Foreground(FailColor).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(NoticeColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(FailColor)

	RuleIDStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	LocationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4D96FF"))
)

// SeverityStyle returns the style for a severity name.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "fail":
		return FailStyle
	case "notice":
		return NoticeStyle
	default:
		return StatLabelStyle
	}
}
