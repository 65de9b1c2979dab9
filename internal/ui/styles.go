package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary = lipgloss.Color("#7f57b4") // purple
	ColorAccent  = lipgloss.Color("#a7754e") // warm
	ColorMuted   = lipgloss.Color("#9ba0bf") // muted text
	ColorError   = lipgloss.Color("#6d424b") // red
	ColorBorder  = lipgloss.Color("#273540") // border
)

// --- Reusable Styles ---

var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)
