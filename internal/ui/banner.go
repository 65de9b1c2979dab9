package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	wordmark = "pagelist"
	subtitle = "Paged lists • Search • Selection"
)

// bannerHeight is the number of terminal rows RenderBanner takes, counting the gap below it.
const bannerHeight = 6

// RenderBanner returns the styled wordmark with its subtitle and underline.
func RenderBanner() string {
	letters := strings.Split(strings.ToUpper(wordmark), "")
	mark := BannerStyle.Render(strings.Join(letters, " "))

	subtitleWidth := lipgloss.Width(subtitle)
	blockWidth := lipgloss.Width(mark)
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	center := lipgloss.NewStyle().Width(blockWidth).Align(lipgloss.Center)
	sub := center.Foreground(ColorMuted).Render(subtitle)
	underline := center.Foreground(ColorBorder).Render(strings.Repeat("─", subtitleWidth))

	return "\n" + center.Render(mark) + "\n" + sub + "\n" + underline + "\n"
}
