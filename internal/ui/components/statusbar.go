package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true)
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	hintGap = "   "
)

// StatusBar renders the enabled bindings as "desc [key]" hints. Lines wrap at width and
// are centered; a width of zero keeps everything on one line.
func StatusBar(bindings []key.Binding, width int) string {
	hints := renderHints(bindings)
	if len(hints) == 0 {
		return ""
	}
	lines := wrapHints(hints, width-2)
	for i, line := range lines {
		if width > 0 {
			line = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
		} else {
			line = "  " + line
		}
		lines[i] = line
	}
	return "\n" + strings.Join(lines, "\n")
}

// HelpLines lists the enabled bindings one per line, key first, for a help overlay.
func HelpLines(bindings []key.Binding) []string {
	width := 0
	for _, b := range active(bindings) {
		if w := lipgloss.Width(SanitizeOneLine(b.Help().Key)); w > width {
			width = w
		}
	}
	var lines []string
	for _, b := range active(bindings) {
		h := b.Help()
		keyText := SanitizeOneLine(h.Key)
		pad := strings.Repeat(" ", width-lipgloss.Width(keyText)+2)
		lines = append(lines, keyCapStyle.Render(keyText)+pad+hintDescStyle.Render(SanitizeOneLine(h.Desc)))
	}
	return lines
}

// active drops disabled bindings and those without help text.
func active(bindings []key.Binding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if !b.Enabled() || (h.Key == "" && h.Desc == "") {
			continue
		}
		out = append(out, b)
	}
	return out
}

func renderHints(bindings []key.Binding) []string {
	bs := active(bindings)
	hints := make([]string, len(bs))
	for i, b := range bs {
		h := b.Help()
		hints[i] = hintDescStyle.Render(SanitizeOneLine(h.Desc)) + " " + keyCapStyle.Render(SanitizeOneLine(h.Key))
	}
	return hints
}

// wrapHints packs hints greedily into lines no wider than width. A single hint wider
// than width gets a line of its own.
func wrapHints(hints []string, width int) []string {
	if width <= 0 {
		return []string{strings.Join(hints, hintGap)}
	}
	var lines []string
	var line strings.Builder
	for _, h := range hints {
		if line.Len() > 0 && lipgloss.Width(line.String())+len(hintGap)+lipgloss.Width(h) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(hintGap)
		}
		line.WriteString(h)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
