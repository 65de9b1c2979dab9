package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/pagelist/internal/list"
)

// ItemColumn is one column of an item grid. Value extracts the cell text from an item.
type ItemColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
	Value  func(list.Item) string

	mark bool
}

const (
	gridSep  = " │ "
	gridRule = "─┼─"
)

var (
	gridLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#273540"))
	gridCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da")).
			Background(lipgloss.Color("#1f2530")).
			Bold(true)
	gridCursorSepStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#273540")).
				Background(lipgloss.Color("#1f2530"))
	gridMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1606b")).Bold(true)
)

// MarkColumn shows whether the item is selected.
func MarkColumn() ItemColumn {
	return ItemColumn{Width: 3, Align: lipgloss.Center, mark: true, Value: func(it list.Item) string {
		if it.Selected {
			return "[x]"
		}
		return "[ ]"
	}}
}

func CaptionColumn(width int) ItemColumn {
	return ItemColumn{Header: "Caption", Width: width, Value: func(it list.Item) string { return it.Caption }}
}

func KeyColumn(width int) ItemColumn {
	return ItemColumn{Header: "Key", Width: width, Value: func(it list.Item) string { return it.Key }}
}

// FieldColumn shows a built-in or extra field, headed by its name.
func FieldColumn(name string, width int, format func(any) string) ItemColumn {
	return ItemColumn{Header: name, Width: width, Value: func(it list.Item) string {
		v, _ := it.Field(name)
		return format(v)
	}}
}

// ItemGrid renders a header, a rule and one row per item, every line exactly width
// cells wide. The row whose key equals cursor is highlighted. Columns that do not fit
// are dropped from the right and the last remaining column takes any spare width.
func ItemGrid(cols []ItemColumn, items []list.Item, cursor string, width int) string {
	if width <= 0 || len(cols) == 0 {
		return ""
	}
	widths := fitWidths(cols, width)
	cols = cols[:len(widths)]

	lines := make([]string, 0, len(items)+2)

	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, c := range cols {
		header[i] = boxLabelStyle.Render(gridCell(c.Header, widths[i], c.Align))
		rule[i] = strings.Repeat("─", widths[i])
	}
	lines = append(lines, strings.Join(header, gridLineStyle.Render(gridSep)))
	lines = append(lines, gridLineStyle.Render(strings.Join(rule, gridRule)))

	for _, it := range items {
		onCursor := cursor != "" && it.Key == cursor
		cells := make([]string, len(cols))
		for i, c := range cols {
			cell := gridCell(c.Value(it), widths[i], c.Align)
			switch {
			case onCursor:
				cell = gridCursorStyle.Render(cell)
			case c.mark && it.Selected:
				cell = gridMarkStyle.Render(cell)
			}
			cells[i] = cell
		}
		sep := gridLineStyle.Render(gridSep)
		if onCursor {
			sep = gridCursorSepStyle.Render(gridSep)
		}
		lines = append(lines, strings.Join(cells, sep))
	}
	return strings.Join(lines, "\n")
}

// fitWidths assigns each column a width so that cells plus separators fill width.
func fitWidths(cols []ItemColumn, width int) []int {
	sepWidth := lipgloss.Width(gridSep)
	widths := make([]int, 0, len(cols))
	used := 0
	for i, c := range cols {
		gap := 0
		if i > 0 {
			gap = sepWidth
		}
		if used+gap+1 > width {
			break
		}
		w := c.Width
		if w < 1 {
			w = 1
		}
		if used+gap+w > width {
			w = width - used - gap
		}
		widths = append(widths, w)
		used += gap + w
	}
	widths[len(widths)-1] += width - used
	return widths
}

func gridCell(text string, width int, align lipgloss.Position) string {
	return lipgloss.PlaceHorizontal(width, align, ClampTextWidth(text, width))
}
