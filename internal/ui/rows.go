package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gravitrone/pagelist/internal/list"
	"github.com/gravitrone/pagelist/internal/ui/components"
)

const fallbackWidth = 80

// maxDetailFields caps the detail rows under the table.
const maxDetailFields = 4

func (m ListModel) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = fallbackWidth
	}
	return components.BoxContentWidth(width)
}

// columns lays out marker, caption and key, plus the sort field when it is an extra field.
func (m ListModel) columns(width int) []components.ItemColumn {
	cols := []components.ItemColumn{
		components.MarkColumn(),
		components.CaptionColumn(width / 2),
		components.KeyColumn(width / 5),
	}
	if on := m.ctrl.SortSpec().On; extraField(on) {
		cols = append(cols, components.FieldColumn(on, width/5, formatValue))
	}
	return cols
}

func extraField(name string) bool {
	switch name {
	case "", list.FieldKey, list.FieldCaption, list.FieldSelected:
		return false
	}
	return true
}

func (m ListModel) renderRows() string {
	width := m.contentWidth()

	byKey := make(map[string]list.Item, len(m.rows))
	for _, it := range m.rows {
		byKey[it.Key] = it
	}
	visible := m.list.Visible()
	items := make([]list.Item, 0, len(visible))
	for _, k := range visible {
		items = append(items, byKey[k])
	}
	cursor, _ := m.list.Current()
	return components.ItemGrid(m.columns(width), items, cursor, width)
}

// renderDetail shows the extra fields of the row under the cursor.
func (m ListModel) renderDetail() string {
	k, ok := m.list.Current()
	if !ok {
		return ""
	}
	var current list.Item
	for _, it := range m.rows {
		if it.Key == k {
			current = it
			break
		}
	}
	if len(current.Fields) == 0 {
		return ""
	}

	names := make([]string, 0, len(current.Fields))
	for name := range current.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, maxDetailFields+1)
	for i, name := range names {
		if i == maxDetailFields {
			lines = append(lines, MutedStyle.Render(fmt.Sprintf("+%d more", len(names)-maxDetailFields)))
			break
		}
		valueWidth := m.contentWidth() - len(name) - 2
		lines = append(lines, components.InfoRow(name, components.ClampTextWidth(formatValue(current.Fields[name]), valueWidth)))
	}
	return strings.Join(lines, "\n")
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.DateTime)
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
