package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestBoxWidthBounds(t *testing.T) {
	assert.Equal(t, 40, boxWidth(10))
	assert.Equal(t, 80, boxWidth(200))
	assert.Equal(t, 70, boxWidth(100))
}

func TestBoxNarrowTerminalClampsWidth(t *testing.T) {
	out := TitledBox("Items", "line", 20)
	overflow := false
	for _, line := range strings.Split(out, "\n") {
		if lipgloss.Width(line) > 20 {
			overflow = true
			break
		}
	}
	assert.False(t, overflow)
}

func TestTitledBoxIncludesTitle(t *testing.T) {
	out := TitledBox("My Title", "Content", 80)
	assert.True(t, strings.Contains(out, "My Title"))
}

func TestTitledBoxEmptyTitleFallsBack(t *testing.T) {
	out := TitledBox("", "Content", 80)
	assert.True(t, strings.Contains(out, "Content"))
}

func TestErrorBoxIncludesMessage(t *testing.T) {
	out := ErrorBox("Error", "Something broke", 80)
	assert.True(t, strings.Contains(out, "Something broke"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("hello", 0))
	assert.Equal(t, "he", truncateRunes("hello", 2))
	assert.Equal(t, "你", truncateRunes("你好", 1))
}

func TestActiveTitledBoxClampsWidth(t *testing.T) {
	out := ActiveTitledBox("Items", "hello\nworld", 40)
	assert.Contains(t, out, "Items")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestInfoRowSanitizesLabelAndValue(t *testing.T) {
	out := InfoRow("na\u202Eme\x1b]0;evil\x07", "va\x1b[2Jlu\u202Ee")
	assert.NotContains(t, out, "\u202E")
	assert.NotContains(t, out, "\x1b]")
	assert.NotContains(t, out, "\x1b[2J")

	clean := SanitizeText(out)
	assert.Contains(t, clean, "name: value")
}

func TestIndentPreservesLineCountAndAddsPadding(t *testing.T) {
	src := "a\nb\nc"
	out := Indent(src, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}

func TestCenterLineAddsLeftPadding(t *testing.T) {
	out := CenterLine("hi", 80)
	pad := (safeBoxWidth(80) - lipgloss.Width("hi")) / 2
	assert.True(t, strings.HasPrefix(out, strings.Repeat(" ", pad)))
}
