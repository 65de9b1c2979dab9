package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.True(t, isQuit(runeKey('q')))
	assert.False(t, isQuit(runeKey('a')))
}

func TestIsEnter(t *testing.T) {
	assert.True(t, isEnter(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.False(t, isEnter(tea.KeyMsg{Type: tea.KeySpace}))
}

func TestIsSpace(t *testing.T) {
	assert.True(t, isSpace(tea.KeyMsg{Type: tea.KeySpace}))
	assert.False(t, isSpace(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestIsBack(t *testing.T) {
	assert.True(t, isBack(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, isBack(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestIsDown(t *testing.T) {
	assert.True(t, isDown(tea.KeyMsg{Type: tea.KeyDown}))
	assert.True(t, isDown(runeKey('j')))
	assert.False(t, isDown(tea.KeyMsg{Type: tea.KeyUp}))
}

func TestIsUp(t *testing.T) {
	assert.True(t, isUp(tea.KeyMsg{Type: tea.KeyUp}))
	assert.True(t, isUp(runeKey('k')))
	assert.False(t, isUp(tea.KeyMsg{Type: tea.KeyDown}))
}

func TestPagingKeys(t *testing.T) {
	assert.True(t, isPageDown(tea.KeyMsg{Type: tea.KeyPgDown}))
	assert.True(t, isPageUp(tea.KeyMsg{Type: tea.KeyPgUp}))
	assert.True(t, isTop(tea.KeyMsg{Type: tea.KeyHome}))
	assert.True(t, isBottom(runeKey('G')))
	assert.False(t, isBottom(runeKey('g')))
}

func TestIsKey(t *testing.T) {
	assert.True(t, isKey(runeKey('s'), "s"))
	assert.True(t, isKey(tea.KeyMsg{Type: tea.KeyBackspace}, "backspace"))
	assert.True(t, isKey(tea.KeyMsg{Type: tea.KeyLeft}, "left"))
	assert.False(t, isKey(runeKey('s'), "a"))
	assert.False(t, isKey(tea.KeyMsg{Type: tea.KeyLeft}, "right"))
	assert.True(t, isSearch(runeKey('/')))
	assert.True(t, isReload(runeKey('r')))
	assert.True(t, isHelp(runeKey('?')))
}

func TestKeyMapHints(t *testing.T) {
	km := newKeyMap()

	browsing := km.hints(false, false, false)
	assert.Len(t, browsing, 8)
	assert.False(t, browsing[4].Enabled(), "reload hidden without a fetcher")

	searching := km.hints(true, false, true)
	assert.Len(t, searching, 2)
	assert.False(t, searching[0].Enabled(), "client search has no commit key")

	assert.True(t, km.hints(true, true, true)[0].Enabled())
	assert.True(t, km.Reload.Enabled(), "hints works on a copy")
}
