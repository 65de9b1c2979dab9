package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/pagelist/internal/list"
)

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up", "k")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down", "j")
}

func isPageUp(msg tea.KeyMsg) bool {
	return isKey(msg, "pgup", "ctrl+u")
}

func isPageDown(msg tea.KeyMsg) bool {
	return isKey(msg, "pgdown", "ctrl+d")
}

func isTop(msg tea.KeyMsg) bool {
	return isKey(msg, "home", "g")
}

func isBottom(msg tea.KeyMsg) bool {
	return isKey(msg, "end", "G")
}

// isEnter also matches the key that commits a server-side search.
func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, list.ActivationKey, "return")
}

func isSpace(msg tea.KeyMsg) bool {
	return isKey(msg, " ")
}

func isSearch(msg tea.KeyMsg) bool {
	return isKey(msg, "/")
}

func isReload(msg tea.KeyMsg) bool {
	return isKey(msg, "r", "ctrl+r")
}

func isHelp(msg tea.KeyMsg) bool {
	return isKey(msg, "?")
}

// --- Hints ---

// keyMap only feeds the status bar; matching goes through the is* helpers above.
type keyMap struct {
	Move    key.Binding
	Page    key.Binding
	Toggle  key.Binding
	Search  key.Binding
	Confirm key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding

	Commit key.Binding
	Clear  key.Binding

	Accept key.Binding
	Stay   key.Binding
	Close  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move:    key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "Move")),
		Page:    key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "Page")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "Select")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Search")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Done")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
		Commit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Search")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Clear")),
		Accept:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Quit")),
		Stay:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "Stay")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Close")),
	}
}

// hints returns the bindings relevant to the current mode.
func (k keyMap) hints(searching, serverSearch, canReload bool) []key.Binding {
	if searching {
		k.Commit.SetEnabled(serverSearch)
		return []key.Binding{k.Commit, k.Clear}
	}
	k.Reload.SetEnabled(canReload)
	return []key.Binding{k.Move, k.Page, k.Toggle, k.Search, k.Reload, k.Confirm, k.Help, k.Quit}
}
