package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/pagelist/internal/list"
	"github.com/gravitrone/pagelist/internal/ui/components"
)

// --- App Model ---

// App is the root TUI model. It owns the list view and decides when the program ends.
type App struct {
	list   ListModel
	keys   keyMap
	title  string
	width  int
	height int

	helpOpen    bool
	quitConfirm bool
	confirmed   bool
	chosen      []string
}

// NewApp builds the root model around ctrl. The app takes ownership of the controller.
func NewApp(ctx context.Context, ctrl *list.Controller, title string) App {
	return App{
		list:  NewListModel(ctx, ctrl, title),
		keys:  newKeyMap(),
		title: title,
	}
}

func (a App) Init() tea.Cmd {
	return a.list.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - bannerHeight})
		return a, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.quitConfirm {
			switch {
			case key.Matches(msg, a.keys.Accept):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Stay), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isHelp(msg) {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.list.Searching() {
			break
		}

		// Global keys
		switch {
		case isHelp(msg):
			a.helpOpen = true
			return a, nil
		case isQuit(msg):
			if len(a.list.SelectedKeys()) > 0 {
				a.quitConfirm = true
				return a, nil
			}
			return a, tea.Quit
		case isEnter(msg):
			a.confirmed = true
			a.chosen = a.list.SelectedKeys()
			if len(a.chosen) == 0 {
				if k, ok := a.list.Current(); ok {
					a.chosen = []string{k}
				}
			}
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)

	var content string
	switch {
	case a.quitConfirm:
		content = a.renderQuitConfirm()
	case a.helpOpen:
		content = a.renderHelp()
	default:
		content = a.list.View()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)
	return fmt.Sprintf("%s\n%s\n\n%s", banner, content, hints)
}

func (a App) statusHints() []key.Binding {
	if a.quitConfirm {
		return []key.Binding{a.keys.Accept, a.keys.Stay}
	}
	if a.helpOpen {
		return []key.Binding{a.keys.Close}
	}
	return a.list.Hints()
}

func (a App) renderHelp() string {
	hints := components.HelpLines(a.list.Hints())
	lines := make([]string, 0, len(hints)+2)
	lines = append(lines, components.CenterLine(MutedStyle.Render("esc to close"), a.width))
	lines = append(lines, "")
	for _, hint := range hints {
		lines = append(lines, "  "+hint)
	}
	body := strings.Join(lines, "\n")
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	n := len(a.list.SelectedKeys())
	body := fmt.Sprintf("%d selected item(s) will be discarded. Quit anyway? [y/n]", n)
	return components.Indent(components.ErrorBox("Quit", body, a.width), 1)
}

// Confirmed reports whether the user ended the program by confirming a choice.
func (a App) Confirmed() bool {
	return a.confirmed
}

// Chosen returns the keys confirmed by the user. Without an explicit selection it holds
// the key that was under the cursor.
func (a App) Chosen() []string {
	return a.chosen
}

// Close stops the list and its controller.
func (a App) Close() error {
	return a.list.Close()
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
