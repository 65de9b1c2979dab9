package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/pagelist/internal/list"
	"github.com/gravitrone/pagelist/internal/ui/components"
)

// Rows taken by the title, search line, table header, detail and status bar.
const listChrome = 14

const defaultVisibleRows = 12

// --- Messages ---

type pageLoadedMsg struct {
	req   list.LoadRequest
	items []list.Item
	err   error
}

// ListModel renders a list.Controller and feeds it keyboard input.
type ListModel struct {
	ctrl     *list.Controller
	ctx      context.Context
	list     *components.List
	observer *list.Observer
	rows     []list.Item
	input    textinput.Model
	initSpin spinner.Model
	moreSpin spinner.Model
	keys     keyMap

	searching bool
	title     string
	err       string
	width     int
	height    int
}

// NewListModel builds the list view. ctx bounds every load it issues.
func NewListModel(ctx context.Context, ctrl *list.Controller, title string) ListModel {
	if ctx == nil {
		ctx = context.Background()
	}
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = ctrl.Placeholder()
	input.CharLimit = 256

	m := ListModel{
		ctrl:     ctrl,
		ctx:      ctx,
		list:     components.NewList(defaultVisibleRows),
		input:    input,
		initSpin: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(AccentStyle)),
		moreSpin: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(MutedStyle)),
		keys:     newKeyMap(),
		title:    title,
	}
	m.observer = ctrl.Observe(m.list, nil)
	m.refresh(true)
	return m
}

func (m ListModel) Init() tea.Cmd {
	return m.load()
}

func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		rows := msg.Height - listChrome
		if rows < 3 {
			rows = 3
		}
		m.list.SetPageSize(rows)
		m.input.Width = components.BoxContentWidth(msg.Width) - 4
		return m, nil

	case pageLoadedMsg:
		applied, err := m.ctrl.Apply(msg.req, msg.items, msg.err)
		if err != nil {
			m.err = err.Error()
			m.refresh(true)
			return m, nil
		}
		if !applied {
			return m, nil
		}
		m.err = ""
		// keep a client filter applied to the new rows
		if v := m.input.Value(); v != "" && !m.ctrl.Strategy().ServerSide() {
			m.ctrl.Search("", v)
		}
		m.refresh(msg.req.Page <= 1)
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		switch msg.ID {
		case m.initSpin.ID():
			m.initSpin, cmd = m.initSpin.Update(msg)
		case m.moreSpin.ID():
			m.moreSpin, cmd = m.moreSpin.Update(msg)
		}
		return m, cmd

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m ListModel) updateBrowse(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	page := m.ctrl.Page()
	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isPageDown(msg):
		m.list.PageDown()
	case isPageUp(msg):
		m.list.PageUp()
	case isBottom(msg):
		m.list.Bottom()
	case isTop(msg):
		m.list.Top()
	case isSpace(msg):
		if k, ok := m.list.Current(); ok {
			m.ctrl.ToggleSelection(k)
			m.refresh(false)
		}
		return m, nil
	case isSearch(msg):
		m.searching = true
		cmd := m.input.Focus()
		return m, cmd
	case isReload(msg):
		if m.ctrl.Reset() {
			m.err = ""
			return m, m.load()
		}
		return m, nil
	default:
		return m, nil
	}

	// a cursor move may have crossed the pagination threshold
	if m.ctrl.Page() != page {
		return m, m.load()
	}
	return m, nil
}

func (m ListModel) updateSearch(msg tea.KeyMsg) (ListModel, tea.Cmd) {
	switch {
	case isEnter(msg):
		m.searching = false
		m.input.Blur()
		cmd := m.search(list.ActivationKey)
		return m, cmd
	case isBack(msg):
		if m.input.Value() != "" {
			m.input.SetValue("")
			cmd := m.search("")
			return m, cmd
		}
		m.searching = false
		m.input.Blur()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	searchCmd := m.search("")
	return m, tea.Batch(cmd, searchCmd)
}

// search forwards the current input to the controller and reloads when it asks to.
func (m *ListModel) search(activation string) tea.Cmd {
	if !m.ctrl.Search(activation, m.input.Value()) {
		if !m.ctrl.Strategy().ServerSide() {
			m.refresh(true)
		}
		return nil
	}
	m.err = ""
	return m.load()
}

// load issues a load for the controller's current page.
func (m *ListModel) load() tea.Cmd {
	req, ok := m.ctrl.BeginLoad(m.ctx)
	if !ok {
		return nil
	}
	fetch := func() tea.Msg {
		items, err := req.Fetch()
		return pageLoadedMsg{req: req, items: items, err: err}
	}
	spin := m.moreSpin.Tick
	if req.Page <= 1 {
		spin = m.initSpin.Tick
	}
	return tea.Batch(fetch, spin)
}

// refresh copies the displayed collection into the view. reset moves the cursor to the top.
func (m *ListModel) refresh(reset bool) {
	m.rows = m.ctrl.Displayed()
	keys := make([]string, len(m.rows))
	for i, it := range m.rows {
		keys[i] = it.Key
	}
	if reset {
		m.list.SetItems(keys)
		return
	}
	m.list.Replace(keys)
}

// Close releases the scroll subscription and stops the controller.
func (m ListModel) Close() error {
	m.observer.Release()
	return m.ctrl.Close()
}

// Current returns the key under the cursor.
func (m ListModel) Current() (string, bool) {
	return m.list.Current()
}

// SelectedKeys returns the keys of the selected items.
func (m ListModel) SelectedKeys() []string {
	return m.ctrl.SelectedKeys()
}

// Searching reports whether the search input has focus.
func (m ListModel) Searching() bool {
	return m.searching
}

func (m ListModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	initial := m.ctrl.Loading() && m.ctrl.Page() <= 1
	switch {
	case initial:
		b.WriteString(m.initSpin.View() + " " + MutedStyle.Render("Loading items..."))
	case m.err != "":
		b.WriteString(ErrorStyle.Render("Load failed: " + components.SanitizeOneLine(m.err)))
		if m.ctrl.NeedsLoad() {
			b.WriteString("\n")
			b.WriteString(MutedStyle.Render("Press r to retry."))
		}
	case len(m.rows) == 0:
		if m.input.Value() != "" {
			b.WriteString(MutedStyle.Render("No matches."))
		} else {
			b.WriteString(MutedStyle.Render("No items."))
		}
	default:
		b.WriteString(m.renderRows())
		if detail := m.renderDetail(); detail != "" {
			b.WriteString("\n\n")
			b.WriteString(detail)
		}
	}

	if m.ctrl.Loading() && !initial {
		b.WriteString("\n")
		b.WriteString(m.moreSpin.View() + " " + MutedStyle.Render("Loading more..."))
	}

	b.WriteString("\n\n")
	b.WriteString(MutedStyle.Render(m.summary()))

	title := m.title
	if title == "" {
		title = "Items"
	}
	if m.searching {
		return components.ActiveTitledBox(title, b.String(), m.width)
	}
	return components.TitledBox(title, b.String(), m.width)
}

func (m ListModel) summary() string {
	parts := []string{fmt.Sprintf("%d shown", len(m.rows))}
	if n := len(m.ctrl.SelectedKeys()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if !m.ctrl.Static() {
		parts = append(parts, fmt.Sprintf("page %d", m.ctrl.Page()))
		if m.ctrl.LastPage() {
			parts = append(parts, "end")
		}
	}
	if q := m.ctrl.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("query %q", q))
	}
	if spec := m.ctrl.SortSpec(); spec.On != "" && spec.Direction != list.DirectionNone {
		parts = append(parts, fmt.Sprintf("sort %s %s", spec.On, spec.Direction))
	}
	return strings.Join(parts, " · ")
}

// Hints returns the key bindings offered in the current mode.
func (m ListModel) Hints() []key.Binding {
	return m.keys.hints(m.searching, m.ctrl.Strategy().ServerSide(), m.ctrl.NeedsLoad())
}
