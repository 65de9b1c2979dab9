package components

import "github.com/gravitrone/pagelist/internal/list"

// List is a scrollable window over row keys with a cursor. It reports its scroll
// position to at most one subscriber.
type List struct {
	Items    []string
	Cursor   int
	Offset   int
	PageSize int

	listener   func(list.ScrollEvent)
	listenerID int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	return &List{PageSize: pageSize}
}

// SetItems replaces items and resets cursor.
func (l *List) SetItems(items []string) {
	l.Items = items
	l.Cursor = 0
	l.Offset = 0
}

// Replace swaps items while keeping the cursor on the same key when it is still
// present, otherwise on the same row clamped to the new length.
func (l *List) Replace(items []string) {
	var current string
	if l.Cursor >= 0 && l.Cursor < len(l.Items) {
		current = l.Items[l.Cursor]
	}
	l.Items = items
	for i, it := range items {
		if it == current {
			l.Cursor = i
			l.clamp()
			return
		}
	}
	l.clamp()
}

// SetPageSize changes the window height and keeps the cursor visible.
func (l *List) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	l.PageSize = n
	l.clamp()
}

func (l *List) clamp() {
	if l.Cursor > len(l.Items)-1 {
		l.Cursor = len(l.Items) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.PageSize > 0 && l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
	if last := len(l.Items) - l.PageSize; l.Offset > last {
		l.Offset = last
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}

// Down moves the cursor down. It reports the position even at the last row, so a
// subscriber can ask for more.
func (l *List) Down() {
	if l.Cursor < len(l.Items)-1 {
		l.Cursor++
		if l.Cursor >= l.Offset+l.PageSize {
			l.Offset++
		}
	}
	l.notify()
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		if l.Cursor < l.Offset {
			l.Offset--
		}
	}
	l.notify()
}

// PageDown moves the cursor one window down.
func (l *List) PageDown() {
	l.Cursor += l.PageSize
	l.Offset += l.PageSize
	l.clamp()
	l.notify()
}

// PageUp moves the cursor one window up.
func (l *List) PageUp() {
	l.Cursor -= l.PageSize
	l.Offset -= l.PageSize
	l.clamp()
	l.notify()
}

// Bottom jumps to the last row.
func (l *List) Bottom() {
	l.Cursor = len(l.Items) - 1
	l.clamp()
	l.notify()
}

// Top jumps to the first row.
func (l *List) Top() {
	l.Cursor = 0
	l.Offset = 0
	l.notify()
}

// Visible returns the currently visible items.
func (l *List) Visible() []string {
	if len(l.Items) == 0 {
		return nil
	}
	end := l.Offset + l.PageSize
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.Offset:end]
}

// Current returns the item under the cursor.
func (l *List) Current() (string, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return "", false
	}
	return l.Items[l.Cursor], true
}

// IsSelected returns true if the given absolute index is the cursor.
func (l *List) IsSelected(absIdx int) bool {
	return absIdx == l.Cursor
}

// RelToAbs converts a relative (visible) index to absolute.
func (l *List) RelToAbs(relIdx int) int {
	return l.Offset + relIdx
}

// Subscribe implements list.ScrollSurface. A new subscriber replaces the old one.
func (l *List) Subscribe(fn func(list.ScrollEvent)) func() {
	l.listenerID++
	id := l.listenerID
	l.listener = fn
	return func() {
		if l.listenerID == id {
			l.listener = nil
		}
	}
}

func (l *List) notify() {
	if l.listener == nil {
		return
	}
	l.listener(list.ScrollEvent{
		Top:      l.Offset,
		Height:   len(l.Items),
		Viewport: l.PageSize,
	})
}
