package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// ListRow is one selectable entry; Key is matched by the text filter
type ListRow struct {
	Key    string
	Widget Drawable
}

// List stacks row widgets vertically with scrolling, selection and a
// case-insensitive substring filter
// Row positions are recomputed from the list geometry on every layout change
type List struct {
	Base
	RowHeight float64

	rows     []ListRow
	filter   string
	shown    []int // indices into rows passing the filter
	scroll   int
	selected int // index into shown, -1 if none

	onSelect func(row int)
}

// NewList creates an empty list with one-cell rows
func NewList(pos, size vmath.Vec2, layer int) *List {
	return &List{
		Base:      NewBase(pos, size, layer),
		RowHeight: 1,
		selected:  -1,
	}
}

// SetOnSelect sets the callback run with the row index (into Rows) when a row is chosen
func (l *List) SetOnSelect(fn func(row int)) {
	l.onSelect = fn
}

// AddRow appends a row; the row widget is moved to the list's child layer
func (l *List) AddRow(key string, w Drawable) {
	w.SetLayer(l.layer - 1)
	w.Create()
	l.rows = append(l.rows, ListRow{Key: key, Widget: w})
	l.refilter()
}

// Clear releases and removes every row
func (l *List) Clear() {
	for _, r := range l.rows {
		r.Widget.Release()
	}
	l.rows = l.rows[:0]
	l.refilter()
}

// Rows returns every row, filtered or not
func (l *List) Rows() []ListRow {
	return l.rows
}

// Shown returns the indices of rows passing the filter, in order
func (l *List) Shown() []int {
	return l.shown
}

// SetFilter shows only rows whose key contains text, ignoring case
func (l *List) SetFilter(text string) {
	l.filter = strings.ToLower(text)
	l.refilter()
}

// Filter returns the active filter
func (l *List) Filter() string {
	return l.filter
}

// Reset restores the unfiltered, unscrolled, unselected view
func (l *List) Reset() {
	l.filter = ""
	l.scroll = 0
	l.selected = -1
	l.refilter()
}

// Selected returns the selected row index into Rows, -1 if none
func (l *List) Selected() int {
	if l.selected < 0 || l.selected >= len(l.shown) {
		return -1
	}
	return l.shown[l.selected]
}

// Select selects the shown row at position i and runs the callback
func (l *List) Select(i int) {
	if i < 0 || i >= len(l.shown) {
		return
	}
	l.selected = i
	l.ensureVisible()
	if l.onSelect != nil {
		l.onSelect(l.shown[i])
	}
}

func (l *List) refilter() {
	l.shown = l.shown[:0]
	for i, r := range l.rows {
		if l.filter == "" || strings.Contains(strings.ToLower(r.Key), l.filter) {
			l.shown = append(l.shown, i)
		}
	}
	if l.selected >= len(l.shown) {
		l.selected = len(l.shown) - 1
	}
	l.clampScroll()
	l.layout()
}

func (l *List) visibleRows() int {
	if l.RowHeight <= 0 {
		return 0
	}
	return int(l.size.Y / l.RowHeight)
}

func (l *List) clampScroll() {
	maxScroll := max(len(l.shown)-l.visibleRows(), 0)
	l.scroll = min(max(l.scroll, 0), maxScroll)
}

func (l *List) ensureVisible() {
	vis := l.visibleRows()
	if l.selected < l.scroll {
		l.scroll = l.selected
	} else if vis > 0 && l.selected >= l.scroll+vis {
		l.scroll = l.selected - vis + 1
	}
	l.clampScroll()
	l.layout()
}

// layout places the rows in view; rows outside the window keep stale
// positions but are never rendered or hit
func (l *List) layout() {
	rowSize := vmath.V2(l.size.X, l.RowHeight)
	for slot, idx := range l.window() {
		w := l.rows[idx].Widget
		w.SetPosition(vmath.V2(l.pos.X, l.pos.Y+float64(slot)*l.RowHeight))
		w.SetSize(rowSize)
	}
}

func (l *List) window() []int {
	end := min(l.scroll+l.visibleRows(), len(l.shown))
	if l.scroll >= end {
		return nil
	}
	return l.shown[l.scroll:end]
}

func (l *List) SetPosition(pos vmath.Vec2) {
	l.Base.SetPosition(pos)
	l.layout()
}

func (l *List) SetSize(size vmath.Vec2) {
	l.Base.SetSize(size)
	l.clampScroll()
	l.layout()
}

func (l *List) SetLayer(layer int) {
	l.Base.SetLayer(layer)
	for _, r := range l.rows {
		r.Widget.SetLayer(layer - 1)
	}
}

func (l *List) Release() {
	l.Clear()
}

func (l *List) OnUIEvent(ev UIEvent) bool {
	if !l.Visible() {
		return false
	}
	switch ev.Type {
	case Wheel:
		if !l.Contains(ev.Pos) {
			return false
		}
		l.scroll += ev.Delta
		l.clampScroll()
		l.layout()
		return true

	case MousePressed:
		if !l.Contains(ev.Pos) {
			return false
		}
		for slot, idx := range l.window() {
			w := l.rows[idx].Widget
			if w.Contains(ev.Pos) {
				if in, ok := w.(Interactive); ok && in.OnUIEvent(ev) {
					return true
				}
				l.Select(l.scroll + slot)
				return true
			}
		}
		return true

	case MouseReleased:
		for _, idx := range l.window() {
			if in, ok := l.rows[idx].Widget.(Interactive); ok && in.OnUIEvent(ev) {
				return true
			}
		}
		return false

	case KeyPressed:
		if !l.focused || len(l.shown) == 0 {
			return false
		}
		switch ev.Key {
		case tcell.KeyUp:
			l.Select(max(l.selected-1, 0))
		case tcell.KeyDown:
			l.Select(min(l.selected+1, len(l.shown)-1))
		case tcell.KeyHome:
			l.Select(0)
		case tcell.KeyEnd:
			l.Select(len(l.shown) - 1)
		default:
			return false
		}
		return true
	}
	return false
}

func (l *List) Render(b *Batch) {
	if !l.Visible() {
		return
	}
	for slot, idx := range l.window() {
		w := l.rows[idx].Widget
		if l.scroll+slot == l.selected {
			b.Fill(l.layer, w.Position(), w.Size(), DefaultTheme.Selected)
		}
		if w.Visible() {
			w.Render(b)
		}
	}
}
