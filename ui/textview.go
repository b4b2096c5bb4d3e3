package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// DefaultScrollback is the line capacity of a TextView
const DefaultScrollback = 500

// Line is one styled TextView row
type Line struct {
	Text  string
	Style tcell.Style
}

// TextView shows the tail of a bounded scrollback buffer
// Offset counts lines scrolled up from the newest line; new lines keep the view
// pinned to the bottom unless the reader has scrolled away
type TextView struct {
	Base
	lines    []Line
	capacity int
	offset   int
}

// NewTextView creates a view keeping at most capacity lines; capacity <= 0 uses DefaultScrollback
func NewTextView(pos, size vmath.Vec2, layer, capacity int) *TextView {
	if capacity <= 0 {
		capacity = DefaultScrollback
	}
	return &TextView{
		Base:     NewBase(pos, size, layer),
		capacity: capacity,
	}
}

// AddLine appends text in the default style; embedded newlines split into rows
func (v *TextView) AddLine(text string) {
	v.AddStyled(text, DefaultTheme.Text)
}

// AddStyled appends text in style
func (v *TextView) AddStyled(text string, style tcell.Style) {
	for _, row := range strings.Split(text, "\n") {
		v.lines = append(v.lines, Line{Text: row, Style: style})
		if v.offset > 0 {
			v.offset++
		}
	}
	if over := len(v.lines) - v.capacity; over > 0 {
		copy(v.lines, v.lines[over:])
		v.lines = v.lines[:v.capacity]
	}
	v.clamp()
}

// Lines returns the buffered rows, oldest first
func (v *TextView) Lines() []Line {
	return v.lines
}

// Len returns the number of buffered rows
func (v *TextView) Len() int {
	return len(v.lines)
}

// Clear drops every line and returns to the bottom
func (v *TextView) Clear() {
	v.lines = v.lines[:0]
	v.offset = 0
}

// Offset returns how many lines the view is scrolled up
func (v *TextView) Offset() int {
	return v.offset
}

// ScrollBy moves the view; positive scrolls towards older lines
func (v *TextView) ScrollBy(delta int) {
	v.offset += delta
	v.clamp()
}

// ScrollToBottom pins the view to the newest line
func (v *TextView) ScrollToBottom() {
	v.offset = 0
}

func (v *TextView) rows() int {
	return max(int(v.size.Y), 0)
}

func (v *TextView) clamp() {
	maxOffset := max(len(v.lines)-v.rows(), 0)
	v.offset = min(max(v.offset, 0), maxOffset)
}

func (v *TextView) SetSize(size vmath.Vec2) {
	v.Base.SetSize(size)
	v.clamp()
}

func (v *TextView) OnUIEvent(ev UIEvent) bool {
	if !v.Visible() {
		return false
	}
	switch ev.Type {
	case Wheel:
		if !v.Contains(ev.Pos) {
			return false
		}
		v.ScrollBy(-ev.Delta)
		return true
	case KeyPressed:
		if !v.focused {
			return false
		}
		switch ev.Key {
		case tcell.KeyPgUp:
			v.ScrollBy(max(v.rows()/2, 1))
			return true
		case tcell.KeyPgDn:
			v.ScrollBy(-max(v.rows()/2, 1))
			return true
		}
	}
	return false
}

// window returns the rows on screen, oldest first
func (v *TextView) window() []Line {
	end := len(v.lines) - v.offset
	start := max(end-v.rows(), 0)
	return v.lines[start:end]
}

func (v *TextView) Render(b *Batch) {
	if !v.Visible() {
		return
	}
	row := vmath.V2(v.size.X, 1)
	for i, l := range v.window() {
		b.Text(v.layer, vmath.V2(v.pos.X, v.pos.Y+float64(i)), row, l.Text, l.Style)
	}
}
