package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// Checkbox is a labelled toggle rendered as "[x] label"
type Checkbox struct {
	Base
	Label    string
	ticked   bool
	disabled bool
	pressed  bool

	onToggled func(ticked bool)
}

// NewCheckbox creates an unticked, enabled checkbox
func NewCheckbox(pos, size vmath.Vec2, layer int, label string) *Checkbox {
	return &Checkbox{
		Base:  NewBase(pos, size, layer),
		Label: label,
	}
}

// SetOnToggled sets the callback run after a user toggle
func (c *Checkbox) SetOnToggled(fn func(ticked bool)) {
	c.onToggled = fn
}

// SetTicked sets the state without running the callback
func (c *Checkbox) SetTicked(ticked bool) { c.ticked = ticked }

// IsTicked returns the current state
func (c *Checkbox) IsTicked() bool { return c.ticked }

func (c *Checkbox) Enable() { c.disabled = false }

func (c *Checkbox) Disable() {
	c.disabled = true
	c.pressed = false
}

func (c *Checkbox) Enabled() bool { return !c.disabled }

// Toggle flips the state and runs the callback; no-op while disabled
func (c *Checkbox) Toggle() {
	if c.disabled {
		return
	}
	c.ticked = !c.ticked
	if c.onToggled != nil {
		c.onToggled(c.ticked)
	}
}

func (c *Checkbox) OnUIEvent(ev UIEvent) bool {
	if !c.Visible() {
		return false
	}
	switch ev.Type {
	case MousePressed:
		if !c.Contains(ev.Pos) {
			return false
		}
		c.pressed = !c.disabled
		return true
	case MouseReleased:
		if !c.pressed {
			return false
		}
		c.pressed = false
		if c.Contains(ev.Pos) {
			c.Toggle()
			return true
		}
	case TextInput:
		if c.focused && ev.Rune == ' ' {
			c.Toggle()
			return true
		}
	case KeyPressed:
		if c.focused && ev.Key == tcell.KeyEnter {
			c.Toggle()
			return true
		}
	}
	return false
}

func (c *Checkbox) Render(b *Batch) {
	if !c.Visible() {
		return
	}
	mark := "[ ] "
	if c.ticked {
		mark = "[x] "
	}
	style := DefaultTheme.Text
	switch {
	case c.disabled:
		style = DefaultTheme.ButtonOff
	case c.focused:
		style = DefaultTheme.Selected
	}
	b.Text(c.layer, c.pos, c.size, mark+c.Label, style)
}
