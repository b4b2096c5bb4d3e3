package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// Button fires its pressed callback once per completed click
// A click is a press inside the bounds followed by a release inside the bounds;
// Enter fires a focused button. Disabled buttons never fire
type Button struct {
	Base
	Text     string
	Align    Align
	disabled bool
	pressed  bool

	onPressed func()
}

// NewButton creates an enabled button
func NewButton(pos, size vmath.Vec2, layer int, text string) *Button {
	return &Button{
		Base:  NewBase(pos, size, layer),
		Text:  text,
		Align: AlignCenter,
	}
}

// SetOnPressed sets the click callback; nil removes it
func (b *Button) SetOnPressed(fn func()) {
	b.onPressed = fn
}

// Enable allows the button to fire
func (b *Button) Enable() { b.disabled = false }

// Disable prevents firing and drops a press in progress
func (b *Button) Disable() {
	b.disabled = true
	b.pressed = false
}

// Enabled reports whether the button can fire
func (b *Button) Enabled() bool { return !b.disabled }

// Pressed reports whether a press is held on the button
func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) Hide() {
	b.Base.Hide()
	b.pressed = false
}

func (b *Button) OnUIEvent(ev UIEvent) bool {
	if !b.Visible() {
		return false
	}

	switch ev.Type {
	case MousePressed:
		if !b.Contains(ev.Pos) {
			return false
		}
		if !b.disabled {
			b.pressed = true
		}
		return true

	case MouseReleased:
		if !b.pressed {
			return false
		}
		b.pressed = false
		if b.Contains(ev.Pos) && !b.disabled {
			b.fire()
			return true
		}
		return false

	case KeyPressed:
		if b.focused && ev.Key == tcell.KeyEnter && !b.disabled {
			b.fire()
			return true
		}
	}
	return false
}

func (b *Button) fire() {
	if b.onPressed != nil {
		b.onPressed()
	}
}

func (b *Button) Render(bt *Batch) {
	if !b.Visible() {
		return
	}
	style := DefaultTheme.Button
	switch {
	case b.disabled:
		style = DefaultTheme.ButtonOff
	case b.pressed:
		style = DefaultTheme.ButtonPressed
	case b.focused:
		style = DefaultTheme.ButtonFocus
	}
	bt.Fill(b.layer, b.pos, b.size, style)
	text := Truncate(b.Text, int(b.size.X))
	bt.Text(b.layer, alignPos(b.pos, b.size, text, b.Align), vmath.V2(b.size.X, 1), text, style)
}
