// Package ui is a small retained widget set rendered through a draw-call Batch
// onto a tcell screen. One layout unit is one terminal cell.
//
// Layers follow depth order: a smaller layer is nearer the viewer. Children
// always sit on a smaller layer than their parent dialog so they paint over
// its background.
package ui

import (
	"time"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// DefaultLayer is the layer top-level dialogs start on
const DefaultLayer = 100

// Widget is the state every element shares: layout, layer, visibility, focus and lifecycle
type Widget interface {
	Create()
	Release()

	Position() vmath.Vec2
	Size() vmath.Vec2
	SetPosition(pos vmath.Vec2)
	SetSize(size vmath.Vec2)
	Layer() int
	SetLayer(layer int)

	Visible() bool
	Show()
	Hide()
	Focused() bool
	SetFocused(focused bool)

	Contains(p vmath.Vec2) bool
}

// Drawable widgets enqueue draw calls
// Render is a no-op while the widget is hidden
type Drawable interface {
	Widget
	Render(b *Batch)
}

// Updatable widgets advance local presentation state once per frame
type Updatable interface {
	Widget
	Update(dt time.Duration)
}

// Interactive widgets consume pointer and key input
// OnUIEvent returns true when the event was consumed
type Interactive interface {
	Widget
	OnUIEvent(ev UIEvent) bool
}

// Base carries the shared Widget state; embed it and override what differs
// The zero value is visible, unfocused, on layer 0
type Base struct {
	pos     vmath.Vec2
	size    vmath.Vec2
	layer   int
	hidden  bool
	focused bool
}

// NewBase returns a Base with the given geometry and layer
func NewBase(pos, size vmath.Vec2, layer int) Base {
	return Base{pos: pos, size: size, layer: layer}
}

func (b *Base) Create()  {}
func (b *Base) Release() {}

func (b *Base) Position() vmath.Vec2       { return b.pos }
func (b *Base) Size() vmath.Vec2           { return b.size }
func (b *Base) SetPosition(pos vmath.Vec2) { b.pos = pos }
func (b *Base) SetSize(size vmath.Vec2)    { b.size = size }
func (b *Base) Layer() int                 { return b.layer }
func (b *Base) SetLayer(layer int)         { b.layer = layer }

func (b *Base) Visible() bool { return !b.hidden }
func (b *Base) Show()         { b.hidden = false }
func (b *Base) Hide()         { b.hidden = true }

func (b *Base) Focused() bool           { return b.focused }
func (b *Base) SetFocused(focused bool) { b.focused = focused }

// Rect returns the widget bounds
func (b *Base) Rect() vmath.Rect {
	return vmath.NewRect(b.pos, b.size)
}

// Contains reports whether p lies within the widget bounds
func (b *Base) Contains(p vmath.Vec2) bool {
	return b.Rect().Contains(p)
}
