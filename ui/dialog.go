package ui

import (
	"time"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// Handle addresses a child in a Dialog's arena
// A handle outlives its child safely: after removal it resolves to nothing
type Handle struct {
	index uint32
	gen   uint32
}

// Valid reports whether h was issued by AddWidget; it may still be stale
func (h Handle) Valid() bool {
	return h.gen != 0
}

type slot struct {
	w    Widget
	gen  uint32
	live bool
}

// Dialog is a composite widget owning an ordered set of children
//
// Invariants:
//   - Insertion order is paint order; hit testing walks it in reverse so the
//     most recently added child sees input first
//   - Every child's layer is strictly less than the dialog's
//   - A hidden dialog never updates, renders or forwards input to children,
//     whatever their own visibility
type Dialog struct {
	Base
	Title      string
	Background bool

	slots []slot
	order []uint32
	free  []uint32

	onLayout func()
}

// NewDialog creates a visible dialog with a framed background
func NewDialog(pos, size vmath.Vec2, layer int, title string) *Dialog {
	return &Dialog{
		Base:       NewBase(pos, size, layer),
		Title:      title,
		Background: true,
	}
}

// SetOnLayout sets the function that places children from the dialog geometry
// It runs on every SetPosition and SetSize
func (d *Dialog) SetOnLayout(fn func()) {
	d.onLayout = fn
}

// AddWidget takes ownership of w and returns its handle
// A child on a layer not strictly below the dialog is moved to layer-1
func (d *Dialog) AddWidget(w Widget) Handle {
	if w.Layer() >= d.layer {
		w.SetLayer(d.layer - 1)
	}

	var idx uint32
	if n := len(d.free); n > 0 {
		idx = d.free[n-1]
		d.free = d.free[:n-1]
	} else {
		idx = uint32(len(d.slots))
		d.slots = append(d.slots, slot{})
	}

	s := &d.slots[idx]
	s.gen++
	s.w = w
	s.live = true
	d.order = append(d.order, idx)
	return Handle{index: idx, gen: s.gen}
}

// RemoveWidget releases and drops the child behind h; stale handles return false
func (d *Dialog) RemoveWidget(h Handle) bool {
	s := d.slot(h)
	if s == nil {
		return false
	}
	s.w.Release()
	s.w = nil
	s.live = false
	d.free = append(d.free, h.index)
	for i, idx := range d.order {
		if idx == h.index {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// Get resolves h to its child
func (d *Dialog) Get(h Handle) (Widget, bool) {
	if s := d.slot(h); s != nil {
		return s.w, true
	}
	return nil, false
}

func (d *Dialog) slot(h Handle) *slot {
	if !h.Valid() || int(h.index) >= len(d.slots) {
		return nil
	}
	s := &d.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil
	}
	return s
}

// Len returns the number of children
func (d *Dialog) Len() int {
	return len(d.order)
}

// Children returns the children in insertion order
func (d *Dialog) Children() []Widget {
	out := make([]Widget, 0, len(d.order))
	for _, idx := range d.order {
		out = append(out, d.slots[idx].w)
	}
	return out
}

func (d *Dialog) Create() {
	for _, w := range d.Children() {
		w.Create()
	}
	d.relayout()
}

func (d *Dialog) Release() {
	for _, w := range d.Children() {
		w.Release()
	}
}

func (d *Dialog) SetPosition(pos vmath.Vec2) {
	d.Base.SetPosition(pos)
	d.relayout()
}

func (d *Dialog) SetSize(size vmath.Vec2) {
	d.Base.SetSize(size)
	d.relayout()
}

// SetLayer moves the dialog and pulls children below it where needed
func (d *Dialog) SetLayer(layer int) {
	d.Base.SetLayer(layer)
	for _, w := range d.Children() {
		if w.Layer() >= layer {
			w.SetLayer(layer - 1)
		}
	}
}

func (d *Dialog) relayout() {
	if d.onLayout != nil {
		d.onLayout()
	}
}

// Inner returns the area inside the frame
func (d *Dialog) Inner() vmath.Rect {
	if !d.Background {
		return d.Rect()
	}
	return vmath.NewRect(d.pos.Add(vmath.V2(1, 1)), d.size.Sub(vmath.V2(2, 2)).ClampMin(0))
}

// FocusChild focuses h and unfocuses every other child
func (d *Dialog) FocusChild(h Handle) {
	target, _ := d.Get(h)
	for _, w := range d.Children() {
		w.SetFocused(w == target)
	}
}

// FocusedChild returns the focused child, nil if none
func (d *Dialog) FocusedChild() Widget {
	for _, w := range d.Children() {
		if w.Focused() {
			return w
		}
	}
	return nil
}

func (d *Dialog) Update(dt time.Duration) {
	if !d.Visible() {
		return
	}
	for _, w := range d.Children() {
		if u, ok := w.(Updatable); ok && w.Visible() {
			u.Update(dt)
		}
	}
}

func (d *Dialog) Render(b *Batch) {
	if !d.Visible() {
		return
	}
	if d.Background {
		b.Fill(d.layer, d.pos, d.size, DefaultTheme.Background)
		style := DefaultTheme.Border
		if d.focused {
			style = DefaultTheme.FocusBorder
		}
		b.Frame(d.layer, d.pos, d.size, style)
		if d.Title != "" && d.size.X > 4 {
			b.Text(d.layer, vmath.V2(d.pos.X+2, d.pos.Y), vmath.V2(d.size.X-4, 1), " "+d.Title+" ", DefaultTheme.Title)
		}
	}
	for _, w := range d.Children() {
		if dr, ok := w.(Drawable); ok && w.Visible() {
			dr.Render(b)
		}
	}
}

// OnUIEvent forwards input to children, newest first, until one consumes it
// Pointer events outside the dialog are ignored. A press on a child moves
// focus to it when it is interactive
func (d *Dialog) OnUIEvent(ev UIEvent) bool {
	if !d.Visible() {
		return false
	}
	if ev.IsMouse() && !d.Contains(ev.Pos) {
		// a release outside still ends presses begun inside
		if ev.Type != MouseReleased {
			return false
		}
	}

	children := d.Children()
	for i := len(children) - 1; i >= 0; i-- {
		w := children[i]
		in, ok := w.(Interactive)
		if !ok || !w.Visible() {
			continue
		}
		if in.OnUIEvent(ev) {
			if ev.Type == MousePressed {
				for _, other := range children {
					other.SetFocused(other == w)
				}
			}
			return true
		}
	}
	return ev.IsMouse() && ev.Type != MouseReleased
}
