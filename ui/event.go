package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// UIEventType tags pointer and keyboard input
type UIEventType int

const (
	UIEventNone UIEventType = iota
	MousePressed
	MouseReleased
	KeyPressed
	TextInput
	Wheel
)

func (t UIEventType) String() string {
	switch t {
	case MousePressed:
		return "MousePressed"
	case MouseReleased:
		return "MouseReleased"
	case KeyPressed:
		return "KeyPressed"
	case TextInput:
		return "TextInput"
	case Wheel:
		return "Wheel"
	default:
		return "None"
	}
}

// UIEvent is one input event in layout coordinates
// Pos is set for mouse and wheel events, Key for KeyPressed, Rune for TextInput,
// Delta for Wheel (negative scrolls up)
type UIEvent struct {
	Type  UIEventType
	Pos   vmath.Vec2
	Key   tcell.Key
	Rune  rune
	Mod   tcell.ModMask
	Delta int
}

// IsMouse reports whether the event carries a pointer position
func (e UIEvent) IsMouse() bool {
	return e.Type == MousePressed || e.Type == MouseReleased || e.Type == Wheel
}

// Press builds a MousePressed event at x, y
func Press(x, y float64) UIEvent {
	return UIEvent{Type: MousePressed, Pos: vmath.V2(x, y)}
}

// Release builds a MouseReleased event at x, y
func Release(x, y float64) UIEvent {
	return UIEvent{Type: MouseReleased, Pos: vmath.V2(x, y)}
}

// Key builds a KeyPressed event
func Key(k tcell.Key) UIEvent {
	return UIEvent{Type: KeyPressed, Key: k}
}

// Char builds a TextInput event
func Char(r rune) UIEvent {
	return UIEvent{Type: TextInput, Rune: r}
}

// Translator converts tcell input to UIEvents
// tcell reports button state rather than transitions, so press and release
// are derived from the previous state
type Translator struct {
	held bool
}

// FromTcell converts ev; false means the event has no UI meaning (motion, resize, paste)
func (t *Translator) FromTcell(ev tcell.Event) (UIEvent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			return UIEvent{Type: TextInput, Rune: ev.Rune(), Mod: ev.Modifiers()}, true
		}
		return UIEvent{Type: KeyPressed, Key: ev.Key(), Mod: ev.Modifiers()}, true

	case *tcell.EventMouse:
		x, y := ev.Position()
		pos := vmath.V2(float64(x), float64(y))
		buttons := ev.Buttons()

		switch {
		case buttons&tcell.WheelUp != 0:
			return UIEvent{Type: Wheel, Pos: pos, Delta: -1, Mod: ev.Modifiers()}, true
		case buttons&tcell.WheelDown != 0:
			return UIEvent{Type: Wheel, Pos: pos, Delta: 1, Mod: ev.Modifiers()}, true
		case buttons&tcell.Button1 != 0:
			if t.held {
				return UIEvent{}, false
			}
			t.held = true
			return UIEvent{Type: MousePressed, Pos: pos, Mod: ev.Modifiers()}, true
		default:
			if !t.held {
				return UIEvent{}, false
			}
			t.held = false
			return UIEvent{Type: MouseReleased, Pos: pos, Mod: ev.Modifiers()}, true
		}
	}
	return UIEvent{}, false
}
