package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// DefaultHistory is the number of submitted lines a TextField remembers
const DefaultHistory = 50

// TextField is a single-line editor with submit callback and history recall
// Keys are accepted only while focused
type TextField struct {
	Base
	Prefix      string
	Placeholder string
	MaxLen      int

	text   []rune
	cursor int
	scroll int

	history    []string
	histLimit  int
	histCursor int
	draft      string

	onSubmit func(text string)
}

// NewTextField creates an empty field
func NewTextField(pos, size vmath.Vec2, layer int, prefix string) *TextField {
	return &TextField{
		Base:      NewBase(pos, size, layer),
		Prefix:    prefix,
		histLimit: DefaultHistory,
	}
}

// SetOnSubmit sets the callback run with the text when Enter is pressed
func (f *TextField) SetOnSubmit(fn func(text string)) {
	f.onSubmit = fn
}

// Value returns the current text
func (f *TextField) Value() string {
	return string(f.text)
}

// SetValue replaces the text and moves the cursor to the end
func (f *TextField) SetValue(s string) {
	f.text = []rune(s)
	f.cursor = len(f.text)
	f.scroll = 0
}

// Clear empties the field
func (f *TextField) Clear() {
	f.text = nil
	f.cursor = 0
	f.scroll = 0
}

// Cursor returns the rune index the cursor sits before
func (f *TextField) Cursor() int {
	return f.cursor
}

// History returns submitted lines, oldest first
func (f *TextField) History() []string {
	return f.history
}

func (f *TextField) insert(r rune) {
	if f.MaxLen > 0 && len(f.text) >= f.MaxLen {
		return
	}
	f.text = append(f.text[:f.cursor], append([]rune{r}, f.text[f.cursor:]...)...)
	f.cursor++
}

func (f *TextField) deleteBackward() {
	if f.cursor > 0 {
		f.text = append(f.text[:f.cursor-1], f.text[f.cursor:]...)
		f.cursor--
	}
}

func (f *TextField) deleteForward() {
	if f.cursor < len(f.text) {
		f.text = append(f.text[:f.cursor], f.text[f.cursor+1:]...)
	}
}

// Submit records the text in history, clears the field and runs the callback
// Empty input is ignored
func (f *TextField) Submit() {
	line := f.Value()
	f.Clear()
	f.histCursor = len(f.history)
	if line == "" {
		return
	}
	if n := len(f.history); n == 0 || f.history[n-1] != line {
		f.history = append(f.history, line)
		if over := len(f.history) - f.histLimit; over > 0 {
			f.history = f.history[over:]
		}
	}
	f.histCursor = len(f.history)
	if f.onSubmit != nil {
		f.onSubmit(line)
	}
}

// HistoryPrev recalls the previous submitted line, keeping the unsent draft
func (f *TextField) HistoryPrev() {
	if f.histCursor == 0 || len(f.history) == 0 {
		return
	}
	if f.histCursor == len(f.history) {
		f.draft = f.Value()
	}
	f.histCursor--
	f.SetValue(f.history[f.histCursor])
}

// HistoryNext moves towards newer lines, restoring the draft past the newest
func (f *TextField) HistoryNext() {
	if f.histCursor >= len(f.history) {
		return
	}
	f.histCursor++
	if f.histCursor == len(f.history) {
		f.SetValue(f.draft)
		return
	}
	f.SetValue(f.history[f.histCursor])
}

func (f *TextField) OnUIEvent(ev UIEvent) bool {
	if !f.Visible() {
		return false
	}

	switch ev.Type {
	case MousePressed:
		return f.Contains(ev.Pos)

	case TextInput:
		if !f.focused {
			return false
		}
		f.insert(ev.Rune)
		return true

	case KeyPressed:
		if !f.focused {
			return false
		}
		switch ev.Key {
		case tcell.KeyEnter:
			f.Submit()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.deleteBackward()
		case tcell.KeyDelete:
			f.deleteForward()
		case tcell.KeyLeft:
			f.cursor = max(f.cursor-1, 0)
		case tcell.KeyRight:
			f.cursor = min(f.cursor+1, len(f.text))
		case tcell.KeyHome, tcell.KeyCtrlA:
			f.cursor = 0
		case tcell.KeyEnd, tcell.KeyCtrlE:
			f.cursor = len(f.text)
		case tcell.KeyCtrlU:
			f.text = f.text[f.cursor:]
			f.cursor = 0
		case tcell.KeyUp:
			f.HistoryPrev()
		case tcell.KeyDown:
			f.HistoryNext()
		default:
			return false
		}
		return true
	}
	return false
}

// adjustScroll keeps the cursor inside a viewport of width cells
func (f *TextField) adjustScroll(width int) {
	if width <= 0 {
		f.scroll = 0
		return
	}
	if f.cursor < f.scroll {
		f.scroll = f.cursor
	}
	if f.cursor >= f.scroll+width {
		f.scroll = f.cursor - width + 1
	}
}

func (f *TextField) Render(b *Batch) {
	if !f.Visible() {
		return
	}
	b.Fill(f.layer, f.pos, f.size, DefaultTheme.Input)

	prefixLen := RuneLen(f.Prefix)
	if prefixLen > 0 {
		b.Text(f.layer, f.pos, vmath.V2(f.size.X, 1), f.Prefix, DefaultTheme.Hint)
	}
	x := f.pos.X + float64(prefixLen)
	width := int(f.size.X) - prefixLen
	if width < 1 {
		return
	}

	if len(f.text) == 0 && !f.focused && f.Placeholder != "" {
		b.Text(f.layer, vmath.V2(x, f.pos.Y), vmath.V2(float64(width), 1), f.Placeholder, DefaultTheme.Hint)
		return
	}

	f.adjustScroll(width)
	end := min(f.scroll+width, len(f.text))
	b.Text(f.layer, vmath.V2(x, f.pos.Y), vmath.V2(float64(width), 1), string(f.text[f.scroll:end]), DefaultTheme.Input)

	if f.focused {
		ch := " "
		if f.cursor < len(f.text) {
			ch = string(f.text[f.cursor])
		}
		b.Text(f.layer, vmath.V2(x+float64(f.cursor-f.scroll), f.pos.Y), vmath.V2(1, 1), ch, DefaultTheme.Cursor)
	}
}
