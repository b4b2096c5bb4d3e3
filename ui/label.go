package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// Align controls horizontal text placement
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Panel is a filled rectangle with an optional frame and title
type Panel struct {
	Base
	Style       tcell.Style
	BorderStyle tcell.Style
	Border      bool
	Title       string
}

// NewPanel creates a framed panel
func NewPanel(pos, size vmath.Vec2, layer int) *Panel {
	return &Panel{
		Base:        NewBase(pos, size, layer),
		Style:       DefaultTheme.Background,
		BorderStyle: DefaultTheme.Border,
		Border:      true,
	}
}

func (p *Panel) Render(b *Batch) {
	if !p.Visible() {
		return
	}
	b.Fill(p.layer, p.pos, p.size, p.Style)
	if p.Border {
		style := p.BorderStyle
		if p.focused {
			style = DefaultTheme.FocusBorder
		}
		b.Frame(p.layer, p.pos, p.size, style)
	}
	if p.Title != "" && p.size.X > 4 {
		title := " " + p.Title + " "
		b.Text(p.layer, vmath.V2(p.pos.X+2, p.pos.Y), vmath.V2(p.size.X-4, 1), title, DefaultTheme.Title)
	}
}

// Label is a single block of text
type Label struct {
	Base
	Text  string
	Style tcell.Style
	Align Align
}

// NewLabel creates a left-aligned label
func NewLabel(pos, size vmath.Vec2, layer int, text string) *Label {
	return &Label{
		Base:  NewBase(pos, size, layer),
		Text:  text,
		Style: DefaultTheme.Text,
	}
}

// SetText replaces the label text
func (l *Label) SetText(text string) {
	l.Text = text
}

func (l *Label) Render(b *Batch) {
	if !l.Visible() || l.Text == "" {
		return
	}
	b.Text(l.layer, alignPos(l.pos, l.size, l.Text, l.Align), l.size, l.Text, l.Style)
}

// alignPos offsets pos so a single line of text sits per align within width
func alignPos(pos, size vmath.Vec2, text string, align Align) vmath.Vec2 {
	if align == AlignLeft {
		return pos
	}
	slack := size.X - float64(RuneLen(text))
	if slack <= 0 {
		return pos
	}
	if align == AlignCenter {
		slack = float64(int(slack) / 2)
	}
	return vmath.V2(pos.X+slack, pos.Y)
}

// RuneLen returns the cell count of s assuming single-width runes
func RuneLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Truncate shortens s to at most n runes
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
