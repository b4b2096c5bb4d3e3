package ui

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

// DrawCall is one queued paint operation
// Fill paints Size with blanks in Style; otherwise Text is written line by line,
// clipped to Size when Size is non-zero
type DrawCall struct {
	Layer int
	Pos   vmath.Vec2
	Size  vmath.Vec2
	Text  string
	Style tcell.Style
	Fill  bool
}

// Batch collects draw calls for one frame in submission order
type Batch struct {
	calls []DrawCall
}

// NewBatch creates an empty batch
func NewBatch() *Batch {
	return &Batch{calls: make([]DrawCall, 0, 256)}
}

// Add queues a draw call
func (b *Batch) Add(dc DrawCall) {
	b.calls = append(b.calls, dc)
}

// Fill queues a solid rectangle
func (b *Batch) Fill(layer int, pos, size vmath.Vec2, style tcell.Style) {
	b.Add(DrawCall{Layer: layer, Pos: pos, Size: size, Style: style, Fill: true})
}

// Text queues text clipped to size; a zero size disables clipping
func (b *Batch) Text(layer int, pos, size vmath.Vec2, text string, style tcell.Style) {
	b.Add(DrawCall{Layer: layer, Pos: pos, Size: size, Text: text, Style: style})
}

// Frame queues a single-line box outline around pos/size
func (b *Batch) Frame(layer int, pos, size vmath.Vec2, style tcell.Style) {
	w, h := int(size.X), int(size.Y)
	if w < 2 || h < 2 {
		return
	}
	horiz := strings.Repeat(string(tcell.RuneHLine), w-2)
	b.Text(layer, pos, vmath.V2(size.X, 1),
		string(tcell.RuneULCorner)+horiz+string(tcell.RuneURCorner), style)
	b.Text(layer, vmath.V2(pos.X, pos.Y+size.Y-1), vmath.V2(size.X, 1),
		string(tcell.RuneLLCorner)+horiz+string(tcell.RuneLRCorner), style)
	if h > 2 {
		side := strings.TrimSuffix(strings.Repeat(string(tcell.RuneVLine)+"\n", h-2), "\n")
		b.Text(layer, vmath.V2(pos.X, pos.Y+1), vmath.V2(1, size.Y-2), side, style)
		b.Text(layer, vmath.V2(pos.X+size.X-1, pos.Y+1), vmath.V2(1, size.Y-2), side, style)
	}
}

// Calls returns the queued draw calls in submission order
func (b *Batch) Calls() []DrawCall {
	return b.calls
}

// Len returns the number of queued calls
func (b *Batch) Len() int {
	return len(b.calls)
}

// Reset drops all queued calls, keeping capacity
func (b *Batch) Reset() {
	b.calls = b.calls[:0]
}

// Sorted returns the calls in paint order: farthest layer first, submission order kept within a layer
func (b *Batch) Sorted() []DrawCall {
	out := make([]DrawCall, len(b.calls))
	copy(out, b.calls)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Layer > out[j].Layer
	})
	return out
}

// Flush paints every call onto s back to front and resets the batch
// The caller owns Clear and Show
func (b *Batch) Flush(s tcell.Screen) {
	sw, sh := s.Size()
	for _, dc := range b.Sorted() {
		paint(s, sw, sh, dc)
	}
	b.Reset()
}

func paint(s tcell.Screen, sw, sh int, dc DrawCall) {
	x0, y0 := dc.Pos.Cell()
	w, h := int(dc.Size.X), int(dc.Size.Y)

	if dc.Fill {
		for y := max(y0, 0); y < min(y0+h, sh); y++ {
			for x := max(x0, 0); x < min(x0+w, sw); x++ {
				s.SetContent(x, y, ' ', nil, dc.Style)
			}
		}
		return
	}

	for row, line := range strings.Split(dc.Text, "\n") {
		if h > 0 && row >= h {
			break
		}
		y := y0 + row
		if y < 0 || y >= sh {
			continue
		}
		col := 0
		for _, r := range line {
			if w > 0 && col >= w {
				break
			}
			x := x0 + col
			if x >= 0 && x < sw {
				s.SetContent(x, y, r, nil, dc.Style)
			}
			col++
		}
	}
}
