package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func cellAt(s tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.GetContent(x, y)
	return r, style
}

func rowText(s tcell.Screen, y, from, to int) string {
	out := make([]rune, 0, to-from)
	for x := from; x < to; x++ {
		r, _ := cellAt(s, x, y)
		out = append(out, r)
	}
	return string(out)
}

func TestBatchSortedFarthestFirstStable(t *testing.T) {
	b := NewBatch()
	b.Text(5, vmath.V2(0, 0), vmath.Vec2{}, "a", tcell.StyleDefault)
	b.Text(10, vmath.V2(0, 0), vmath.Vec2{}, "b", tcell.StyleDefault)
	b.Text(5, vmath.V2(0, 0), vmath.Vec2{}, "c", tcell.StyleDefault)
	b.Text(10, vmath.V2(0, 0), vmath.Vec2{}, "d", tcell.StyleDefault)

	var got []string
	for _, dc := range b.Sorted() {
		got = append(got, dc.Text)
	}
	if diff := cmp.Diff([]string{"b", "d", "a", "c"}, got); diff != "" {
		t.Errorf("paint order mismatch (-want +got):\n%s", diff)
	}

	// Calls keeps submission order
	if b.Calls()[0].Text != "a" || b.Len() != 4 {
		t.Errorf("Calls() reordered: %+v", b.Calls())
	}
}

func TestBatchFlushNearerLayerWins(t *testing.T) {
	screen := newScreen(t, 20, 5)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)
	blue := tcell.StyleDefault.Foreground(tcell.ColorBlue)

	b := NewBatch()
	// nearer call submitted first must still land on top
	b.Text(1, vmath.V2(2, 1), vmath.Vec2{}, "near", red)
	b.Fill(9, vmath.V2(0, 0), vmath.V2(20, 5), blue)
	b.Flush(screen)

	if got := rowText(screen, 1, 2, 6); got != "near" {
		t.Errorf("row text = %q, want near", got)
	}
	if _, style := cellAt(screen, 2, 1); style != red {
		t.Errorf("near cell style = %v, want red", style)
	}
	if _, style := cellAt(screen, 10, 3); style != blue {
		t.Errorf("background cell style = %v, want blue", style)
	}
	if b.Len() != 0 {
		t.Errorf("Flush must reset the batch, Len() = %d", b.Len())
	}
}

func TestBatchTextClipping(t *testing.T) {
	screen := newScreen(t, 20, 5)
	b := NewBatch()
	b.Text(0, vmath.V2(0, 0), vmath.V2(3, 1), "abcdef\nsecond", tcell.StyleDefault)
	b.Text(0, vmath.V2(18, 2), vmath.Vec2{}, "xyz", tcell.StyleDefault)
	b.Flush(screen)

	if got := rowText(screen, 0, 0, 6); got != "abc   " {
		t.Errorf("clipped row = %q", got)
	}
	if got := rowText(screen, 1, 0, 6); got != "      " {
		t.Errorf("second line must be clipped by height, got %q", got)
	}
	if got := rowText(screen, 2, 18, 20); got != "xy" {
		t.Errorf("screen edge clipping = %q", got)
	}
}

func TestBatchFrame(t *testing.T) {
	screen := newScreen(t, 10, 5)
	b := NewBatch()
	b.Frame(0, vmath.V2(0, 0), vmath.V2(4, 3), tcell.StyleDefault)
	b.Flush(screen)

	if r, _ := cellAt(screen, 0, 0); r != tcell.RuneULCorner {
		t.Errorf("top-left = %q", r)
	}
	if r, _ := cellAt(screen, 3, 2); r != tcell.RuneLRCorner {
		t.Errorf("bottom-right = %q", r)
	}
	if r, _ := cellAt(screen, 0, 1); r != tcell.RuneVLine {
		t.Errorf("left side = %q", r)
	}
}

func TestPanelRender(t *testing.T) {
	screen := newScreen(t, 20, 5)
	p := NewPanel(vmath.V2(1, 1), vmath.V2(12, 3), 0)
	p.Title = "Info"

	b := NewBatch()
	p.Render(b)
	b.Flush(screen)

	if got, want := rowText(screen, 1, 1, 13), string(tcell.RuneULCorner)+string(tcell.RuneHLine)+" Info "+strings.Repeat(string(tcell.RuneHLine), 3)+string(tcell.RuneURCorner); got != want {
		t.Errorf("Top row = %q, want %q", got, want)
	}
	if r, style := cellAt(screen, 5, 2); r != ' ' || style != DefaultTheme.Background {
		t.Errorf("Inner cell = %q %v, want filled background", r, style)
	}

	p.Hide()
	p.Render(b)
	if b.Len() != 0 {
		t.Errorf("Hidden panel queued %d calls", b.Len())
	}
}
