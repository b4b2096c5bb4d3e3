package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/gamesvc-samples/vmath"
)

func TestButtonOneShot(t *testing.T) {
	tests := []struct {
		name    string
		events  []UIEvent
		disable bool
		want    int
	}{
		{"click inside", []UIEvent{Press(2, 0), Release(3, 0)}, false, 1},
		{"release outside", []UIEvent{Press(2, 0), Release(30, 0)}, false, 0},
		{"press outside", []UIEvent{Press(30, 0), Release(2, 0)}, false, 0},
		{"double release", []UIEvent{Press(2, 0), Release(2, 0), Release(2, 0)}, false, 1},
		{"two clicks", []UIEvent{Press(2, 0), Release(2, 0), Press(2, 0), Release(2, 0)}, false, 2},
		{"disabled", []UIEvent{Press(2, 0), Release(2, 0)}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fired := 0
			b := NewButton(vmath.V2(0, 0), vmath.V2(10, 1), 0, "OK")
			b.SetOnPressed(func() { fired++ })
			if tt.disable {
				b.Disable()
			}
			for _, ev := range tt.events {
				b.OnUIEvent(ev)
			}
			if fired != tt.want {
				t.Errorf("fired %d times, want %d", fired, tt.want)
			}
		})
	}
}

func TestButtonWithoutCallbackIsNoop(t *testing.T) {
	b := NewButton(vmath.V2(0, 0), vmath.V2(10, 1), 0, "OK")
	b.OnUIEvent(Press(1, 0))
	if !b.OnUIEvent(Release(1, 0)) {
		t.Error("click on callback-less button should still be consumed")
	}
}

func TestButtonDisableDuringPress(t *testing.T) {
	fired := 0
	b := NewButton(vmath.V2(0, 0), vmath.V2(10, 1), 0, "OK")
	b.SetOnPressed(func() { fired++ })
	b.OnUIEvent(Press(1, 0))
	b.Disable()
	b.Enable()
	b.OnUIEvent(Release(1, 0))
	if fired != 0 {
		t.Error("press interrupted by Disable must not fire")
	}
}

func TestButtonEnterWhenFocused(t *testing.T) {
	fired := 0
	b := NewButton(vmath.V2(0, 0), vmath.V2(10, 1), 0, "OK")
	b.SetOnPressed(func() { fired++ })

	b.OnUIEvent(Key(tcell.KeyEnter))
	b.SetFocused(true)
	b.SetFocused(true)
	b.OnUIEvent(Key(tcell.KeyEnter))
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestHiddenWidgetsInert(t *testing.T) {
	fired := 0
	b := NewButton(vmath.V2(0, 0), vmath.V2(10, 1), 0, "OK")
	b.SetOnPressed(func() { fired++ })
	c := NewCheckbox(vmath.V2(0, 1), vmath.V2(10, 1), 0, "box")
	l := NewLabel(vmath.V2(0, 2), vmath.V2(10, 1), 0, "text")
	b.Hide()
	c.Hide()
	l.Hide()

	batch := NewBatch()
	b.Render(batch)
	c.Render(batch)
	l.Render(batch)
	b.OnUIEvent(Press(1, 0))
	b.OnUIEvent(Release(1, 0))
	c.OnUIEvent(Press(1, 1))
	c.OnUIEvent(Release(1, 1))

	if batch.Len() != 0 || fired != 0 || c.IsTicked() {
		t.Errorf("hidden widgets had effects: calls=%d fired=%d ticked=%v", batch.Len(), fired, c.IsTicked())
	}
}

func TestCheckbox(t *testing.T) {
	var toggles []bool
	c := NewCheckbox(vmath.V2(0, 0), vmath.V2(12, 1), 0, "Presence")
	c.SetOnToggled(func(v bool) { toggles = append(toggles, v) })

	c.OnUIEvent(Press(1, 0))
	c.OnUIEvent(Release(1, 0))
	if !c.IsTicked() {
		t.Fatal("click should tick")
	}

	c.SetTicked(false)
	c.Disable()
	c.OnUIEvent(Press(1, 0))
	c.OnUIEvent(Release(1, 0))
	if c.IsTicked() {
		t.Error("disabled checkbox toggled")
	}

	c.Enable()
	c.SetFocused(true)
	c.OnUIEvent(Char(' '))
	if diff := cmp.Diff([]bool{true, true}, toggles); diff != "" {
		t.Errorf("toggle callbacks (-want +got):\n%s", diff)
	}

	b := NewBatch()
	c.Render(b)
	if b.Calls()[0].Text != "[x] Presence" {
		t.Errorf("render text = %q", b.Calls()[0].Text)
	}
}

func typeText(f *TextField, s string) {
	for _, r := range s {
		f.OnUIEvent(Char(r))
	}
}

func TestTextFieldEditingAndSubmit(t *testing.T) {
	var submitted []string
	f := NewTextField(vmath.V2(0, 0), vmath.V2(20, 1), 0, "> ")
	f.SetOnSubmit(func(s string) { submitted = append(submitted, s) })

	typeText(f, "ignored")
	if f.Value() != "" {
		t.Fatal("unfocused field accepted input")
	}

	f.SetFocused(true)
	typeText(f, "helo")
	f.OnUIEvent(Key(tcell.KeyLeft))
	typeText(f, "l")
	if f.Value() != "hello" {
		t.Fatalf("Value() = %q", f.Value())
	}
	f.OnUIEvent(Key(tcell.KeyEnd))
	f.OnUIEvent(Key(tcell.KeyBackspace2))
	f.OnUIEvent(Key(tcell.KeyHome))
	f.OnUIEvent(Key(tcell.KeyDelete))
	if f.Value() != "ell" {
		t.Fatalf("Value() after deletes = %q", f.Value())
	}

	f.OnUIEvent(Key(tcell.KeyEnter))
	f.OnUIEvent(Key(tcell.KeyEnter))
	if diff := cmp.Diff([]string{"ell"}, submitted); diff != "" {
		t.Errorf("submissions (-want +got):\n%s", diff)
	}
	if f.Value() != "" {
		t.Error("submit should clear the field")
	}
}

func TestTextFieldHistory(t *testing.T) {
	f := NewTextField(vmath.V2(0, 0), vmath.V2(20, 1), 0, "")
	f.SetFocused(true)
	for _, line := range []string{"one", "two", "two", "three"} {
		f.SetValue(line)
		f.Submit()
	}
	if diff := cmp.Diff([]string{"one", "two", "three"}, f.History()); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}

	typeText(f, "dr")
	f.OnUIEvent(Key(tcell.KeyUp))
	f.OnUIEvent(Key(tcell.KeyUp))
	if f.Value() != "two" {
		t.Errorf("two steps back = %q", f.Value())
	}
	f.OnUIEvent(Key(tcell.KeyUp))
	f.OnUIEvent(Key(tcell.KeyUp))
	if f.Value() != "one" {
		t.Errorf("oldest = %q", f.Value())
	}
	f.OnUIEvent(Key(tcell.KeyDown))
	f.OnUIEvent(Key(tcell.KeyDown))
	f.OnUIEvent(Key(tcell.KeyDown))
	if f.Value() != "dr" {
		t.Errorf("draft not restored, got %q", f.Value())
	}
}

func TestTextViewScrollback(t *testing.T) {
	v := NewTextView(vmath.V2(0, 0), vmath.V2(20, 3), 0, 5)
	for _, s := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		v.AddLine(s)
	}
	if v.Len() != 5 || v.Lines()[0].Text != "3" {
		t.Fatalf("capacity not enforced: len=%d first=%q", v.Len(), v.Lines()[0].Text)
	}

	texts := func() []string {
		b := NewBatch()
		v.Render(b)
		var out []string
		for _, dc := range b.Calls() {
			out = append(out, dc.Text)
		}
		return out
	}
	if diff := cmp.Diff([]string{"5", "6", "7"}, texts()); diff != "" {
		t.Errorf("tail (-want +got):\n%s", diff)
	}

	v.OnUIEvent(UIEvent{Type: Wheel, Pos: vmath.V2(1, 1), Delta: -1})
	if diff := cmp.Diff([]string{"4", "5", "6"}, texts()); diff != "" {
		t.Errorf("scrolled up (-want +got):\n%s", diff)
	}
	v.ScrollBy(10)
	if v.Offset() != 2 {
		t.Errorf("offset clamped to %d, want 2", v.Offset())
	}

	// scrolled view stays put while new lines arrive
	v.ScrollBy(-1)
	v.AddLine("8")
	if diff := cmp.Diff([]string{"4", "5", "6"}, texts()); diff != "" {
		t.Errorf("pinned view moved (-want +got):\n%s", diff)
	}

	v.Clear()
	v.Clear()
	if v.Len() != 0 || v.Offset() != 0 {
		t.Error("Clear must empty and reset")
	}
}

func TestListFilterAndSelect(t *testing.T) {
	var chosen []int
	l := NewList(vmath.V2(0, 0), vmath.V2(20, 2), DefaultLayer)
	l.SetOnSelect(func(i int) { chosen = append(chosen, i) })
	for _, name := range []string{"Sword", "Shield", "Gems"} {
		l.AddRow(name, NewLabel(vmath.Vec2{}, vmath.Vec2{}, 0, name))
	}
	for _, r := range l.Rows() {
		if r.Widget.Layer() != DefaultLayer-1 {
			t.Errorf("row layer = %d", r.Widget.Layer())
		}
	}

	l.SetFilter("S")
	if diff := cmp.Diff([]int{0, 1, 2}, l.Shown()); diff != "" {
		t.Errorf("filter 'S' (-want +got):\n%s", diff)
	}
	l.SetFilter("sh")
	if diff := cmp.Diff([]int{1}, l.Shown()); diff != "" {
		t.Errorf("filter 'sh' (-want +got):\n%s", diff)
	}
	if l.Rows()[1].Widget.Position() != vmath.V2(0, 0) {
		t.Error("filtered row not laid out at the top")
	}

	l.OnUIEvent(Press(3, 0))
	if l.Selected() != 1 {
		t.Errorf("Selected() = %d, want 1", l.Selected())
	}

	l.Reset()
	l.Reset()
	if l.Filter() != "" || l.Selected() != -1 || len(l.Shown()) != 3 {
		t.Error("Reset did not restore defaults")
	}

	l.SetFocused(true)
	l.OnUIEvent(Key(tcell.KeyDown))
	l.OnUIEvent(Key(tcell.KeyDown))
	l.OnUIEvent(Key(tcell.KeyDown))
	if diff := cmp.Diff([]int{1, 0, 1, 2}, chosen); diff != "" {
		t.Errorf("selections (-want +got):\n%s", diff)
	}

	// only two rows fit; the third scrolled into view
	if l.Rows()[2].Widget.Position() != vmath.V2(0, 1) {
		t.Errorf("selected row not scrolled into view: %v", l.Rows()[2].Widget.Position())
	}
}

func TestTranslatorFromTcell(t *testing.T) {
	var tr Translator

	ev, ok := tr.FromTcell(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if !ok || ev.Type != TextInput || ev.Rune != 'q' {
		t.Errorf("rune key = %+v", ev)
	}
	ev, ok = tr.FromTcell(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !ok || ev.Type != KeyPressed || ev.Key != tcell.KeyEscape {
		t.Errorf("escape = %+v", ev)
	}

	ev, ok = tr.FromTcell(tcell.NewEventMouse(4, 5, tcell.Button1, tcell.ModNone))
	if !ok || ev.Type != MousePressed || ev.Pos != vmath.V2(4, 5) {
		t.Errorf("press = %+v", ev)
	}
	// drag while held has no UI meaning
	if _, ok = tr.FromTcell(tcell.NewEventMouse(6, 5, tcell.Button1, tcell.ModNone)); ok {
		t.Error("drag reported")
	}
	ev, ok = tr.FromTcell(tcell.NewEventMouse(6, 5, tcell.ButtonNone, tcell.ModNone))
	if !ok || ev.Type != MouseReleased {
		t.Errorf("release = %+v", ev)
	}
	// plain motion with nothing held
	if _, ok = tr.FromTcell(tcell.NewEventMouse(7, 5, tcell.ButtonNone, tcell.ModNone)); ok {
		t.Error("motion reported")
	}

	ev, ok = tr.FromTcell(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	if !ok || ev.Type != Wheel || ev.Delta != 1 {
		t.Errorf("wheel = %+v", ev)
	}
	if _, ok = tr.FromTcell(tcell.NewEventResize(80, 24)); ok {
		t.Error("resize reported as UI event")
	}
}

func TestConfirmState(t *testing.T) {
	c := NewConfirmState(false)
	c.HandleEvent(Key(tcell.KeyTab))
	if !c.FocusYes {
		t.Fatal("tab should move focus to Yes")
	}
	c.HandleEvent(Key(tcell.KeyEnter))
	if c.Result != ConfirmYes || !c.Done() {
		t.Errorf("Result = %v, want Yes", c.Result)
	}

	c.Reset()
	if c.FocusYes || c.Done() {
		t.Error("Reset should restore default focus and pending")
	}
	c.HandleEvent(Char('n'))
	if c.Result != ConfirmNo {
		t.Errorf("'n' gave %v", c.Result)
	}
	c.Reset()
	c.HandleEvent(Key(tcell.KeyEscape))
	if c.Result != ConfirmCancel {
		t.Errorf("escape gave %v", c.Result)
	}
	if c.HandleEvent(Char('z')) {
		t.Error("unrelated rune consumed")
	}
}
