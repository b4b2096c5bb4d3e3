package vmath

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := V2(3, 4)
	b := V2(1, 2)

	if got := a.Add(b); got != V2(4, 6) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V2(2, 2) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(0.5); got != V2(1.5, 2) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Mul(V2(0.7, 0.75)); got.X < 2.09 || got.X > 2.11 || got.Y != 3 {
		t.Errorf("Mul = %v", got)
	}
	if x, y := V2(2.9, -0.5).Cell(); x != 2 || y != -1 {
		t.Errorf("Cell = %d,%d", x, y)
	}
	if got := V2(-1, 5).ClampMin(0); got != V2(0, 5) {
		t.Errorf("ClampMin = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(V2(10, 10), V2(5, 2))

	tests := []struct {
		p    Vec2
		want bool
	}{
		{V2(10, 10), true},
		{V2(14.9, 11.9), true},
		{V2(15, 10), false},
		{V2(10, 12), false},
		{V2(9.9, 10), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if r.Max() != V2(15, 12) {
		t.Errorf("Max = %v", r.Max())
	}
	if r.Center() != V2(12.5, 11) {
		t.Errorf("Center = %v", r.Center())
	}
}
