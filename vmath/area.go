package vmath

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	Pos  Vec2
	Size Vec2
}

// NewRect builds a rect from position and size
func NewRect(pos, size Vec2) Rect {
	return Rect{Pos: pos, Size: size}
}

// Contains reports whether p lies inside the rect, right and bottom edges exclusive
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Size.X &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Size.Y
}

// Max returns the bottom-right corner
func (r Rect) Max() Vec2 {
	return r.Pos.Add(r.Size)
}

// Center returns the center point of the rect
func (r Rect) Center() Vec2 {
	return r.Pos.Add(r.Size.Scale(0.5))
}
