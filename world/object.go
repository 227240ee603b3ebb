// world/object.go
package world

// Rect is an axis-aligned rectangle with its min corner at (X, Y).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside the rectangle.
// Edges follow half-open [min, max) semantics so adjacent rects don't
// double-claim a boundary point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps reports AABB overlap between two rectangles.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width &&
		r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height &&
		r.Y+r.Height > o.Y
}

// Object 玩家摆放的展示物件，同时作为派生障碍
type Object struct {
	ID        string
	X, Y      float64 // center position
	Width     float64
	Height    float64
	ImageSrc  string
	Text      string
	CreatedAt int64
	UpdatedAt int64
}

// Bounds returns the object's derived obstacle rectangle.
func (o *Object) Bounds() Rect {
	return Rect{
		X:      o.X - o.Width/2,
		Y:      o.Y - o.Height/2,
		Width:  o.Width,
		Height: o.Height,
	}
}
