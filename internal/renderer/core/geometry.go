package core

import "math"

// Rect is a region of cells. Left and Top are inclusive, Right and Bottom
// exclusive. A rect whose right edge is not past its left edge, or whose
// bottom is not below its top, is empty.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Unbounded covers every cell coordinate.
var Unbounded = Rect{Left: math.MinInt32, Top: math.MinInt32, Right: math.MaxInt32, Bottom: math.MaxInt32}

// NewRect returns the w×h rect whose top-left cell is (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Span returns the rect between two corners.
func Span(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the number of columns, never negative.
func (r Rect) Width() int { return max(r.Right-r.Left, 0) }

// Height returns the number of rows, never negative.
func (r Rect) Height() int { return max(r.Bottom-r.Top, 0) }

// IsEmpty reports whether r covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains reports whether cell (x, y) lies in r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersection returns the cells in both rects. Disjoint rects give the zero
// Rect.
func (r Rect) Intersection(o Rect) Rect {
	in := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if in.IsEmpty() {
		return Rect{}
	}
	return in
}

// Union returns the smallest rect covering both. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.IsEmpty():
		return o
	case o.IsEmpty():
		return r
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Inset shrinks r by the given amounts on each side.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		Left:   r.Left + left,
		Top:    r.Top + top,
		Right:  r.Right - right,
		Bottom: r.Bottom - bottom,
	}
}
