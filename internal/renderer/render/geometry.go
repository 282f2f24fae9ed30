package render

import (
	"fmt"
	"math"

	"github.com/dshills/tessera/internal/renderer/core"
)

// Infinity is the extent of an unbounded constraint.
const Infinity = math.MaxInt32

// Size is a width and height in cells.
type Size struct {
	Width, Height int
}

// Offset is a position in cells relative to a parent's origin.
type Offset struct {
	X, Y int
}

// Add returns o translated by p.
func (o Offset) Add(p Offset) Offset {
	return Offset{X: o.X + p.X, Y: o.Y + p.Y}
}

// Rect returns the screen rectangle of size s placed at o.
func (o Offset) Rect(s Size) core.Rect {
	return core.NewRect(o.X, o.Y, s.Width, s.Height)
}

// Constraints bound the size a node may choose.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Tight returns constraints that only allow s.
func Tight(s Size) Constraints {
	return Constraints{s.Width, s.Width, s.Height, s.Height}
}

// Loose returns constraints allowing any size up to s.
func Loose(s Size) Constraints {
	return Constraints{0, s.Width, 0, s.Height}
}

// Unbounded returns constraints that allow any size.
func Unbounded() Constraints {
	return Constraints{0, Infinity, 0, Infinity}
}

// IsTight reports whether exactly one size satisfies c.
func (c Constraints) IsTight() bool {
	return c.MinWidth >= c.MaxWidth && c.MinHeight >= c.MaxHeight
}

// HasBoundedWidth reports whether MaxWidth is finite.
func (c Constraints) HasBoundedWidth() bool { return c.MaxWidth < Infinity }

// HasBoundedHeight reports whether MaxHeight is finite.
func (c Constraints) HasBoundedHeight() bool { return c.MaxHeight < Infinity }

// Constrain returns the size closest to s that satisfies c.
func (c Constraints) Constrain(s Size) Size {
	return Size{
		Width:  clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

// IsSatisfiedBy reports whether s lies within c.
func (c Constraints) IsSatisfiedBy(s Size) bool {
	return s.Width >= c.MinWidth && s.Width <= c.MaxWidth &&
		s.Height >= c.MinHeight && s.Height <= c.MaxHeight
}

// Biggest returns the largest size c allows. Unbounded axes fall back to the
// minimum.
func (c Constraints) Biggest() Size {
	s := Size{Width: c.MaxWidth, Height: c.MaxHeight}
	if !c.HasBoundedWidth() {
		s.Width = c.MinWidth
	}
	if !c.HasBoundedHeight() {
		s.Height = c.MinHeight
	}
	return s
}

// Smallest returns the smallest size c allows.
func (c Constraints) Smallest() Size {
	return Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Loosen returns c with both minimums removed.
func (c Constraints) Loosen() Constraints {
	c.MinWidth, c.MinHeight = 0, 0
	return c
}

// Deflate shrinks c by horizontal and vertical insets, never below zero.
func (c Constraints) Deflate(horizontal, vertical int) Constraints {
	sub := func(v, d int) int {
		if v >= Infinity {
			return v
		}
		return max(v-d, 0)
	}
	out := Constraints{
		MinWidth:  max(c.MinWidth-horizontal, 0),
		MaxWidth:  sub(c.MaxWidth, horizontal),
		MinHeight: max(c.MinHeight-vertical, 0),
		MaxHeight: sub(c.MaxHeight, vertical),
	}
	out.MinWidth = min(out.MinWidth, out.MaxWidth)
	out.MinHeight = min(out.MinHeight, out.MaxHeight)
	return out
}

// Tighten fixes the axes given as options, clamped to c.
func (c Constraints) Tighten(width, height Opt) Constraints {
	if width.Ok {
		w := clamp(width.V, c.MinWidth, c.MaxWidth)
		c.MinWidth, c.MaxWidth = w, w
	}
	if height.Ok {
		h := clamp(height.V, c.MinHeight, c.MaxHeight)
		c.MinHeight, c.MaxHeight = h, h
	}
	return c
}

func (c Constraints) String() string {
	f := func(v int) string {
		if v >= Infinity {
			return "inf"
		}
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("w %s..%s h %s..%s", f(c.MinWidth), f(c.MaxWidth), f(c.MinHeight), f(c.MaxHeight))
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Opt is an optional integer.
type Opt struct {
	V  int
	Ok bool
}

// Some returns a set Opt.
func Some(v int) Opt {
	return Opt{V: v, Ok: true}
}

// Or returns the value if set, otherwise def.
func (o Opt) Or(def int) int {
	if o.Ok {
		return o.V
	}
	return def
}

// Insets are distances from the four edges of a box.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Uniform returns insets of n on every edge.
func Uniform(n int) Insets {
	return Insets{n, n, n, n}
}

// Symmetric returns insets of v top and bottom and h left and right.
func Symmetric(v, h int) Insets {
	return Insets{Top: v, Right: h, Bottom: v, Left: h}
}

// Horizontal returns Left + Right.
func (i Insets) Horizontal() int { return i.Left + i.Right }

// Vertical returns Top + Bottom.
func (i Insets) Vertical() int { return i.Top + i.Bottom }

// Add returns the sum of two insets.
func (i Insets) Add(o Insets) Insets {
	return Insets{i.Top + o.Top, i.Right + o.Right, i.Bottom + o.Bottom, i.Left + o.Left}
}
