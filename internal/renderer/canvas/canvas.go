// Package canvas provides the drawing surface handed to render objects
// during paint. A Canvas writes cells into a Surface (normally a frame
// buffer) through a clip rectangle, and can record what it draws so that a
// subtree can be replayed without being repainted.
package canvas

import (
	"github.com/dshills/tessera/internal/renderer/core"
)

// Surface is the cell grid a Canvas draws into.
// *buffer.Buffer satisfies it.
type Surface interface {
	Size() (width, height int)
	SetCell(x, y int, cell core.Cell)
	Cell(x, y int) core.Cell
}

// tap captures writes for an open Recording. x and y are the absolute
// coordinates of the recording's origin. clip holds the clips applied since
// the recording was opened; it is unset until the first WithClip.
type tap struct {
	rec     *Recording
	x, y    int
	clip    core.Rect
	clipped bool
}

// Canvas draws into a Surface. Coordinates passed to drawing methods are
// absolute surface coordinates; writes outside the clip rectangle are
// discarded.
//
// A Canvas is a small value: WithClip and Record return derived canvases that
// share the same surface.
type Canvas struct {
	surface Surface
	clip    core.Rect
	taps    []tap
}

// New creates a canvas covering the whole surface.
func New(s Surface) *Canvas {
	w, h := s.Size()
	return &Canvas{
		surface: s,
		clip:    core.NewRect(0, 0, w, h),
	}
}

// Surface returns the underlying surface.
func (c *Canvas) Surface() Surface {
	return c.surface
}

// Clip returns the current clip rectangle.
func (c *Canvas) Clip() core.Rect {
	return c.clip
}

// WithClip returns a canvas whose clip is the intersection of the current
// clip and rect. Open recordings are shared and see the new clip too.
func (c *Canvas) WithClip(rect core.Rect) *Canvas {
	var taps []tap
	if len(c.taps) > 0 {
		taps = make([]tap, len(c.taps))
		for i, t := range c.taps {
			if t.clipped {
				t.clip = t.clip.Intersection(rect)
			} else {
				t.clip, t.clipped = rect, true
			}
			taps[i] = t
		}
	}
	return &Canvas{
		surface: c.surface,
		clip:    c.clip.Intersection(rect),
		taps:    taps,
	}
}

// Record returns a canvas that draws like c and additionally captures every
// write into rec, relative to (x, y). rec is reset first.
//
// The clip in effect on c is not applied to captured writes, so a replay
// under a different clip still has the full content. Clips applied after
// Record are applied to the recording as well.
func (c *Canvas) Record(rec *Recording, x, y int) *Canvas {
	rec.reset()
	taps := make([]tap, len(c.taps), len(c.taps)+1)
	copy(taps, c.taps)
	taps = append(taps, tap{rec: rec, x: x, y: y})
	return &Canvas{
		surface: c.surface,
		clip:    c.clip,
		taps:    taps,
	}
}

// SetCell writes a cell at (x, y) if it lies inside the clip.
// A wide grapheme whose second column falls outside the clip is replaced by
// a blank.
func (c *Canvas) SetCell(x, y int, cell core.Cell) {
	for _, t := range c.taps {
		if !t.clipped {
			t.rec.add(x-t.x, y-t.y, cell)
			continue
		}
		if clipped, ok := clipCell(t.clip, x, y, cell); ok {
			t.rec.add(x-t.x, y-t.y, clipped)
		}
	}
	if clipped, ok := clipCell(c.clip, x, y, cell); ok {
		c.surface.SetCell(x, y, clipped)
	}
}

// clipCell reports whether (x, y) lies inside clip, and returns the cell to
// write there.
func clipCell(clip core.Rect, x, y int, cell core.Cell) (core.Cell, bool) {
	if !clip.Contains(x, y) {
		return cell, false
	}
	if cell.Width() == 2 && !clip.Contains(x+1, y) {
		cell = core.NewStyledCell(" ", cell.Style)
	}
	return cell, true
}

// DrawText writes s starting at (x, y) and returns the number of columns
// advanced. Text is not wrapped; anything outside the clip is dropped.
func (c *Canvas) DrawText(x, y int, s string, style core.Style) int {
	col := x
	core.Graphemes(s, func(g string, w int) {
		c.SetCell(col, y, core.NewStyledCell(g, style))
		col += w
	})
	return col - x
}

// DrawTextClipped writes s like DrawText but stops before maxWidth columns
// are exceeded. A wide grapheme that would straddle the limit is dropped.
func (c *Canvas) DrawTextClipped(x, y int, s string, maxWidth int, style core.Style) int {
	col := x
	full := false
	core.Graphemes(s, func(g string, w int) {
		if full || col-x+w > maxWidth {
			full = true
			return
		}
		c.SetCell(col, y, core.NewStyledCell(g, style))
		col += w
	})
	return col - x
}

// Fill fills rect with cell.
func (c *Canvas) Fill(rect core.Rect, cell core.Cell) {
	rect = rect.Intersection(c.reach())
	step := max(cell.Width(), 1)
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x += step {
			c.SetCell(x, y, cell)
		}
	}
}

// FillStyle sets the style of every cell in rect, keeping the existing
// graphemes.
func (c *Canvas) FillStyle(rect core.Rect, style core.Style) {
	rect = rect.Intersection(c.clip)
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			cur := c.surface.Cell(x, y)
			if cur.IsContinuation() {
				continue
			}
			c.SetCell(x, y, cur.WithStyle(style))
		}
	}
}

// reach returns the smallest rect covering every position a write on c can
// land in, on the surface or in an open recording.
func (c *Canvas) reach() core.Rect {
	r := c.clip
	for _, t := range c.taps {
		if !t.clipped {
			return core.Unbounded
		}
		r = r.Union(t.clip)
	}
	return r
}
