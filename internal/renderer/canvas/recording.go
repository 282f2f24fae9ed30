package canvas

import "github.com/dshills/tessera/internal/renderer/core"

type op struct {
	x, y int
	cell core.Cell
}

// Recording is a display list of cell writes captured while painting a
// subtree. Positions are relative to the origin given to Canvas.Record, so a
// recording can be replayed at a different offset.
type Recording struct {
	ops []op
}

// Len returns the number of recorded writes.
func (r *Recording) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ops)
}

// Replay draws the recorded writes onto c with the origin at (x, y).
// Writes are clipped by c and captured by any recordings open on c.
func (r *Recording) Replay(c *Canvas, x, y int) {
	if r == nil {
		return
	}
	for _, o := range r.ops {
		c.SetCell(o.x+x, o.y+y, o.cell)
	}
}

func (r *Recording) reset() {
	r.ops = r.ops[:0]
}

func (r *Recording) add(x, y int, cell core.Cell) {
	r.ops = append(r.ops, op{x: x, y: y, cell: cell})
}
