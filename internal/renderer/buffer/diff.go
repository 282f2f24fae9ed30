package buffer

import "github.com/dshills/tessera/internal/renderer/core"

// Change is a single cell that differs between two frames.
type Change struct {
	X, Y int
	Cell core.Cell
}

// Run is a horizontal sequence of changed cells sharing one style.
// Continuation cells are included in Cells so that Len matches the number of
// columns covered.
type Run struct {
	X, Y  int
	Style core.Style
	Cells []core.Cell
}

// Len returns the number of columns covered by the run.
func (r Run) Len() int {
	return len(r.Cells)
}

// Text returns the graphemes of the run as they are written to a terminal.
func (r Run) Text() string {
	n := 0
	for _, c := range r.Cells {
		n += len(c.Grapheme)
	}
	buf := make([]byte, 0, n)
	for _, c := range r.Cells {
		buf = append(buf, c.Grapheme...)
	}
	return string(buf)
}

// Diff returns the cells of cur that differ from prev, in row-major order.
//
// When prev is nil or its size differs from cur every cell of cur is
// returned: the previous frame cannot be used as a baseline.
func Diff(prev, cur *Buffer) []Change {
	if cur == nil {
		return nil
	}
	full := prev == nil || prev.width != cur.width || prev.height != cur.height

	var changes []Change
	for y := 0; y < cur.height; y++ {
		row := y * cur.width
		for x := 0; x < cur.width; x++ {
			c := cur.cells[row+x]
			if full || !c.Equals(prev.cells[row+x]) {
				changes = append(changes, Change{X: x, Y: y, Cell: c})
			}
		}
	}
	return changes
}


// Coalesce merges horizontally adjacent changes with identical style into
// runs. The input must be in row-major order, as returned by Diff.
// The runs cover exactly the changed cells.
func Coalesce(changes []Change) []Run {
	var runs []Run
	for _, ch := range changes {
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.Y == ch.Y && last.X+len(last.Cells) == ch.X &&
				(ch.Cell.IsContinuation() || last.Style.Equals(ch.Cell.Style)) {
				last.Cells = append(last.Cells, ch.Cell)
				continue
			}
		}
		runs = append(runs, Run{X: ch.X, Y: ch.Y, Style: ch.Cell.Style, Cells: []core.Cell{ch.Cell}})
	}
	return runs
}
