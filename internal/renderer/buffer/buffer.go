// Package buffer provides the frame buffer painted by the render tree and the
// differ that compares two frames cell by cell.
package buffer

import (
	"strings"

	"github.com/dshills/tessera/internal/renderer/core"
)

// Buffer is a fixed-size grid of cells addressed by column and row.
// A Buffer is created per frame at the terminal's current size.
type Buffer struct {
	width, height int
	cells         []core.Cell
}

// New creates a buffer with the given dimensions filled with empty cells.
// Negative dimensions are treated as zero.
func New(width, height int) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	b := &Buffer{
		width:  width,
		height: height,
		cells:  make([]core.Cell, width*height),
	}
	empty := core.EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Bounds returns the rectangle covering the whole buffer.
func (b *Buffer) Bounds() core.Rect {
	return core.Span(0, 0, b.width, b.height)
}

// InBounds reports whether (x, y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the cell at (x, y).
// Returns an empty cell for positions outside the buffer.
func (b *Buffer) Cell(x, y int) core.Cell {
	if !b.InBounds(x, y) {
		return core.EmptyCell()
	}
	return b.cells[y*b.width+x]
}

// SetCell sets the cell at (x, y). Positions outside the buffer and
// continuation cells are ignored; continuations are derived from the wide
// grapheme written to their left.
//
// Writing over half of a wide grapheme blanks the other half so the grid
// never holds an orphaned lead or continuation cell.
func (b *Buffer) SetCell(x, y int, cell core.Cell) {
	if !b.InBounds(x, y) || cell.IsContinuation() {
		return
	}
	w := cell.Width()
	b.breakWide(x, y)
	b.cells[y*b.width+x] = cell
	if w < 2 {
		return
	}
	if x+1 >= b.width {
		// A wide grapheme cannot straddle the right edge.
		b.cells[y*b.width+x] = core.NewStyledCell(" ", cell.Style)
		return
	}
	b.breakWide(x+1, y)
	b.cells[y*b.width+x+1] = core.ContinuationCell(cell.Style)
}

// breakWide blanks the partner of a wide grapheme about to be overwritten.
func (b *Buffer) breakWide(x, y int) {
	row := y * b.width
	cur := &b.cells[row+x]
	if cur.IsContinuation() {
		if x > 0 {
			b.cells[row+x-1] = core.NewStyledCell(" ", b.cells[row+x-1].Style)
		}
		return
	}
	if cur.Width() == 2 && x+1 < b.width && b.cells[row+x+1].IsContinuation() {
		b.cells[row+x+1] = core.NewStyledCell(" ", cur.Style)
	}
}

// SetString writes s starting at (x, y) and returns the number of columns
// written. Text is clipped at the right edge.
func (b *Buffer) SetString(x, y int, s string, style core.Style) int {
	if y < 0 || y >= b.height {
		return 0
	}
	col := x
	core.Graphemes(s, func(g string, w int) {
		if col >= b.width {
			return
		}
		if col >= 0 {
			b.SetCell(col, y, core.NewStyledCell(g, style))
		}
		col += w
	})
	return min(col, b.width) - x
}

// Fill fills a rectangle with the given cell.
func (b *Buffer) Fill(rect core.Rect, cell core.Cell) {
	rect = rect.Intersection(b.Bounds())
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			b.SetCell(x, y, cell)
		}
	}
}

// Clear resets every cell to an empty cell.
func (b *Buffer) Clear() {
	empty := core.EmptyCell()
	for i := range b.cells {
		b.cells[i] = empty
	}
}

// Equals reports whether two buffers have the same size and cells.
func (b *Buffer) Equals(other *Buffer) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if !b.cells[i].Equals(other.cells[i]) {
			return false
		}
	}
	return true
}

// Row returns the text of row y with continuation cells skipped and
// trailing blanks trimmed. It is intended for tests and debugging.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		c := b.cells[y*b.width+x]
		if c.IsContinuation() {
			continue
		}
		sb.WriteString(c.Grapheme)
	}
	return strings.TrimRight(sb.String(), " ")
}

// String renders the buffer as newline separated rows.
func (b *Buffer) String() string {
	rows := make([]string, b.height)
	for y := range rows {
		rows[y] = b.Row(y)
	}
	return strings.Join(rows, "\n")
}
