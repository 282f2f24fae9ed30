package core

import "github.com/rivo/uniseg"

// Cell represents a single terminal cell.
//
// A cell holds one grapheme cluster. Wide graphemes occupy two columns: the
// lead cell carries the grapheme and the cell to its right is a continuation
// cell with an empty grapheme.
type Cell struct {
	// Grapheme is the grapheme cluster to display.
	// An empty string marks a continuation cell.
	Grapheme string

	// Style is the visual style for this cell.
	Style Style

	// width caches the display width plus one; zero means not yet computed.
	width uint8
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Grapheme: " ", Style: DefaultStyle(), width: 2}
}

// NewCell creates a cell with the given grapheme and default style.
func NewCell(g string) Cell {
	return Cell{Grapheme: g, Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given grapheme and style.
func NewStyledCell(g string, style Style) Cell {
	return Cell{Grapheme: g, Style: style}
}

// RuneCell creates a styled cell from a single rune.
func RuneCell(r rune, style Style) Cell {
	return Cell{Grapheme: string(r), Style: style}
}

// ContinuationCell returns the trailing half of a wide grapheme.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style, width: 1}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// Width returns the display width of the cell: 0 for continuation cells,
// otherwise 1 or 2. The value is computed on first use and cached.
func (c *Cell) Width() int {
	if c.width == 0 {
		c.width = uint8(GraphemeWidth(c.Grapheme)) + 1
	}
	return int(c.width) - 1
}

// IsContinuation returns true if this is the second column of a wide
// grapheme.
func (c Cell) IsContinuation() bool {
	return c.Grapheme == ""
}

// IsBlank returns true if the cell shows a space.
func (c Cell) IsBlank() bool {
	return c.Grapheme == " "
}

// Equals reports whether two cells display the same grapheme with the same
// style. The cached width does not take part in equality.
func (c Cell) Equals(other Cell) bool {
	return c.Grapheme == other.Grapheme && c.Style.Equals(other.Style)
}

// GraphemeWidth returns the number of columns a grapheme occupies:
// 0 for the empty string, otherwise 1 or 2.
func GraphemeWidth(g string) int {
	if g == "" {
		return 0
	}
	w := uniseg.StringWidth(g)
	if w < 1 {
		return 1
	}
	if w > 2 {
		return 2
	}
	return w
}

// Graphemes splits s into grapheme clusters and their display widths.
// Control characters are replaced with U+FFFD so they cannot move the
// terminal cursor.
func Graphemes(s string, fn func(g string, width int)) {
	state := -1
	for len(s) > 0 {
		var g string
		var w int
		g, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if isControl(g) {
			g, w = "�", 1
		}
		if w < 1 {
			w = 1
		}
		if w > 2 {
			w = 2
		}
		fn(g, w)
	}
}

// StringWidth returns the display width of s in columns.
func StringWidth(s string) int {
	total := 0
	Graphemes(s, func(_ string, w int) { total += w })
	return total
}

func isControl(g string) bool {
	if len(g) == 0 {
		return false
	}
	b := g[0]
	return b < 0x20 || b == 0x7F
}
