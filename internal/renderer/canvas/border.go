package canvas

import "github.com/dshills/tessera/internal/renderer/core"

// BorderStyle holds the runes used to draw a box outline.
// The zero value draws nothing.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// IsZero reports whether the style draws no border.
func (b BorderStyle) IsZero() bool {
	return b.Horizontal == 0
}

// Predefined border styles.
var (
	BorderNone    = BorderStyle{}
	BorderSingle  = BorderStyle{'─', '│', '┌', '┐', '└', '┘'}
	BorderRounded = BorderStyle{'─', '│', '╭', '╮', '╰', '╯'}
	BorderDouble  = BorderStyle{'═', '║', '╔', '╗', '╚', '╝'}
	BorderHeavy   = BorderStyle{'━', '┃', '┏', '┓', '┗', '┛'}
	BorderASCII   = BorderStyle{'-', '|', '+', '+', '+', '+'}
)

// DrawBorder outlines rect with the given border runes.
// Rectangles narrower or shorter than two cells are not drawn.
func (c *Canvas) DrawBorder(rect core.Rect, border BorderStyle, style core.Style) {
	if border.IsZero() || rect.Width() < 2 || rect.Height() < 2 {
		return
	}
	top, bottom := rect.Top, rect.Bottom-1
	left, right := rect.Left, rect.Right-1

	h := core.RuneCell(border.Horizontal, style)
	v := core.RuneCell(border.Vertical, style)
	for x := left + 1; x < right; x++ {
		c.SetCell(x, top, h)
		c.SetCell(x, bottom, h)
	}
	for y := top + 1; y < bottom; y++ {
		c.SetCell(left, y, v)
		c.SetCell(right, y, v)
	}
	c.SetCell(left, top, core.RuneCell(border.TopLeft, style))
	c.SetCell(right, top, core.RuneCell(border.TopRight, style))
	c.SetCell(left, bottom, core.RuneCell(border.BottomLeft, style))
	c.SetCell(right, bottom, core.RuneCell(border.BottomRight, style))
}

// DrawTitle writes title into the top edge of a bordered rect, starting two
// columns in from the left corner and truncated to fit inside the corners.
func (c *Canvas) DrawTitle(rect core.Rect, title string, style core.Style) {
	avail := rect.Width() - 4
	if title == "" || avail <= 0 {
		return
	}
	c.DrawTextClipped(rect.Left+2, rect.Top, title, avail, style)
}
