package render

import (
	"strings"

	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/core"
)

// ErrorStyle is the style of error boxes.
var ErrorStyle = core.DefaultStyle().WithForeground(core.ColorRed)

// ErrorBox is the placeholder painted in place of a subtree whose build
// failed.
type ErrorBox struct {
	Message string
	Stack   string
}

// PerformLayout takes all the space allowed. On an unbounded axis it takes
// enough for the wrapped message inside a border.
func (e *ErrorBox) PerformLayout(_ *LayoutContext, c Constraints) Size {
	return errorSize(c, e.Message)
}

// errorSize is the size of an error box showing msg under c. It is also the
// size of a node whose layout failed.
func errorSize(c Constraints, msg string) Size {
	s := c.Biggest()
	if !c.HasBoundedWidth() {
		s.Width = core.StringWidth(firstLine(msg)) + 4
	}
	if !c.HasBoundedHeight() {
		s.Height = len(WrapText(msg, max(s.Width-2, 1))) + 2
	}
	return c.Constrain(s)
}

// Paint draws the error box.
func (e *ErrorBox) Paint(pc *PaintContext, offset Offset) {
	stack := ""
	if pc.ShowStack() {
		stack = e.Stack
	}
	DrawError(pc.Canvas, pc.Bounds(offset), e.Message, stack)
}

// DrawError paints a bordered box containing msg and, if non-empty, stack.
// Rectangles too small for a border get the message on a single line.
func DrawError(c *canvas.Canvas, rect core.Rect, msg, stack string) {
	if rect.IsEmpty() {
		return
	}
	c = c.WithClip(rect)
	c.Fill(rect, core.NewStyledCell(" ", ErrorStyle))
	if rect.Width() < 3 || rect.Height() < 3 {
		c.DrawTextClipped(rect.Left, rect.Top, "! "+firstLine(msg), rect.Width(), ErrorStyle)
		return
	}
	c.DrawBorder(rect, canvas.BorderRounded, ErrorStyle)
	c.DrawTitle(rect, " error ", ErrorStyle.Bold())

	inner := rect.Inset(1, 1, 1, 1)
	lines := WrapText(msg, inner.Width())
	if stack != "" {
		lines = append(lines, WrapText(strings.TrimRight(stack, "\n"), inner.Width())...)
	}
	for i, line := range lines {
		if i >= inner.Height() {
			break
		}
		c.DrawTextClipped(inner.Left, inner.Top+i, line, inner.Width(), ErrorStyle)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
