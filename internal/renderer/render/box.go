package render

import (
	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/core"
)

// Box decorates and pads at most one child. With both Width and Height set
// its size no longer depends on the child and it acts as a layout boundary.
type Box struct {
	Width, Height Opt
	Padding       Insets
	Border        canvas.BorderStyle
	Title         string
	// Style is used for the border and title.
	Style core.Style
	// Background, when set, fills the box before the child paints.
	Background *core.Color
	// Expand makes the box take the largest size allowed.
	Expand bool
}

// IsLayoutBoundary reports whether the box has a fixed size.
func (b *Box) IsLayoutBoundary() bool {
	return b.Width.Ok && b.Height.Ok
}

func (b *Box) insets() Insets {
	if b.Border.IsZero() {
		return b.Padding
	}
	return b.Padding.Add(Uniform(1))
}

// PerformLayout sizes the box around its child.
func (b *Box) PerformLayout(lc *LayoutContext, c Constraints) Size {
	c = c.Tighten(b.Width, b.Height)
	if b.Expand {
		c = Tight(c.Biggest())
	}
	ins := b.insets()
	children := lc.Children()
	if len(children) == 0 {
		return c.Constrain(Size{Width: ins.Horizontal(), Height: ins.Vertical()})
	}
	child := children[0]
	cs := lc.LayoutChild(child, c.Deflate(ins.Horizontal(), ins.Vertical()))
	lc.SetChildOffset(child, Offset{X: ins.Left, Y: ins.Top})
	return c.Constrain(Size{Width: cs.Width + ins.Horizontal(), Height: cs.Height + ins.Vertical()})
}

// Paint draws the background, border and title, then the child clipped to
// the area inside the insets.
func (b *Box) Paint(pc *PaintContext, offset Offset) {
	rect := pc.Bounds(offset)
	if b.Background != nil {
		pc.Canvas.Fill(rect, core.NewStyledCell(" ", core.DefaultStyle().WithBackground(*b.Background)))
	}
	if !b.Border.IsZero() {
		pc.Canvas.DrawBorder(rect, b.Border, b.Style)
		if b.Title != "" {
			pc.Canvas.DrawTitle(rect, " "+b.Title+" ", b.Style)
		}
	}
	ins := b.insets()
	pc.Clipped(rect.Inset(ins.Top, ins.Right, ins.Bottom, ins.Left)).PaintChildren(offset)
}

// Layer passes its child through unchanged and paints it into a cached
// layer. It marks the point above which repaints of the subtree do not
// propagate.
type Layer struct{}

// IsRepaintBoundary always reports true.
func (*Layer) IsRepaintBoundary() bool { return true }

// PerformLayout gives the child the layer's constraints.
func (*Layer) PerformLayout(lc *LayoutContext, c Constraints) Size {
	children := lc.Children()
	if len(children) == 0 {
		return c.Smallest()
	}
	lc.SetChildOffset(children[0], Offset{})
	return lc.LayoutChild(children[0], c)
}

// Paint paints the child.
func (*Layer) Paint(pc *PaintContext, offset Offset) {
	pc.PaintChildren(offset)
}

// View is the root behavior. It fills the screen and lays out its child
// with the screen constraints.
type View struct{}

// PerformLayout lays out the child and takes the biggest allowed size.
func (*View) PerformLayout(lc *LayoutContext, c Constraints) Size {
	for _, child := range lc.Children() {
		lc.LayoutChild(child, c)
		lc.SetChildOffset(child, Offset{})
	}
	return c.Biggest()
}

// Paint paints the children.
func (*View) Paint(pc *PaintContext, offset Offset) {
	pc.PaintChildren(offset)
}
