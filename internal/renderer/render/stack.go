package render

// Stack overlays its children. Children without a Position are laid out
// loosely and placed by Alignment; they also determine the stack's size.
// Positioned children are placed by their explicit edges and extents and do
// not affect the size.
type Stack struct {
	Alignment Alignment
	// Expand forces non-positioned children to the largest allowed size.
	Expand bool
}

// PerformLayout lays out flow children first, then positioned ones.
func (s *Stack) PerformLayout(lc *LayoutContext, c Constraints) Size {
	children := lc.Children()
	flow := c.Loosen()
	if s.Expand {
		flow = Tight(c.Biggest())
	}

	sizes := make([]Size, len(children))
	hasFlow := false
	var content Size
	for i, child := range children {
		if lc.ParentData(child).IsPositioned() {
			continue
		}
		hasFlow = true
		sizes[i] = lc.LayoutChild(child, flow)
		content.Width = max(content.Width, sizes[i].Width)
		content.Height = max(content.Height, sizes[i].Height)
	}

	size := c.Biggest()
	if hasFlow {
		size = c.Constrain(content)
	}

	for i, child := range children {
		pd := lc.ParentData(child)
		if !pd.IsPositioned() {
			lc.SetChildOffset(child, s.Alignment.Place(size, sizes[i]))
			continue
		}
		p := pd.Position
		cc := Constraints{0, max(size.Width, 0), 0, max(size.Height, 0)}
		switch {
		case p.Width.Ok:
			cc.MinWidth, cc.MaxWidth = p.Width.V, p.Width.V
		case p.Left.Ok && p.Right.Ok:
			w := max(size.Width-p.Left.V-p.Right.V, 0)
			cc.MinWidth, cc.MaxWidth = w, w
		}
		switch {
		case p.Height.Ok:
			cc.MinHeight, cc.MaxHeight = p.Height.V, p.Height.V
		case p.Top.Ok && p.Bottom.Ok:
			h := max(size.Height-p.Top.V-p.Bottom.V, 0)
			cc.MinHeight, cc.MaxHeight = h, h
		}
		cs := lc.LayoutChild(child, cc)

		at := s.Alignment.Place(size, cs)
		switch {
		case p.Left.Ok:
			at.X = p.Left.V
		case p.Right.Ok:
			at.X = size.Width - p.Right.V - cs.Width
		}
		switch {
		case p.Top.Ok:
			at.Y = p.Top.V
		case p.Bottom.Ok:
			at.Y = size.Height - p.Bottom.V - cs.Height
		}
		lc.SetChildOffset(child, at)
	}
	return size
}

// Paint paints the children in order, later children on top.
func (s *Stack) Paint(pc *PaintContext, offset Offset) {
	pc.Clipped(pc.Bounds(offset)).PaintChildren(offset)
}
