package render

// Axis is a layout direction.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// MainAlign distributes free space along the main axis.
type MainAlign uint8

const (
	MainStart MainAlign = iota
	MainCenter
	MainEnd
	MainSpaceBetween
)

// CrossAlign positions children along the cross axis.
type CrossAlign uint8

const (
	CrossStart CrossAlign = iota
	CrossCenter
	CrossEnd
	CrossStretch
)

// Flex lays its children out in a row or column.
//
// Children without a flex factor are measured first with an unbounded main
// axis. The remaining main extent is then shared between flexible children
// in proportion to their factors; the last flexible child receives any
// rounding remainder. Under an unbounded main axis flex factors are ignored.
type Flex struct {
	Direction Axis
	Main      MainAlign
	Cross     CrossAlign
	Gap       int
	// Shrink sizes the main axis to the children instead of filling it.
	Shrink bool
}

func (f *Flex) main(s Size) int {
	if f.Direction == Horizontal {
		return s.Width
	}
	return s.Height
}

func (f *Flex) cross(s Size) int {
	if f.Direction == Horizontal {
		return s.Height
	}
	return s.Width
}

func (f *Flex) size(main, cross int) Size {
	if f.Direction == Horizontal {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

func (f *Flex) constraints(minMain, maxMain, minCross, maxCross int) Constraints {
	if f.Direction == Horizontal {
		return Constraints{minMain, maxMain, minCross, maxCross}
	}
	return Constraints{minCross, maxCross, minMain, maxMain}
}

// PerformLayout measures and positions the children.
func (f *Flex) PerformLayout(lc *LayoutContext, c Constraints) Size {
	children := lc.Children()
	maxSize := Size{Width: c.MaxWidth, Height: c.MaxHeight}
	minSize := c.Smallest()
	maxMain, maxCross := f.main(maxSize), f.cross(maxSize)
	minMain, minCross := f.main(minSize), f.cross(minSize)
	boundedMain := maxMain < Infinity

	crossLo, crossHi := 0, maxCross
	if f.Cross == CrossStretch && maxCross < Infinity {
		crossLo = maxCross
	}

	sizes := make([]Size, len(children))
	gaps := f.Gap * max(len(children)-1, 0)
	used, totalFlex, lastFlex := 0, 0, -1

	for i, child := range children {
		pd := lc.ParentData(child)
		if pd.Flex > 0 && boundedMain {
			totalFlex += pd.Flex
			lastFlex = i
			continue
		}
		sizes[i] = lc.LayoutChild(child, f.constraints(0, Infinity, crossLo, crossHi))
		used += f.main(sizes[i])
	}

	if totalFlex > 0 {
		free := max(maxMain-used-gaps, 0)
		remaining := free
		for i, child := range children {
			pd := lc.ParentData(child)
			if pd.Flex <= 0 {
				continue
			}
			share := free * pd.Flex / totalFlex
			if i == lastFlex {
				share = remaining
			}
			remaining -= share
			lo := share
			if pd.Fit == FitLoose {
				lo = 0
			}
			sizes[i] = lc.LayoutChild(child, f.constraints(lo, share, crossLo, crossHi))
			used += f.main(sizes[i])
		}
	}

	content := used + gaps
	mainSize := content
	if boundedMain && !f.Shrink {
		mainSize = maxMain
	}
	mainSize = clamp(mainSize, minMain, maxMain)

	crossSize := 0
	for _, s := range sizes {
		crossSize = max(crossSize, f.cross(s))
	}
	if f.Cross == CrossStretch && maxCross < Infinity {
		crossSize = maxCross
	}
	crossSize = clamp(crossSize, minCross, maxCross)

	pos, between := 0, 0
	free := max(mainSize-content, 0)
	switch f.Main {
	case MainCenter:
		pos = free / 2
	case MainEnd:
		pos = free
	case MainSpaceBetween:
		if len(children) > 1 {
			between = free / (len(children) - 1)
		}
	}

	for i, child := range children {
		cs := f.cross(sizes[i])
		var cross int
		switch f.Cross {
		case CrossCenter:
			cross = AlignCenter.place(crossSize - cs)
		case CrossEnd:
			cross = AlignEnd.place(crossSize - cs)
		}
		if f.Direction == Horizontal {
			lc.SetChildOffset(child, Offset{X: pos, Y: cross})
		} else {
			lc.SetChildOffset(child, Offset{X: cross, Y: pos})
		}
		pos += f.main(sizes[i]) + f.Gap + between
	}

	return f.size(mainSize, crossSize)
}

// Paint paints the children clipped to the flex bounds.
func (f *Flex) Paint(pc *PaintContext, offset Offset) {
	pc.Clipped(pc.Bounds(offset)).PaintChildren(offset)
}
