package render

// Align positions a child along one axis within free space.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// place returns the offset of an item with free cells left over.
func (a Align) place(free int) int {
	if free <= 0 {
		return 0
	}
	switch a {
	case AlignCenter:
		return free / 2
	case AlignEnd:
		return free
	default:
		return 0
	}
}

// Alignment combines horizontal and vertical alignment.
type Alignment struct {
	H, V Align
}

// Common alignments.
var (
	TopLeft     = Alignment{AlignStart, AlignStart}
	TopCenter   = Alignment{AlignCenter, AlignStart}
	Center      = Alignment{AlignCenter, AlignCenter}
	BottomRight = Alignment{AlignEnd, AlignEnd}
)

// Place returns the offset of a child of size child inside parent.
func (a Alignment) Place(parent, child Size) Offset {
	return Offset{
		X: a.H.place(parent.Width - child.Width),
		Y: a.V.place(parent.Height - child.Height),
	}
}
