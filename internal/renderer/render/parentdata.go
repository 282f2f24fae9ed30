package render

// FlexFit controls how a flexible child uses its share of the main axis.
type FlexFit uint8

const (
	// FitTight forces the child to fill its share.
	FitTight FlexFit = iota
	// FitLoose lets the child be smaller than its share.
	FitLoose
)

// Position places a child of a Stack explicitly. Unset edges and extents
// fall back to the stack's alignment.
type Position struct {
	Left, Top, Right, Bottom Opt
	Width, Height            Opt
}

// ParentData is the per-child data a parent uses to lay out and paint a
// child. Offset is written by the parent's layout; the remaining fields are
// annotations supplied from above, usually by a parent-data component.
type ParentData struct {
	Offset   Offset
	Flex     int
	Fit      FlexFit
	Position *Position
}

// IsPositioned reports whether the child opts out of stack flow.
func (pd ParentData) IsPositioned() bool {
	return pd.Position != nil
}
