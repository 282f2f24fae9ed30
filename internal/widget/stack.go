package widget

import (
	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/renderer/render"
)

// Stack paints its children on top of each other, later children above
// earlier ones. Children wrapped in Positioned are placed explicitly; the
// others are aligned by Alignment.
type Stack struct {
	element.Base
	Alignment render.Alignment
	Expand    bool
	Children  []element.Component
}

func (s Stack) ChildComponents() []element.Component { return s.Children }

func (s Stack) CreateRenderObject(element.BuildContext) render.Behavior {
	return &render.Stack{Alignment: s.Alignment, Expand: s.Expand}
}

func (s Stack) UpdateRenderObject(_ element.BuildContext, obj render.Object) {
	cur := obj.Behavior().(*render.Stack)
	next := render.Stack{Alignment: s.Alignment, Expand: s.Expand}
	if *cur == next {
		return
	}
	*cur = next
	obj.MarkNeedsLayout()
}

// Positioned places its child inside a Stack by edges and extents.
type Positioned struct {
	element.Base
	Left, Top, Right, Bottom render.Opt
	Width, Height            render.Opt
	Child                    element.Component
}

func (p Positioned) ChildComponent() element.Component { return p.Child }

func (p Positioned) ApplyParentData(pd *render.ParentData) {
	pd.Position = &render.Position{
		Left:   p.Left,
		Top:    p.Top,
		Right:  p.Right,
		Bottom: p.Bottom,
		Width:  p.Width,
		Height: p.Height,
	}
}
