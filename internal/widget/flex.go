package widget

import (
	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/renderer/render"
)

// Row lays out its children left to right.
type Row struct {
	element.Base
	Main     render.MainAlign
	Cross    render.CrossAlign
	Gap      int
	Children []element.Component
}

func (r Row) ChildComponents() []element.Component { return r.Children }

func (r Row) CreateRenderObject(element.BuildContext) render.Behavior {
	return &render.Flex{Direction: render.Horizontal, Main: r.Main, Cross: r.Cross, Gap: r.Gap}
}

func (r Row) UpdateRenderObject(_ element.BuildContext, obj render.Object) {
	updateFlex(obj, render.Flex{Direction: render.Horizontal, Main: r.Main, Cross: r.Cross, Gap: r.Gap})
}

// Column lays out its children top to bottom.
type Column struct {
	element.Base
	Main     render.MainAlign
	Cross    render.CrossAlign
	Gap      int
	Children []element.Component
}

func (c Column) ChildComponents() []element.Component { return c.Children }

func (c Column) CreateRenderObject(element.BuildContext) render.Behavior {
	return &render.Flex{Direction: render.Vertical, Main: c.Main, Cross: c.Cross, Gap: c.Gap}
}

func (c Column) UpdateRenderObject(_ element.BuildContext, obj render.Object) {
	updateFlex(obj, render.Flex{Direction: render.Vertical, Main: c.Main, Cross: c.Cross, Gap: c.Gap})
}

func updateFlex(obj render.Object, next render.Flex) {
	cur := obj.Behavior().(*render.Flex)
	if *cur == next {
		return
	}
	*cur = next
	obj.MarkNeedsLayout()
}

// Flexible gives its child a share of the free space along the main axis
// of the enclosing Row or Column, proportional to Flex. A Loose child may
// be smaller than its share.
type Flexible struct {
	element.Base
	Flex  int
	Loose bool
	Child element.Component
}

// Expanded returns a Flexible that fills a single share.
func Expanded(child element.Component) Flexible {
	return Flexible{Flex: 1, Child: child}
}

func (f Flexible) ChildComponent() element.Component { return f.Child }

func (f Flexible) ApplyParentData(pd *render.ParentData) {
	pd.Flex = max(f.Flex, 1)
	pd.Fit = render.FitTight
	if f.Loose {
		pd.Fit = render.FitLoose
	}
}
