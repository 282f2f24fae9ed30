package widget

import (
	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/core"
	"github.com/dshills/tessera/internal/renderer/render"
)

// Box sizes, pads, borders and fills around an optional child. With both
// Width and Height set, changes inside the box never lay out anything
// outside it.
type Box struct {
	element.Base
	Width, Height render.Opt
	Padding       render.Insets
	Border        canvas.BorderStyle
	Title         string
	// BorderStyle defaults to the theme's border style.
	BorderStyle *core.Style
	Background  *core.Color
	Expand      bool
	Child       element.Component
}

func (b Box) ChildComponent() element.Component { return b.Child }

func (b Box) behavior(ctx element.BuildContext) *render.Box {
	style := ThemeOf(ctx).Border
	if b.BorderStyle != nil {
		style = *b.BorderStyle
	}
	var bg *core.Color
	if b.Background != nil {
		c := *b.Background
		bg = &c
	}
	return &render.Box{
		Width:      b.Width,
		Height:     b.Height,
		Padding:    b.Padding,
		Border:     b.Border,
		Title:      b.Title,
		Style:      style,
		Background: bg,
		Expand:     b.Expand,
	}
}

func (b Box) CreateRenderObject(ctx element.BuildContext) render.Behavior {
	return b.behavior(ctx)
}

func (b Box) UpdateRenderObject(ctx element.BuildContext, obj render.Object) {
	cur := obj.Behavior().(*render.Box)
	next := b.behavior(ctx)
	layout := cur.Width != next.Width || cur.Height != next.Height ||
		cur.Padding != next.Padding || cur.Border.IsZero() != next.Border.IsZero() ||
		cur.Expand != next.Expand
	paint := cur.Border != next.Border || cur.Title != next.Title ||
		!cur.Style.Equals(next.Style) || !sameColor(cur.Background, next.Background)
	if !layout && !paint {
		return
	}
	*cur = *next
	if layout {
		obj.MarkNeedsLayout()
	} else {
		obj.MarkNeedsPaint()
	}
}

func sameColor(a, b *core.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(*b)
}

// RepaintBoundary paints its child into a cached layer: repaints inside
// the child do not repaint anything outside it, and a clean layer is
// replayed without painting the child again.
type RepaintBoundary struct {
	element.Base
	Child element.Component
}

func (r RepaintBoundary) ChildComponent() element.Component { return r.Child }

func (RepaintBoundary) CreateRenderObject(element.BuildContext) render.Behavior {
	return &render.Layer{}
}

func (RepaintBoundary) UpdateRenderObject(element.BuildContext, render.Object) {}
