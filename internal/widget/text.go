package widget

import (
	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/renderer/core"
	"github.com/dshills/tessera/internal/renderer/render"
)

// Text displays a string in the nearest Theme's text style. An explicit
// Style is layered over it.
type Text struct {
	element.Base
	Content string
	Style   *core.Style
	Wrap    bool
	Align   render.Align
}

// NewText returns a Text showing s.
func NewText(s string) Text { return Text{Content: s} }

// Styled returns a Text showing s in style.
func Styled(s string, style core.Style) Text { return Text{Content: s, Style: &style} }

func (t Text) style(ctx element.BuildContext) core.Style {
	base := ThemeOf(ctx).Text
	if t.Style != nil {
		return t.Style.Over(base)
	}
	return base
}

func (t Text) CreateRenderObject(ctx element.BuildContext) render.Behavior {
	return &render.Text{Content: t.Content, Style: t.style(ctx), Wrap: t.Wrap, Align: t.Align}
}

func (t Text) UpdateRenderObject(ctx element.BuildContext, obj render.Object) {
	rt := obj.Behavior().(*render.Text)
	style := t.style(ctx)
	switch {
	case rt.Content != t.Content || rt.Wrap != t.Wrap:
		rt.Content, rt.Wrap, rt.Style, rt.Align = t.Content, t.Wrap, style, t.Align
		obj.MarkNeedsLayout()
	case !rt.Style.Equals(style) || rt.Align != t.Align:
		rt.Style, rt.Align = style, t.Align
		obj.MarkNeedsPaint()
	}
}
