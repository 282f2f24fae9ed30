package widget

import (
	"github.com/dshills/tessera/internal/element"
	"github.com/dshills/tessera/internal/renderer/core"
)

// ThemeData is the set of styles primitives fall back to.
type ThemeData struct {
	Text   core.Style
	Border core.Style
	Accent core.Style
	Muted  core.Style
}

// DefaultTheme is used when no Theme is above a component.
var DefaultTheme = ThemeData{
	Text:   core.DefaultStyle(),
	Border: core.DefaultStyle(),
	Accent: core.DefaultStyle().WithForeground(core.ColorCyan).Bold(),
	Muted:  core.DefaultStyle().Dim(),
}

// Theme provides ThemeData to its descendants. Components that read it
// with ThemeOf rebuild when the data changes.
type Theme struct {
	element.Base
	Data  ThemeData
	Child element.Component
}

func (t Theme) ChildComponent() element.Component { return t.Child }

func (t Theme) UpdateShouldNotify(old element.InheritedComponent) bool {
	o, ok := old.(Theme)
	return !ok || !sameTheme(o.Data, t.Data)
}

func sameTheme(a, b ThemeData) bool {
	return a.Text.Equals(b.Text) && a.Border.Equals(b.Border) &&
		a.Accent.Equals(b.Accent) && a.Muted.Equals(b.Muted)
}

// ThemeOf returns the nearest theme and registers ctx as its dependent.
func ThemeOf(ctx element.BuildContext) ThemeData {
	if t, ok := element.DependOn[Theme](ctx); ok {
		return t.Data
	}
	return DefaultTheme
}
