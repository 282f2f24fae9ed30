package element

import (
	"errors"

	"github.com/dshills/tessera/internal/renderer/buffer"
	"github.com/dshills/tessera/internal/renderer/canvas"
	"github.com/dshills/tessera/internal/renderer/render"
)

// harness wires a build owner to a render tree without a scheduler.
type harness struct {
	tree     *render.Tree
	owner    *BuildOwner
	requests int
}

func newHarness() *harness {
	h := &harness{tree: render.NewTree(nil)}
	h.owner = NewBuildOwner(h.tree, func() { h.requests++ })
	return h
}

// frame builds, lays out and paints into a fresh buffer.
func (h *harness) frame(w, ht int) *buffer.Buffer {
	h.owner.BuildScope()
	h.tree.Layout(h.tree.Root(), render.Tight(render.Size{Width: w, Height: ht}))
	buf := buffer.New(w, ht)
	h.tree.Paint(canvas.New(buf))
	return buf
}

// label is a leaf render component showing text.
type label struct {
	Base
	Text string
}

func (l label) CreateRenderObject(BuildContext) render.Behavior {
	return &render.Text{Content: l.Text}
}

func (l label) UpdateRenderObject(_ BuildContext, obj render.Object) {
	t := obj.Behavior().(*render.Text)
	if t.Content != l.Text {
		t.Content = l.Text
		obj.MarkNeedsLayout()
	}
}

// column is a multi-child render component.
type column struct {
	Base
	Items []Component
}

func (c column) ChildComponents() []Component { return c.Items }

func (column) CreateRenderObject(BuildContext) render.Behavior {
	return &render.Flex{Direction: render.Vertical}
}

func (column) UpdateRenderObject(BuildContext, render.Object) {}

// wrap is a stateless component that builds a label.
type wrap struct {
	Base
	Text string
}

func (w wrap) Build(BuildContext) Component { return label{Text: w.Text} }

// boom fails every build.
type boom struct {
	Base
	N int
}

func (boom) Build(BuildContext) Component { panic("kaboom") }

// counter is a stateful component.
type counter struct {
	Base
	Label string
}

func (counter) CreateState() State { return &counterState{} }

type counterState struct {
	ctx       BuildContext
	count     int
	inits     int
	updates   int
	disposed  bool
	initError error
}

func (s *counterState) InitState(ctx BuildContext) error {
	s.ctx = ctx
	s.inits++
	return s.initError
}

func (s *counterState) DidUpdateComponent(Component) { s.updates++ }

func (s *counterState) Dispose() { s.disposed = true }

func (s *counterState) Build(ctx BuildContext) Component {
	c := ctx.Component().(counter)
	return label{Text: c.Label}
}

// failingInit is a stateful component whose InitState returns an error.
type failingInit struct{ Base }

func (failingInit) CreateState() State {
	return &counterState{initError: errors.New("no config")}
}

// flexible annotates its child with a flex factor.
type flexible struct {
	Base
	Flex  int
	Inner Component
}

func (f flexible) ChildComponent() Component { return f.Inner }

func (f flexible) ApplyParentData(pd *render.ParentData) { pd.Flex = f.Flex }

// palette is an inherited component.
type palette struct {
	Base
	Name  string
	Inner Component
}

func (p palette) ChildComponent() Component { return p.Inner }

func (p palette) UpdateShouldNotify(old InheritedComponent) bool {
	return old.(palette).Name != p.Name
}

// swatch depends on the nearest palette.
type swatch struct{ Base }

func (swatch) Build(ctx BuildContext) Component {
	p, ok := DependOn[palette](ctx)
	if !ok {
		return label{Text: "none"}
	}
	return label{Text: p.Name}
}

// plain ignores the palette.
type plain struct{ Base }

func (plain) Build(BuildContext) Component { return label{Text: "plain"} }

// notAComponent implements no component contract.
type notAComponent struct{ Base }
