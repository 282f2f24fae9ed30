package element

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/tessera/internal/renderer/render"
)

// Lifecycle is the mount state of an element.
type Lifecycle uint8

const (
	Initial Lifecycle = iota
	Active
	Defunct
)

func (l Lifecycle) String() string {
	switch l {
	case Initial:
		return "initial"
	case Active:
		return "active"
	case Defunct:
		return "defunct"
	default:
		return "unknown"
	}
}

// Slot is an element's position among its siblings. Prev is the sibling
// before it; render objects are inserted after Prev's render object.
type Slot struct {
	Index int
	Prev  *Element
}

// BuildContext is the handle components and states use to reach their
// element during and after a build.
type BuildContext interface {
	// Component returns the element's current component.
	Component() Component
	// Depth returns the distance from the root element.
	Depth() int
	// Mounted reports whether the element is active.
	Mounted() bool
	// SetState runs fn and schedules a rebuild. Calls after unmount are
	// logged and return ErrNotMounted without running fn.
	SetState(fn func()) error
	// MarkNeedsBuild schedules a rebuild.
	MarkNeedsBuild()

	element() *Element
}

var errNilState = errors.New("CreateState returned nil")

var errNilRenderObject = errors.New("CreateRenderObject returned nil")

// Element is a node of the element tree. Elements are created and managed
// by a BuildOwner; users see them through BuildContext.
type Element struct {
	kind      Kind
	owner     *BuildOwner
	component Component
	parent    *Element
	slot      Slot
	depth     int
	lifecycle Lifecycle
	children  []*Element

	state State
	node  render.NodeID
	err   error

	dirty       bool
	inDirtyList bool
	depsChanged bool
	builds      int

	dependencies map[*Element]struct{}
	dependents   map[*Element]struct{}
}

func newElement(c Component, owner *BuildOwner) *Element {
	return &Element{kind: KindOf(c), owner: owner, component: c}
}

// Kind returns the element kind.
func (e *Element) Kind() Kind { return e.kind }

// Component returns the current component.
func (e *Element) Component() Component { return e.component }

// Parent returns the parent element, or nil for the root.
func (e *Element) Parent() *Element { return e.parent }

// Slot returns the element's slot.
func (e *Element) Slot() Slot { return e.slot }

// Depth returns the distance from the root element.
func (e *Element) Depth() int { return e.depth }

// Mounted reports whether the element is active.
func (e *Element) Mounted() bool { return e.lifecycle == Active }

// Lifecycle returns the element's lifecycle state.
func (e *Element) Lifecycle() Lifecycle { return e.lifecycle }

// Children returns a copy of the child elements.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// State returns the state of a stateful element.
func (e *Element) State() State { return e.state }

// RenderNode returns the render object owned by this element, or by the
// nearest render-bearing descendant for component and proxy elements.
func (e *Element) RenderNode() render.NodeID { return e.renderNode() }

// Err returns the build failure of this element, if any. Failures are
// sticky for the life of the element.
func (e *Element) Err() error { return e.err }

// BuildCount returns how many times the element has been built or updated.
func (e *Element) BuildCount() int { return e.builds }

// Dirty reports whether the element is waiting to be rebuilt.
func (e *Element) Dirty() bool { return e.dirty }

func (e *Element) element() *Element { return e }

func (e *Element) String() string {
	return fmt.Sprintf("%s(%T)", e.kind, e.component)
}

// SetState runs fn and schedules a rebuild.
func (e *Element) SetState(fn func()) error {
	if e.lifecycle != Active {
		e.owner.logger.Warn("setState on %s element %T after unmount ignored", e.lifecycle, e.component)
		return fmt.Errorf("setState on %T: %w", e.component, ErrNotMounted)
	}
	if fn != nil {
		fn()
	}
	e.MarkNeedsBuild()
	return nil
}

// MarkNeedsBuild schedules a rebuild. The owner is asked for a frame every
// time, even if the element is already dirty.
func (e *Element) MarkNeedsBuild() {
	if e.lifecycle != Active {
		return
	}
	e.dirty = true
	e.owner.scheduleBuildFor(e)
}

func (e *Element) child() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

func (e *Element) setChild(c *Element) {
	switch {
	case c == nil:
		e.children = e.children[:0]
	case len(e.children) == 0:
		e.children = append(e.children, c)
	default:
		e.children[0] = c
	}
}

// renderNode finds the render object that represents this element in its
// render parent.
func (e *Element) renderNode() render.NodeID {
	for cur := e; cur != nil; cur = cur.child() {
		if cur.kind.IsRender() {
			return cur.node
		}
	}
	return 0
}

func (e *Element) renderAncestor() *Element {
	for p := e.parent; p != nil; p = p.parent {
		if p.kind.IsRender() {
			return p
		}
	}
	return nil
}

// anchorFor returns the render object a node in slot is inserted after:
// the render object of the nearest previous sibling that has one.
func anchorFor(slot Slot) render.NodeID {
	for p := slot.Prev; p != nil; p = p.slot.Prev {
		if id := p.renderNode(); id != 0 {
			return id
		}
	}
	return 0
}

func (e *Element) fail(err error) {
	if e.err == nil {
		e.err = err
	}
	e.owner.logger.Warn("build failed: %v", err)
}
