package element

import (
	"reflect"

	"github.com/dshills/tessera/internal/renderer/render"
)

// Component is an immutable description of part of the UI.
//
// Components are compared by concrete type and key to decide whether an
// element can be reused, and by value to decide whether an update can be
// skipped. A component may implement Equal(Component) bool; otherwise
// comparable values are compared with ==.
type Component interface {
	Key() Key
}

// StatelessComponent builds its subtree from its own fields and inherited
// data.
type StatelessComponent interface {
	Component
	Build(ctx BuildContext) Component
}

// StatefulComponent creates a State that outlives rebuilds of the component.
type StatefulComponent interface {
	Component
	CreateState() State
}

// State holds mutable data for a StatefulComponent. Builds read the current
// component through ctx.Component().
type State interface {
	Build(ctx BuildContext) Component
}

// Initializer is implemented by states that need setup once mounted.
// ctx stays valid for the life of the element. A returned error fails the
// element like a build panic.
type Initializer interface {
	InitState(ctx BuildContext) error
}

// ComponentUpdater is implemented by states that react to their component
// being replaced.
type ComponentUpdater interface {
	DidUpdateComponent(old Component)
}

// DependencyListener is implemented by states that react to a change in an
// inherited component they depend on. It runs before the next build.
type DependencyListener interface {
	DidChangeDependencies()
}

// Disposer is implemented by states that release resources on unmount.
type Disposer interface {
	Dispose()
}

// RenderComponent owns a render object. A RenderComponent that is neither a
// SingleChildRenderComponent nor a MultiChildRenderComponent is a leaf.
type RenderComponent interface {
	Component
	CreateRenderObject(ctx BuildContext) render.Behavior
	UpdateRenderObject(ctx BuildContext, obj render.Object)
}

// SingleChildRenderComponent owns a render object with at most one child.
type SingleChildRenderComponent interface {
	RenderComponent
	ChildComponent() Component
}

// MultiChildRenderComponent owns a render object with a list of children.
type MultiChildRenderComponent interface {
	RenderComponent
	ChildComponents() []Component
}

// ParentDataComponent annotates the render objects below it with parent
// data for the nearest render ancestor, without building anything itself.
type ParentDataComponent interface {
	Component
	ChildComponent() Component
	ApplyParentData(pd *render.ParentData)
}

// InheritedComponent exposes data to descendants that look it up with
// DependOn. When it is replaced and UpdateShouldNotify reports true, every
// dependent rebuilds.
type InheritedComponent interface {
	Component
	ChildComponent() Component
	UpdateShouldNotify(old InheritedComponent) bool
}

// Kind is the closed set of element kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindRoot
	KindStateless
	KindStateful
	KindParentData
	KindInherited
	KindRenderLeaf
	KindRenderSingle
	KindRenderMulti
)

var kindNames = [...]string{
	KindInvalid:      "invalid",
	KindRoot:         "root",
	KindStateless:    "stateless",
	KindStateful:     "stateful",
	KindParentData:   "parent-data",
	KindInherited:    "inherited",
	KindRenderLeaf:   "render-leaf",
	KindRenderSingle: "render-single",
	KindRenderMulti:  "render-multi",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsRender reports whether elements of this kind own a render object.
func (k Kind) IsRender() bool {
	switch k {
	case KindRoot, KindRenderLeaf, KindRenderSingle, KindRenderMulti:
		return true
	default:
		return false
	}
}

// KindOf classifies a component. Annotating contracts are checked before
// render contracts, and render contracts before build contracts.
func KindOf(c Component) Kind {
	switch c.(type) {
	case ParentDataComponent:
		return KindParentData
	case InheritedComponent:
		return KindInherited
	case MultiChildRenderComponent:
		return KindRenderMulti
	case SingleChildRenderComponent:
		return KindRenderSingle
	case RenderComponent:
		return KindRenderLeaf
	case StatefulComponent:
		return KindStateful
	case StatelessComponent:
		return KindStateless
	default:
		return KindInvalid
	}
}

// CanUpdate reports whether an element showing old can be updated to show
// next: both must have the same concrete type and equal keys.
func CanUpdate(old, next Component) bool {
	return reflect.TypeOf(old) == reflect.TypeOf(next) && old.Key().Equal(next.Key())
}

type equaler interface {
	Equal(Component) bool
}

// Equal reports whether two components describe the same thing.
// Values of incomparable types are never equal unless they implement Equal.
// A panicking Equal method reports false, so the element updates and its
// build runs under the usual failure handling.
func Equal(a, b Component) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	if e, ok := a.(equaler); ok {
		return e.Equal(b)
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || ta == nil || !ta.Comparable() {
		return false
	}
	// Interface fields may still hold incomparable values.
	return a == b
}
