package element

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/dshills/tessera/internal/renderer/render"
)

// Element tree errors.
var (
	// ErrBuildFailed matches every BuildError.
	ErrBuildFailed = errors.New("build failed")

	// ErrUnsupportedComponent indicates a component implementing none of
	// the component contracts.
	ErrUnsupportedComponent = errors.New("unsupported component")

	// ErrNotMounted indicates an operation on an element that is not
	// active.
	ErrNotMounted = errors.New("element not mounted")
)

// BuildError records a failure while producing a component's subtree.
type BuildError struct {
	Component string // Concrete type of the failing component
	Phase     string // "build", "createState", "initState", ...
	Err       error
}

func (e *BuildError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s: %v", e.Component, e.Phase, e.Err)
}

func (e *BuildError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes every BuildError match ErrBuildFailed.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuildFailed
}

// guard runs fn and converts a panic into a BuildError.
func guard(c Component, phase string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &BuildError{
				Component: fmt.Sprintf("%T", c),
				Phase:     phase,
				Err:       render.NewRecoveredPanicError(r, string(debug.Stack())),
			}
		}
	}()
	if ferr := fn(); ferr != nil {
		return &BuildError{Component: fmt.Sprintf("%T", c), Phase: phase, Err: ferr}
	}
	return nil
}

// errorComponent replaces a subtree whose build failed.
type errorComponent struct {
	message string
	stack   string
}

func newErrorComponent(err error) errorComponent {
	return errorComponent{message: err.Error(), stack: render.StackOf(err)}
}

func (errorComponent) Key() Key { return Key{} }

func (e errorComponent) CreateRenderObject(BuildContext) render.Behavior {
	return &render.ErrorBox{Message: e.message, Stack: e.stack}
}

func (e errorComponent) UpdateRenderObject(_ BuildContext, obj render.Object) {
	obj.SetBehavior(&render.ErrorBox{Message: e.message, Stack: e.stack})
}
