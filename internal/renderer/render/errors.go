package render

import (
	"errors"
	"fmt"
)

// Render tree errors.
var (
	// ErrNotChild indicates a layout or paint request for a node that is not
	// a child of the requesting node.
	ErrNotChild = errors.New("not a child")

	// ErrChildModel indicates an attach that the parent's child model does
	// not allow.
	ErrChildModel = errors.New("child model violation")

	// ErrDeadNode indicates a handle to a node that was destroyed.
	ErrDeadNode = errors.New("dead node")

	// ErrAttached indicates an attempt to attach a node that already has a
	// parent.
	ErrAttached = errors.New("node already attached")
)

// NodeError is an error tied to a node and a phase of the pipeline.
type NodeError struct {
	Node  NodeID
	Phase string // "attach", "layout", "paint", ...
	Err   error
}

func (e *NodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("render: %s node %s: %v", e.Phase, e.Node, e.Err)
}

func (e *NodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RecoveredPanicError wraps a panic value as an error.
// When the value is itself an error it is exposed through Unwrap.
type RecoveredPanicError struct {
	Value any
	Stack string
}

// NewRecoveredPanicError creates a new RecoveredPanicError.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{Value: value, Stack: stack}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *RecoveredPanicError) Unwrap() error {
	if e == nil {
		return nil
	}
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// StackOf returns the stack captured with err, if any.
func StackOf(err error) string {
	var p *RecoveredPanicError
	if errors.As(err, &p) {
		return p.Stack
	}
	return ""
}
