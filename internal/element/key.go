package element

import (
	"fmt"
	"reflect"
)

// Key is an optional identity for a component among its siblings.
// The zero Key means "no key"; two unset keys are equal.
type Key struct {
	v   any
	set bool
}

// printedKey holds the printed form of a key value that cannot be compared.
type printedKey string

// NewKey returns a key wrapping v. When T is an interface type whose dynamic
// value is not comparable, such as a slice held in an any, the key is the
// value's printed form instead.
func NewKey[T comparable](v T) Key {
	if x := any(v); x != nil && !reflect.ValueOf(x).Comparable() {
		return Key{v: printedKey(fmt.Sprintf("%T:%v", x, x)), set: true}
	}
	return Key{v: v, set: true}
}

// IsZero reports whether the key is unset.
func (k Key) IsZero() bool {
	return !k.set
}

// Equal reports whether two keys identify the same component.
func (k Key) Equal(o Key) bool {
	return k == o
}

func (k Key) String() string {
	if !k.set {
		return "<no key>"
	}
	return fmt.Sprintf("[%v]", k.v)
}

// Base can be embedded in a component to supply its key.
type Base struct {
	ID Key
}

// Key returns the component's key.
func (b Base) Key() Key {
	return b.ID
}
