// Package element implements the element tree: the long-lived, mutable
// instantiation of a declarative component tree.
//
// Each Element holds the current Component for its position. When a parent
// rebuilds, the new components are reconciled against the existing
// elements: an element whose component has the same concrete type and key
// is updated in place and keeps its state; anything else is unmounted and
// replaced. Render-bearing elements own exactly one node in a render.Tree
// and keep it attached under the nearest render-bearing ancestor, in the
// order given by their slots.
//
// Element kinds form a closed set (see Kind). A component's kind is decided
// once, when its element is created, from the contracts it implements.
//
// Failures while building a subtree are contained at the element: the
// subtree is replaced by an error box and siblings are unaffected.
package element
