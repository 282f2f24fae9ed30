// Package render implements the layout tree.
//
// Render objects live in an arena owned by a Tree and are addressed by
// NodeID handles. A node's parent is stored as a NodeID, never as an owning
// reference, and a stale handle (one whose node was destroyed) is detected
// by a generation counter packed into the ID.
//
// Layout is two-phase: constraints flow down through Tree.Layout and
// LayoutContext.LayoutChild, sizes flow back up. Paint draws each node into
// a canvas at the offset its parent assigned during layout.
//
// What a node does is supplied by its Behavior. Optional capabilities are
// expressed as separate interfaces:
//
//	LayoutBoundary   size does not depend on children; relayout stops here
//	RepaintBoundary  paints into its own layer; repaint stops here
//
// Dirty tracking follows two rules that must hold even when a flag is
// already set: MarkNeedsLayout and MarkNeedsPaint always register the node
// with the Owner and always request a visual update.
package render
