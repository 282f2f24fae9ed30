// Package pipeline drives frames: it owns the render tree's dirty
// registries and runs build, layout, paint and flush when a visual update
// has been requested.
//
// A frame has four phases:
//
//  1. Build: dirty elements rebuild, shallowest first.
//  2. Layout: dirty render objects lay out again, shallowest first, until
//     none remain. The root is constrained tightly to the terminal size.
//  3. Paint: the tree paints from the root into a fresh buffer; clean
//     repaint boundaries replay their recordings.
//  4. Flush: the buffer is diffed against the previous frame and the
//     changes are written to the backend in one write.
//
// A frame in which nothing is dirty, no resize is pending and a previous
// frame exists is skipped entirely.
package pipeline
