// Package core provides the screen model shared by the rendering pipeline:
// styled character cells, colors and screen rectangles.
//
// This package has no dependencies on the rest of the renderer so that the
// buffer, canvas, render and backend packages can all share it without
// import cycles.
package core
