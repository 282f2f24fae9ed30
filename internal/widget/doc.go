// Package widget provides the primitive components applications compose:
// Text, Box, Row, Column, Flexible, Stack, Positioned, RepaintBoundary and
// Theme.
package widget
