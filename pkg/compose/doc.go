// Package compose builds the SVG fragments strokes emit and converts colors
// between their packed settings form and SVG attribute form.
//
// Strokes keep their markup without an XML prolog so that fragments can be
// nested. [WrapSVG] places such a fragment into a positioned <svg> element;
// [AddXMLHeader] is applied only when a standalone document is needed, for
// example right before rasterization or export.
//
// # Intrinsic size
//
// [IntrinsicSize] reads the width and height declared on the root element.
// Only absolute lengths count: percentages, missing attributes and a bare
// viewBox report ok=false, and callers fall back to their own default.
package compose
