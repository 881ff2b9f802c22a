// Package render turns stroke markup into raster render nodes and converts
// standalone SVG documents into exchange formats.
//
// # Render nodes
//
// A [Node] is the cached, regenerable raster representation of a stroke at a
// given scale factor. It is never persisted: strokes restore [DefaultNode]
// after decoding and regenerate on demand.
//
//	node, err := render.GenNodeForSVG(bounds, 2.0, svg)
//	node, err := render.GenNodeForImage(bounds, 2.0, img)
//
// SVG rasterization uses github.com/srwiley/oksvg on top of
// github.com/srwiley/rasterx. The document viewBox (or its declared size) is
// stretched onto the target bounds, which matches a wrapper element with
// preserveAspectRatio="none".
//
// # Format conversion
//
// [ToPNG] rasterizes a whole SVG document in-process. [ToPDF] uses the external
// rsvg-convert tool (from librsvg).
package render
