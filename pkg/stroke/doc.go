// Package stroke defines the drawable content of a sheet.
//
// Every element placed on a sheet implements [Stroke]: it has document-space
// bounds, can be moved and resized, emits itself as SVG and keeps a cached
// raster [render.Node] for display.
//
// # Imported images
//
// [VectorImage] wraps an imported SVG document. [BitmapImage] wraps an encoded
// PNG, JPEG, GIF, BMP, TIFF or WebP image. Both are created from their source
// data and a placement position:
//
//	vi, err := stroke.ImportFromSVG(svg, geom.V(28, 28))
//	bi, err := stroke.ImportFromBytes(pngData, geom.V(28, 28))
//
// # Render cache
//
// Mutators (Translate, Resize, SetSVGData) mark a stroke dirty. RenderNode
// regenerates the cached node lazily when the stroke is dirty or the scale
// changed. A failed regeneration is logged and the previous node is kept, so
// the display keeps showing the last good raster.
//
// # Persistence
//
// Strokes are stored in a tagged JSON envelope:
//
//	{"type": "vectorimage", "value": {...}}
//
// [Marshal] and [Unmarshal] resolve the type through a registry populated with
// [Register]. The render node is never persisted; decoded strokes start with
// [render.DefaultNode] and are dirty.
package stroke
