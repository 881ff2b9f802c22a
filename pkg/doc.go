// Package pkg provides the core libraries of Sketchnote, a freehand
// note-taking app.
//
// # Overview
//
// A sheet is an ordered collection of strokes (imported vector and bitmap
// images) on a page format with a background. The pkg directory is organized
// into these areas:
//
//  1. Domain: [geom], [compose], [stroke] and [sheet]
//  2. Rendering: [render] (render nodes, raster and PDF conversion) and
//     [pipeline] (export with artifact caching)
//  3. Persistence: [settings] (typed app settings and bindings), [docstore]
//     (named sheets) and [cache] (rendered artifacts)
//  4. Support: [errors], [observability], [httputil] and [buildinfo]
//
// # Architecture
//
// The typical data flow of an export:
//
//	SVG / bitmap bytes
//	         ↓
//	    [stroke] (VectorImage / BitmapImage at a position)
//	         ↓
//	    [sheet] (ordered strokes + format + background)
//	         ↓
//	    [pipeline] (cache lookup, SVG composition, PNG/PDF conversion)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Import an image and export the sheet:
//
//	s := sheet.New()
//	if _, err := s.ImportData(svgBytes, geom.V(28, 28)); err != nil {
//	    return err
//	}
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Export(ctx, s, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//
// # Error Handling
//
// Errors carry a machine-readable [errors.Code]; use errors.Is(err, code) to
// branch on the failure class.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/geom
// [compose]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/compose
// [stroke]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/stroke
// [sheet]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/sheet
// [render]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/pipeline
// [settings]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/settings
// [docstore]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/docstore
// [cache]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/errors
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/errors#Code
// [observability]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sketchnote/pkg/buildinfo
package pkg
