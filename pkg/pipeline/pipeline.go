// Package pipeline exports sheets to files.
//
// The export pipeline turns a [sheet.Sheet] into artifacts in one or more
// formats:
//
//   - svg:  the sheet as a standalone SVG document
//   - png:  the sheet rasterized at a scale factor
//   - pdf:  the SVG converted with rsvg-convert
//   - json: the persisted sheet document
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Export(ctx, s, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Scale:   2,
//	})
//	png := result.Artifacts["png"]
//
// Artifacts are cached by the content hash of the sheet document and the
// export options, so exporting an unchanged sheet again is served from the
// cache.
package pipeline

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchnote/pkg/cache"
	"github.com/matzehuels/sketchnote/pkg/errors"
)

// DefaultScale is the PNG scale factor when none is given.
const DefaultScale = 1.0

// MaxScale bounds the PNG scale factor.
const MaxScale = 8.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options configures an export.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of an export.
type Result struct {
	// SheetHash is the content hash of the exported sheet document.
	SheetHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains export statistics.
type Stats struct {
	Strokes    int
	RenderTime time.Duration
}

// CacheInfo tracks which formats were served from the cache.
type CacheInfo struct {
	Hits      []string
	RenderHit bool // every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, e.g. "svg,png".
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no output format given")
	}
	return out, nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if !(o.Scale > 0) || o.Scale > MaxScale || math.IsNaN(o.Scale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale %v must be in (0, %v]", o.Scale, MaxScale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
