package sheet

import (
	"math"

	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
)

// Orientation of the page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Paper sizes in millimeters, portrait.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
	mmPerInch  = 25.4
)

// DefaultDPI is the resolution document units are measured in.
const DefaultDPI = 96.0

// Format is the page size in document units (pixels at DPI).
type Format struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	DPI         float64     `json:"dpi"`
	Orientation Orientation `json:"orientation"`
}

// DefaultFormat returns an A4 portrait page at DefaultDPI.
func DefaultFormat() Format {
	return Format{
		Width:       math.Round(A4WidthMM/mmPerInch*DefaultDPI*100) / 100,
		Height:      math.Round(A4HeightMM/mmPerInch*DefaultDPI*100) / 100,
		DPI:         DefaultDPI,
		Orientation: Portrait,
	}
}

// Validate reports whether the format describes a usable page.
func (f Format) Validate() error {
	if !(f.Width > 0) || !(f.Height > 0) || math.IsInf(f.Width, 0) || math.IsInf(f.Height, 0) {
		return errors.New(errors.ErrCodeInvalidFormat, "page size %vx%v must be positive", f.Width, f.Height)
	}
	if !(f.DPI > 0) {
		return errors.New(errors.ErrCodeInvalidFormat, "dpi %v must be positive", f.DPI)
	}
	switch f.Orientation {
	case Portrait, Landscape, "":
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown orientation %q", f.Orientation)
	}
	return nil
}

// Size returns the page size as a vector.
func (f Format) Size() geom.Vector2 { return geom.V(f.Width, f.Height) }

// Pattern is the background decoration of a sheet.
type Pattern string

const (
	PatternNone  Pattern = "none"
	PatternLines Pattern = "lines"
	PatternGrid  Pattern = "grid"
	PatternDots  Pattern = "dots"
)

// Patterns lists the known background patterns.
var Patterns = []Pattern{PatternNone, PatternLines, PatternGrid, PatternDots}

// ParsePattern validates a pattern name.
func ParsePattern(s string) (Pattern, error) {
	for _, p := range Patterns {
		if string(p) == s {
			return p, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown background pattern %q", s)
}

// Background describes how the sheet area behind strokes is painted.
type Background struct {
	Color        compose.Color `json:"color"`
	Pattern      Pattern       `json:"pattern"`
	PatternColor compose.Color `json:"pattern_color"`
	PatternSize  geom.Vector2  `json:"pattern_size"`
}

// DefaultBackground is white with a light blue dot grid.
func DefaultBackground() Background {
	return Background{
		Color:        compose.White,
		Pattern:      PatternDots,
		PatternColor: compose.ColorFromU32(0x99c1f1ff),
		PatternSize:  geom.V(32, 32),
	}
}

// genSVG draws the background over bounds.
func (b Background) genSVG(bounds geom.AABB) string {
	var out []byte
	out = append(out, `<rect x="`+compose.Num(bounds.Mins.X)+`" y="`+compose.Num(bounds.Mins.Y)+
		`" width="`+compose.Num(bounds.Width())+`" height="`+compose.Num(bounds.Height())+`" `+b.Color.SVGAttrs("fill")+"/>\n"...)

	step := b.PatternSize
	if b.Pattern == PatternNone || b.Pattern == "" || !(step.X > 0) || !(step.Y > 0) {
		return string(out)
	}
	stroke := b.PatternColor.SVGAttrs("stroke")
	line := func(x1, y1, x2, y2 float64) {
		out = append(out, `<line x1="`+compose.Num(x1)+`" y1="`+compose.Num(y1)+`" x2="`+compose.Num(x2)+`" y2="`+compose.Num(y2)+`" `+stroke+` stroke-width="1"/>`+"\n"...)
	}
	switch b.Pattern {
	case PatternLines, PatternGrid:
		for y := bounds.Mins.Y + step.Y; y < bounds.Maxs.Y; y += step.Y {
			line(bounds.Mins.X, y, bounds.Maxs.X, y)
		}
		if b.Pattern == PatternGrid {
			for x := bounds.Mins.X + step.X; x < bounds.Maxs.X; x += step.X {
				line(x, bounds.Mins.Y, x, bounds.Maxs.Y)
			}
		}
	case PatternDots:
		fill := b.PatternColor.SVGAttrs("fill")
		for y := bounds.Mins.Y + step.Y; y < bounds.Maxs.Y; y += step.Y {
			for x := bounds.Mins.X + step.X; x < bounds.Maxs.X; x += step.X {
				out = append(out, `<circle cx="`+compose.Num(x)+`" cy="`+compose.Num(y)+`" r="1.5" `+fill+"/>\n"...)
			}
		}
	}
	return string(out)
}
