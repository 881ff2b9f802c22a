package compose

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{0, 0, 0, 0}
)

// ColorFromU32 unpacks a color stored as 0xRRGGBBAA.
func ColorFromU32(v uint32) Color {
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}
}

// ToU32 packs the color as 0xRRGGBBAA. Components are clamped and rounded to
// the nearest 8-bit value, so ColorFromU32(v).ToU32() == v for every v.
func (c Color) ToU32() uint32 {
	return uint32(channel(c.R))<<24 | uint32(channel(c.G))<<16 | uint32(channel(c.B))<<8 | uint32(channel(c.A))
}

// Hex returns the opaque part of the color as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// SVGAttrs returns fill or stroke attributes for the color, e.g.
// `fill="#ff0000" fill-opacity="0.5"`. prop is "fill" or "stroke".
func (c Color) SVGAttrs(prop string) string {
	return fmt.Sprintf(`%s="%s" %s-opacity="%s"`, prop, c.Hex(), prop, Num(math.Round(clamp01(c.A)*1000)/1000))
}

// ToCSS returns the color in CSS rgba() notation.
func (c Color) ToCSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", channel(c.R), channel(c.G), channel(c.B), Num(math.Round(clamp01(c.A)*1000)/1000))
}

// String returns the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", c.ToU32())
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa notation, or a packed
// 0xRRGGBBAA integer.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse color %q", s)
		}
		return ColorFromU32(uint32(v)), nil
	}
	alpha := 1.0
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse color %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return Color{}, errors.New(errors.ErrCodeInvalidInput, "parse color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse color %q", s)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func channel(f float64) uint8 {
	return uint8(math.Round(clamp01(f) * 255))
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
