package settings

import (
	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
)

// PackColors packs colors into a tuple of exactly n values. A palette of
// any other length fails with INDEX_OUT_OF_RANGE.
func PackColors(colors []compose.Color, n int) ([]uint32, error) {
	if len(colors) != n {
		if len(colors) < n {
			return nil, errors.OutOfRange("palette", len(colors), len(colors))
		}
		return nil, errors.OutOfRange("palette tuple", len(colors)-1, n)
	}
	out := make([]uint32, n)
	for i, c := range colors {
		out[i] = c.ToU32()
	}
	return out, nil
}

// UnpackColors converts a tuple into colors, preserving order.
func UnpackColors(tuple []uint32) []compose.Color {
	out := make([]compose.Color, len(tuple))
	for i, v := range tuple {
		out[i] = compose.ColorFromU32(v)
	}
	return out
}
