package app

import (
	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/settings"
)

// ColorPicker is a fixed-size palette with one selected entry.
type ColorPicker struct {
	properties
	selected *Prop[uint32]
	colors   []compose.Color
}

// NewColorPicker returns a picker with size slots, initialised from
// defaults. Missing defaults are black.
func NewColorPicker(size int, defaults ...compose.Color) *ColorPicker {
	p := &ColorPicker{colors: make([]compose.Color, size)}
	for i := range p.colors {
		p.colors[i] = compose.Black
	}
	copy(p.colors, defaults)
	p.selected = NewProp[uint32]("selected", 0).WithCheck(func(v uint32) error {
		if int(v) >= len(p.colors) {
			return errors.OutOfRange("selected color", int(v), len(p.colors))
		}
		return nil
	})
	p.properties = newProperties(p.selected)
	return p
}

// Size returns the number of palette slots.
func (p *ColorPicker) Size() int { return len(p.colors) }

func (p *ColorPicker) Selected() uint32 { return p.selected.Get() }

func (p *ColorPicker) SetSelected(i uint32) error { return p.selected.Set(i) }

// SelectedColor returns the color of the selected slot.
func (p *ColorPicker) SelectedColor() compose.Color {
	return p.colors[p.selected.Get()]
}

// SetColor replaces the color in slot i.
func (p *ColorPicker) SetColor(i int, c compose.Color) error {
	if i < 0 || i >= len(p.colors) {
		return errors.OutOfRange("color slot", i, len(p.colors))
	}
	p.colors[i] = c
	return nil
}

// LoadColors fills the palette from colors in order. Extra colors are
// ignored and slots without a color keep their value.
func (p *ColorPicker) LoadColors(colors []compose.Color) {
	copy(p.colors, colors)
}

// FetchAllColors returns a copy of the palette.
func (p *ColorPicker) FetchAllColors() []compose.Color {
	return append([]compose.Color(nil), p.colors...)
}

// MarkerPage configures the marker pen.
type MarkerPage struct {
	ColorPicker *ColorPicker
}

// BrushPage configures the brush pen.
type BrushPage struct {
	ColorPicker *ColorPicker
}

// ShaperPage configures shapes: stroke and fill colors.
type ShaperPage struct {
	StrokeColorPicker *ColorPicker
	FillColorPicker   *ColorPicker
}

// PensSidebar holds the pen configuration pages.
type PensSidebar struct {
	MarkerPage *MarkerPage
	BrushPage  *BrushPage
	ShaperPage *ShaperPage
}

// NewPensSidebar returns a sidebar with palettes at the schema defaults.
func NewPensSidebar() *PensSidebar {
	schema := settings.DefaultSchema()
	palette := func(key string, size int) *ColorPicker {
		var defaults []compose.Color
		if k, ok := schema.Lookup(key); ok {
			defaults = settings.UnpackColors(k.Default.([]uint32))
		}
		return NewColorPicker(size, defaults...)
	}
	return &PensSidebar{
		MarkerPage: &MarkerPage{ColorPicker: palette(settings.MarkerColors, settings.PaletteSize)},
		BrushPage:  &BrushPage{ColorPicker: palette(settings.BrushColors, settings.PaletteSize)},
		ShaperPage: &ShaperPage{
			StrokeColorPicker: palette(settings.ShaperColors, settings.ShaperPaletteSize),
			FillColorPicker:   palette(settings.ShaperFills, settings.ShaperPaletteSize),
		},
	}
}
