package settings

import "github.com/matzehuels/sketchnote/pkg/errors"

// Key names of the application schema.
const (
	ColorScheme            = "color-scheme"
	WorkspaceDir           = "workspace-dir"
	PenSounds              = "pen-sounds"
	TouchDrawing           = "touch-drawing"
	EndlessSheet           = "endless-sheet"
	FormatBorders          = "format-borders"
	SheetMargin            = "sheet-margin"
	PDFImportWidth         = "pdf-import-width"
	PDFImportAsVector      = "pdf-import-as-vector"
	MarkerSelectedColor    = "markerpage-selected-color"
	BrushSelectedColor     = "brushpage-selected-color"
	ShaperSelectedColor    = "shaperpage-selected-color"
	ShaperSelectedFill     = "shaperpage-selected-fill"
	MarkerColors           = "markerpage-colors"
	BrushColors            = "brushpage-colors"
	ShaperColors           = "shaperpage-colors"
	ShaperFills            = "shaperpage-fills"
	WindowWidth            = "window-width"
	WindowHeight           = "window-height"
	IsMaximized            = "is-maximized"
	SheetFormatWidth       = "sheet-format-width"
	SheetFormatHeight      = "sheet-format-height"
	SheetFormatDPI         = "sheet-format-dpi"
	SheetBackgroundColor   = "sheet-background-color"
	SheetBackgroundPattern = "sheet-background-pattern"
)

// Palette sizes of the pen pages.
const (
	PaletteSize       = 8
	ShaperPaletteSize = 2
)

// DefaultSchema returns the schema of the application settings.
func DefaultSchema() *Schema {
	return NewSchema(
		Key{Name: ColorScheme, Kind: KindString, Default: "default", Summary: "Color scheme: default, light or dark"},
		Key{Name: WorkspaceDir, Kind: KindString, Default: "", Summary: "Directory shown in the workspace browser"},
		Key{Name: PenSounds, Kind: KindBool, Default: false, Summary: "Play sounds while drawing"},
		Key{Name: TouchDrawing, Kind: KindBool, Default: false, Summary: "Draw with touch input"},
		Key{Name: EndlessSheet, Kind: KindBool, Default: true, Summary: "Grow the sheet to fit its content"},
		Key{Name: FormatBorders, Kind: KindBool, Default: true, Summary: "Show page borders"},
		Key{Name: SheetMargin, Kind: KindFloat, Default: 32.0, Summary: "Margin around the sheet in pixels"},
		Key{Name: PDFImportWidth, Kind: KindFloat, Default: 50.0, Summary: "Width of imported PDF pages in percent of the sheet"},
		Key{Name: PDFImportAsVector, Kind: KindBool, Default: true, Summary: "Import PDF pages as vector images"},
		Key{Name: MarkerSelectedColor, Kind: KindInt, Default: int64(0), Summary: "Selected marker color index", Check: indexBelow(PaletteSize)},
		Key{Name: BrushSelectedColor, Kind: KindInt, Default: int64(0), Summary: "Selected brush color index", Check: indexBelow(PaletteSize)},
		Key{Name: ShaperSelectedColor, Kind: KindInt, Default: int64(0), Summary: "Selected shape stroke color index", Check: indexBelow(ShaperPaletteSize)},
		Key{Name: ShaperSelectedFill, Kind: KindInt, Default: int64(0), Summary: "Selected shape fill index", Check: indexBelow(ShaperPaletteSize)},
		Key{Name: MarkerColors, Kind: KindTuple, Arity: PaletteSize, Summary: "Marker palette, packed 0xRRGGBBAA",
			Default: []uint32{0x000000ff, 0x1c71d8ff, 0x2ec27eff, 0xf5c211ff, 0xe66100ff, 0xc01c28ff, 0x813d9cff, 0x77767bff}},
		Key{Name: BrushColors, Kind: KindTuple, Arity: PaletteSize, Summary: "Brush palette, packed 0xRRGGBBAA",
			Default: []uint32{0x000000ff, 0x1c71d8ff, 0x2ec27eff, 0xf5c211ff, 0xe66100ff, 0xc01c28ff, 0x813d9cff, 0x77767bff}},
		Key{Name: ShaperColors, Kind: KindTuple, Arity: ShaperPaletteSize, Summary: "Shape stroke colors, packed 0xRRGGBBAA",
			Default: []uint32{0x000000ff, 0x1c71d8ff}},
		Key{Name: ShaperFills, Kind: KindTuple, Arity: ShaperPaletteSize, Summary: "Shape fills, packed 0xRRGGBBAA",
			Default: []uint32{0x00000000, 0x99c1f1ff}},
		Key{Name: WindowWidth, Kind: KindInt, Default: int64(960), Summary: "Last window width"},
		Key{Name: WindowHeight, Kind: KindInt, Default: int64(720), Summary: "Last window height"},
		Key{Name: IsMaximized, Kind: KindBool, Default: false, Summary: "Whether the window was maximized"},
		Key{Name: SheetFormatWidth, Kind: KindFloat, Default: 793.7, Summary: "Page width in pixels"},
		Key{Name: SheetFormatHeight, Kind: KindFloat, Default: 1122.52, Summary: "Page height in pixels"},
		Key{Name: SheetFormatDPI, Kind: KindFloat, Default: 96.0, Summary: "Page resolution"},
		Key{Name: SheetBackgroundColor, Kind: KindString, Default: "#ffffffff", Summary: "Sheet background color"},
		Key{Name: SheetBackgroundPattern, Kind: KindString, Default: "dots", Summary: "Background pattern: none, lines, grid or dots"},
	)
}

// indexBelow accepts palette indices in [0, n).
func indexBelow(n int) func(v any) error {
	return func(v any) error {
		i := v.(int64)
		if i < 0 || i >= int64(n) {
			return errors.OutOfRange("palette index", int(i), n)
		}
		return nil
	}
}
