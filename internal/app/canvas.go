package app

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/settings"
	"github.com/matzehuels/sketchnote/pkg/sheet"
	"github.com/matzehuels/sketchnote/pkg/stroke"
)

// Zoom limits of the canvas.
const (
	ZoomMin     = 0.1
	ZoomMax     = 8.0
	ZoomDefault = 1.0
)

// Canvas shows a sheet and owns it.
type Canvas struct {
	properties
	touchDrawing      *Prop[bool]
	endlessSheet      *Prop[bool]
	formatBorders     *Prop[bool]
	sheetMargin       *Prop[float64]
	pdfImportWidth    *Prop[float64]
	pdfImportAsVector *Prop[bool]

	sheet  *sheet.Sheet
	zoom   float64
	offset geom.Vector2
	logger *log.Logger
}

func NewCanvas(logger *log.Logger) *Canvas {
	if logger == nil {
		logger = log.Default()
	}
	c := &Canvas{
		touchDrawing:      NewProp("touch-drawing", false),
		endlessSheet:      NewProp("endless-sheet", true),
		formatBorders:     NewProp("format-borders", true),
		sheetMargin:       NewProp("sheet-margin", 32.0).WithCheck(nonNegative("sheet-margin")),
		pdfImportWidth:    NewProp("pdf-import-width", 50.0).WithCheck(percent("pdf-import-width")),
		pdfImportAsVector: NewProp("pdf-import-as-vector", true),
		sheet:             sheet.New(),
		zoom:              ZoomDefault,
		logger:            logger,
	}
	c.properties = newProperties(c.touchDrawing, c.endlessSheet, c.formatBorders,
		c.sheetMargin, c.pdfImportWidth, c.pdfImportAsVector)
	c.sheet.Endless = c.endlessSheet.Get()
	c.endlessSheet.OnChange(func(v bool) { c.sheet.Endless = v })
	return c
}

func nonNegative(name string) func(float64) error {
	return func(v float64) error {
		if !(v >= 0) {
			return errors.New(errors.ErrCodeInvalidInput, "%s must not be negative, got %v", name, v)
		}
		return nil
	}
}

func percent(name string) func(float64) error {
	return func(v float64) error {
		if !(v > 0 && v <= 100) {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be in (0, 100], got %v", name, v)
		}
		return nil
	}
}

func (c *Canvas) TouchDrawing() bool      { return c.touchDrawing.Get() }
func (c *Canvas) EndlessSheet() bool      { return c.endlessSheet.Get() }
func (c *Canvas) FormatBorders() bool     { return c.formatBorders.Get() }
func (c *Canvas) SheetMargin() float64    { return c.sheetMargin.Get() }
func (c *Canvas) PDFImportWidth() float64 { return c.pdfImportWidth.Get() }
func (c *Canvas) PDFImportAsVector() bool { return c.pdfImportAsVector.Get() }

// Sheet returns the sheet shown on the canvas.
func (c *Canvas) Sheet() *sheet.Sheet { return c.sheet }

// SetSheet replaces the shown sheet. The endless-sheet property follows the
// new sheet.
func (c *Canvas) SetSheet(s *sheet.Sheet) {
	c.sheet = s
	if err := c.endlessSheet.Set(s.Endless); err != nil {
		c.logger.Error("failed to sync endless-sheet", "err", err)
	}
}

func (c *Canvas) Zoom() float64 { return c.zoom }

// SetZoom changes the zoom and regenerates render nodes for it.
func (c *Canvas) SetZoom(z float64) error {
	if !(z >= ZoomMin && z <= ZoomMax) {
		return errors.New(errors.ErrCodeInvalidInput, "zoom %v out of range [%v, %v]", z, ZoomMin, ZoomMax)
	}
	if z == c.zoom {
		return nil
	}
	c.zoom = z
	c.RegenerateRenderNodes()
	return nil
}

// Offset is the sheet coordinate at the top left of the viewport.
func (c *Canvas) Offset() geom.Vector2 { return c.offset }

func (c *Canvas) SetOffset(v geom.Vector2) { c.offset = v }

// importPos is where new content is placed: just inside the viewport.
func (c *Canvas) importPos() geom.Vector2 {
	return c.offset.Add(geom.V(stroke.OffsetXDefault, stroke.OffsetYDefault))
}

// ImportSVG places an SVG document in the viewport.
func (c *Canvas) ImportSVG(svg string) (uuid.UUID, error) {
	v, err := stroke.ImportFromSVG(svg, c.importPos())
	if err != nil {
		return uuid.Nil, err
	}
	return c.insert(v), nil
}

// ImportBitmap places an encoded raster image in the viewport.
func (c *Canvas) ImportBitmap(data []byte) (uuid.UUID, error) {
	b, err := stroke.ImportFromBytes(data, c.importPos())
	if err != nil {
		return uuid.Nil, err
	}
	return c.insert(b), nil
}

// Import places SVG or bitmap data in the viewport, detecting the type.
func (c *Canvas) Import(data []byte) (uuid.UUID, error) {
	id, err := c.sheet.ImportData(data, c.importPos())
	if err != nil {
		return uuid.Nil, err
	}
	if st, ok := c.sheet.Get(id); ok {
		st.UpdateRenderNode(c.zoom)
	}
	return id, nil
}

func (c *Canvas) insert(st stroke.Stroke) uuid.UUID {
	id := c.sheet.Insert(st)
	st.UpdateRenderNode(c.zoom)
	c.logger.Debug("imported stroke", "id", id, "kind", st.Kind(), "bounds", st.Bounds())
	return id
}

// RegenerateRenderNodes refreshes every stroke's render node at the current
// zoom.
func (c *Canvas) RegenerateRenderNodes() {
	c.sheet.RegenerateRenderNodes(c.zoom)
}

// LoadSheetSettings applies the persisted page format and background.
func (c *Canvas) LoadSheetSettings(s *settings.Settings) error {
	width, err := s.Float(settings.SheetFormatWidth)
	if err != nil {
		return err
	}
	height, err := s.Float(settings.SheetFormatHeight)
	if err != nil {
		return err
	}
	dpi, err := s.Float(settings.SheetFormatDPI)
	if err != nil {
		return err
	}
	format := sheet.Format{Width: width, Height: height, DPI: dpi, Orientation: sheet.Portrait}
	if width > height {
		format.Orientation = sheet.Landscape
	}
	if err := format.Validate(); err != nil {
		return err
	}

	colorStr, err := s.String(settings.SheetBackgroundColor)
	if err != nil {
		return err
	}
	color, err := compose.ParseColor(colorStr)
	if err != nil {
		return err
	}
	patternStr, err := s.String(settings.SheetBackgroundPattern)
	if err != nil {
		return err
	}
	pattern, err := sheet.ParsePattern(patternStr)
	if err != nil {
		return err
	}

	c.sheet.Format = format
	c.sheet.Background.Color = color
	c.sheet.Background.Pattern = pattern
	return nil
}

// SaveSheetSettings stores the page format and background.
func (c *Canvas) SaveSheetSettings(s *settings.Settings) error {
	values := []struct {
		key string
		v   any
	}{
		{settings.SheetFormatWidth, c.sheet.Format.Width},
		{settings.SheetFormatHeight, c.sheet.Format.Height},
		{settings.SheetFormatDPI, c.sheet.Format.DPI},
		{settings.SheetBackgroundColor, c.sheet.Background.Color.String()},
		{settings.SheetBackgroundPattern, string(c.sheet.Background.Pattern)},
	}
	for _, kv := range values {
		if err := s.SetValue(kv.key, kv.v); err != nil {
			return err
		}
	}
	return nil
}
