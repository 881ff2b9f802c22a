package app

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/settings"
	"github.com/matzehuels/sketchnote/pkg/sheet"
	"github.com/matzehuels/sketchnote/pkg/stroke"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="40"><rect width="40" height="40" fill="red"/></svg>`

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCanvasImportAtViewport(t *testing.T) {
	c := NewCanvas(log.New(io.Discard))
	c.SetOffset(geom.V(100, 200))

	id, err := c.ImportSVG(squareSVG)
	if err != nil {
		t.Fatalf("ImportSVG: %v", err)
	}
	st, ok := c.Sheet().Get(id)
	if !ok {
		t.Fatal("stroke not in sheet")
	}
	want := geom.NewAABB(geom.V(128, 228), geom.V(168, 268))
	if st.Bounds() != want {
		t.Errorf("Bounds() = %v, want %v", st.Bounds(), want)
	}
	if st.(*stroke.VectorImage).Dirty() {
		t.Error("render node still dirty after import")
	}

	id, err = c.ImportBitmap(pngBytes(t, 3, 2))
	if err != nil {
		t.Fatalf("ImportBitmap: %v", err)
	}
	st, _ = c.Sheet().Get(id)
	if st.Kind() != stroke.KindBitmapImage {
		t.Errorf("Kind() = %q, want %q", st.Kind(), stroke.KindBitmapImage)
	}
	if _, err := c.Import([]byte(squareSVG)); err != nil {
		t.Errorf("Import(svg): %v", err)
	}
	if c.Sheet().Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Sheet().Len())
	}
}

func TestCanvasImportInvalid(t *testing.T) {
	c := NewCanvas(nil)
	if _, err := c.ImportSVG("<html/>"); err == nil {
		t.Error("ImportSVG(<html/>) succeeded")
	}
	if _, err := c.ImportBitmap([]byte("nope")); !errors.Is(err, errors.ErrCodeInvalidImage) {
		t.Errorf("ImportBitmap(garbage) = %v, want INVALID_IMAGE", err)
	}
}

func TestCanvasZoom(t *testing.T) {
	c := NewCanvas(nil)
	if err := c.SetZoom(0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetZoom(0) = %v, want INVALID_INPUT", err)
	}
	id, _ := c.ImportSVG(squareSVG)
	if err := c.SetZoom(2); err != nil {
		t.Fatalf("SetZoom(2): %v", err)
	}
	st, _ := c.Sheet().Get(id)
	if got := st.RenderNode(2).Scale; got != 2 {
		t.Errorf("node scale = %v, want 2", got)
	}
}

func TestCanvasPropertyChecks(t *testing.T) {
	c := NewCanvas(nil)
	prop, ok := c.Property("pdf-import-width")
	if !ok {
		t.Fatal("no pdf-import-width property")
	}
	if err := prop.SetValue(150.0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetValue(150) = %v, want INVALID_INPUT", err)
	}
	if _, ok := c.Property("missing"); ok {
		t.Error("Property(missing) found")
	}
}

func TestCanvasSetSheetSyncsEndless(t *testing.T) {
	c := NewCanvas(nil)
	s := sheet.New()
	s.Endless = false
	c.SetSheet(s)
	if c.EndlessSheet() {
		t.Error("EndlessSheet() = true, want false")
	}
}

func TestCanvasSheetSettingsRoundTrip(t *testing.T) {
	s := settings.New(settings.DefaultSchema(), nil)
	c := NewCanvas(nil)
	c.Sheet().Format = sheet.Format{Width: 1200, Height: 800, DPI: 144, Orientation: sheet.Landscape}
	c.Sheet().Background.Pattern = sheet.PatternGrid

	if err := c.SaveSheetSettings(s); err != nil {
		t.Fatalf("SaveSheetSettings: %v", err)
	}
	other := NewCanvas(nil)
	if err := other.LoadSheetSettings(s); err != nil {
		t.Fatalf("LoadSheetSettings: %v", err)
	}
	if other.Sheet().Format != c.Sheet().Format {
		t.Errorf("Format = %+v, want %+v", other.Sheet().Format, c.Sheet().Format)
	}
	if other.Sheet().Background.Pattern != sheet.PatternGrid {
		t.Errorf("Pattern = %q, want grid", other.Sheet().Background.Pattern)
	}
}

func TestCanvasLoadSheetSettingsInvalid(t *testing.T) {
	s := settings.New(settings.DefaultSchema(), nil)
	s.SetValue(settings.SheetBackgroundPattern, "plaid")
	if err := NewCanvas(nil).LoadSheetSettings(s); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("LoadSheetSettings = %v, want INVALID_INPUT", err)
	}
}

func TestColorPickerSelectedBounds(t *testing.T) {
	p := NewColorPicker(2)
	if err := p.SetSelected(2); !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Errorf("SetSelected(2) = %v, want INDEX_OUT_OF_RANGE", err)
	}
	if err := p.SetColor(-1, p.SelectedColor()); err == nil {
		t.Error("SetColor(-1) succeeded")
	}
	p.LoadColors(nil)
	if got := len(p.FetchAllColors()); got != 2 {
		t.Errorf("len(FetchAllColors()) = %d, want 2", got)
	}
}

func TestWorkspaceBrowserEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.svg", "a.json", "notes.txt", ".hidden.png"} {
		if err := writeFile(dir+"/"+name, "x"); err != nil {
			t.Fatal(err)
		}
	}
	b := NewWorkspaceBrowser()
	if got, _ := b.Entries(); got != nil {
		t.Errorf("Entries() without dir = %v, want nil", got)
	}
	b.SetDir(WorkspaceDirFor(dir))
	got, err := b.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a.json" || got[1] != "b.svg" {
		t.Errorf("Entries() = %v, want [a.json b.svg]", got)
	}
}

func writeFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0o600)
}
