package app

import (
	"github.com/matzehuels/sketchnote/pkg/settings"
)

// colorSchemeFromSetting maps the stored scheme name to a ColorScheme.
// Unknown names leave the property unchanged.
func colorSchemeFromSetting(v any) (any, bool) {
	switch v {
	case "default":
		return ColorSchemeDefault, true
	case "light":
		return ColorSchemeForceLight, true
	case "dark":
		return ColorSchemeForceDark, true
	}
	return nil, false
}

func colorSchemeToSetting(v any) (any, bool) {
	switch v {
	case ColorSchemeForceDark:
		return "dark", true
	case ColorSchemeForceLight:
		return "light", true
	}
	return "default", true
}

func workspaceDirFromSetting(v any) (any, bool) {
	path, ok := v.(string)
	if !ok {
		return nil, false
	}
	return WorkspaceDirFor(path), true
}

func workspaceDirToSetting(v any) (any, bool) {
	dir, ok := v.(WorkspaceDir)
	if !ok {
		return nil, false
	}
	path, ok := dir.Path()
	if !ok {
		return nil, false
	}
	return path, true
}

// selectedFromSetting narrows a stored index to the picker's uint32. An
// index outside a palette of size entries leaves the picker unchanged.
func selectedFromSetting(size int) settings.Mapping {
	return func(v any) (any, bool) {
		i, ok := v.(int64)
		if !ok || i < 0 || i >= int64(size) {
			return nil, false
		}
		return uint32(i), true
	}
}

func selectedToSetting(v any) (any, bool) {
	i, ok := v.(uint32)
	if !ok {
		return nil, false
	}
	return int64(i), true
}

// bindings lists every setting kept in sync with a property.
func (w *AppWindow) bindings() []settings.Binding {
	pens := w.penssidebar
	selected := func(key string, picker *ColorPicker) settings.Binding {
		return settings.Binding{Key: key, Target: picker, Property: "selected", Get: selectedFromSetting(picker.Size()), Set: selectedToSetting}
	}
	return []settings.Binding{
		{Key: settings.ColorScheme, Target: w.styleManager, Property: "color-scheme", Get: colorSchemeFromSetting, Set: colorSchemeToSetting},
		{Key: settings.WorkspaceDir, Target: w.workspaceBrowser, Property: "file", Get: workspaceDirFromSetting, Set: workspaceDirToSetting},
		{Key: settings.PenSounds, Target: w, Property: "pen-sounds"},
		{Key: settings.TouchDrawing, Target: w.canvas, Property: "touch-drawing"},
		{Key: settings.EndlessSheet, Target: w.canvas, Property: "endless-sheet"},
		{Key: settings.FormatBorders, Target: w.canvas, Property: "format-borders"},
		{Key: settings.SheetMargin, Target: w.canvas, Property: "sheet-margin"},
		{Key: settings.PDFImportWidth, Target: w.canvas, Property: "pdf-import-width"},
		{Key: settings.PDFImportAsVector, Target: w.canvas, Property: "pdf-import-as-vector"},
		selected(settings.MarkerSelectedColor, pens.MarkerPage.ColorPicker),
		selected(settings.BrushSelectedColor, pens.BrushPage.ColorPicker),
		selected(settings.ShaperSelectedColor, pens.ShaperPage.StrokeColorPicker),
		selected(settings.ShaperSelectedFill, pens.ShaperPage.FillColorPicker),
	}
}

// SetupSettings binds settings to the properties of the window and its
// children. It stops at the first binding that fails.
func (w *AppWindow) SetupSettings() error {
	for _, b := range w.bindings() {
		unbind, err := w.settings.Bind(b)
		if err != nil {
			return err
		}
		w.unbind = append(w.unbind, unbind)
	}
	return nil
}

// palette is a manually synced color tuple.
type palette struct {
	key    string
	arity  int
	picker *ColorPicker
}

func (w *AppWindow) palettes() []palette {
	pens := w.penssidebar
	return []palette{
		{settings.MarkerColors, settings.PaletteSize, pens.MarkerPage.ColorPicker},
		{settings.BrushColors, settings.PaletteSize, pens.BrushPage.ColorPicker},
		{settings.ShaperColors, settings.ShaperPaletteSize, pens.ShaperPage.StrokeColorPicker},
		{settings.ShaperFills, settings.ShaperPaletteSize, pens.ShaperPage.FillColorPicker},
	}
}

// LoadSettings applies the settings that are not bound: window size, sheet
// format and the pen palettes. It finishes by refreshing the UI for the
// sheet.
func (w *AppWindow) LoadSettings() error {
	if err := w.loadWindowSize(); err != nil {
		return err
	}
	if err := w.canvas.LoadSheetSettings(w.settings); err != nil {
		return err
	}
	for _, p := range w.palettes() {
		tuple, err := w.settings.Tuple(p.key)
		if err != nil {
			return err
		}
		p.picker.LoadColors(settings.UnpackColors(tuple))
	}
	return w.ActivateAction(ActionRefreshUIForSheet)
}

// SaveToSettings stores the state that is not bound. A palette whose size
// differs from its tuple arity fails with INDEX_OUT_OF_RANGE before anything
// is written.
func (w *AppWindow) SaveToSettings() error {
	palettes := w.palettes()
	tuples := make([][]uint32, len(palettes))
	for i, p := range palettes {
		tuple, err := settings.PackColors(p.picker.FetchAllColors(), p.arity)
		if err != nil {
			return err
		}
		tuples[i] = tuple
	}

	if err := w.saveWindowSize(); err != nil {
		return err
	}
	for i, p := range palettes {
		if err := w.settings.SetValue(p.key, tuples[i]); err != nil {
			return err
		}
	}
	return w.canvas.SaveSheetSettings(w.settings)
}

func (w *AppWindow) loadWindowSize() error {
	width, err := w.settings.Int(settings.WindowWidth)
	if err != nil {
		return err
	}
	height, err := w.settings.Int(settings.WindowHeight)
	if err != nil {
		return err
	}
	maximized, err := w.settings.Bool(settings.IsMaximized)
	if err != nil {
		return err
	}
	w.Resize(int(width), int(height), maximized)
	return nil
}

func (w *AppWindow) saveWindowSize() error {
	st := w.window
	if err := w.settings.SetValue(settings.WindowWidth, int64(st.Width)); err != nil {
		return err
	}
	if err := w.settings.SetValue(settings.WindowHeight, int64(st.Height)); err != nil {
		return err
	}
	return w.settings.SetValue(settings.IsMaximized, st.Maximized)
}
