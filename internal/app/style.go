package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/sketchnote/pkg/errors"
)

// ColorScheme selects light or dark styling.
type ColorScheme int

const (
	ColorSchemeDefault ColorScheme = iota
	ColorSchemePreferLight
	ColorSchemeForceLight
	ColorSchemePreferDark
	ColorSchemeForceDark
)

func (c ColorScheme) String() string {
	switch c {
	case ColorSchemeDefault:
		return "default"
	case ColorSchemePreferLight:
		return "prefer-light"
	case ColorSchemeForceLight:
		return "force-light"
	case ColorSchemePreferDark:
		return "prefer-dark"
	case ColorSchemeForceDark:
		return "force-dark"
	}
	return "unknown"
}

// Dark reports whether the scheme renders dark styling.
func (c ColorScheme) Dark() bool {
	return c == ColorSchemeForceDark || c == ColorSchemePreferDark
}

// StyleManager holds the application wide color scheme.
type StyleManager struct {
	properties
	colorScheme *Prop[ColorScheme]
}

func NewStyleManager() *StyleManager {
	m := &StyleManager{colorScheme: NewProp("color-scheme", ColorSchemeDefault)}
	m.properties = newProperties(m.colorScheme)
	return m
}

func (m *StyleManager) ColorScheme() ColorScheme { return m.colorScheme.Get() }

func (m *StyleManager) SetColorScheme(c ColorScheme) error { return m.colorScheme.Set(c) }

// WorkspaceDir is a directory reference. The zero value has no path.
type WorkspaceDir struct {
	path string
}

// WorkspaceDirFor returns a reference to path. An empty path yields the zero
// value.
func WorkspaceDirFor(path string) WorkspaceDir {
	if path == "" {
		return WorkspaceDir{}
	}
	return WorkspaceDir{path: filepath.Clean(path)}
}

// Path returns the directory path, if any.
func (d WorkspaceDir) Path() (string, bool) {
	return d.path, d.path != ""
}

// WorkspaceBrowser lists the documents of the workspace directory.
type WorkspaceBrowser struct {
	properties
	file *Prop[WorkspaceDir]
}

func NewWorkspaceBrowser() *WorkspaceBrowser {
	b := &WorkspaceBrowser{file: NewProp("file", WorkspaceDir{})}
	b.properties = newProperties(b.file)
	return b
}

func (b *WorkspaceBrowser) Dir() WorkspaceDir { return b.file.Get() }

func (b *WorkspaceBrowser) SetDir(d WorkspaceDir) error { return b.file.Set(d) }

// workspaceExts are the file types shown in the browser.
var workspaceExts = map[string]bool{
	".json": true, ".svg": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".bmp": true, ".tiff": true, ".webp": true,
}

// Entries returns the names of importable files and sheets in the workspace
// directory, sorted. Hidden files are skipped.
func (b *WorkspaceBrowser) Entries() ([]string, error) {
	dir, ok := b.Dir().Path()
	if !ok {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read workspace %s", dir)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if workspaceExts[strings.ToLower(filepath.Ext(name))] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
