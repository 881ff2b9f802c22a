// Package cli implements the sketchnote command-line interface.
//
// # Commands
//
//   - import: place SVG and bitmap images on a sheet document
//   - export: render a sheet to svg, png, pdf or json through the artifact cache
//   - settings: list, get, set, reset and browse the persisted app settings
//   - serve: expose settings and a sheet over HTTP
//   - sheets: store named sheets in the document store (files or MongoDB)
//   - cache: manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchnote/pkg/buildinfo"
	"github.com/matzehuels/sketchnote/pkg/cache"
	"github.com/matzehuels/sketchnote/pkg/docstore"
	"github.com/matzehuels/sketchnote/pkg/pipeline"
	"github.com/matzehuels/sketchnote/pkg/settings"
	"github.com/matzehuels/sketchnote/pkg/sheet"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sketchnote"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the settings file location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sketchnote manages note sheets, imported images and app settings",
		Long:         `Sketchnote is the command-line companion of a freehand note-taking app. It imports SVG and bitmap images into sheet documents, exports sheets to SVG, PNG, PDF and JSON, edits the persisted app settings and serves a sheet over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default $XDG_CONFIG_HOME/sketchnote/settings.toml)")

	// Register all subcommands
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sheetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, cacheURL string) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, noCache, cacheURL)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cacheURL != "" {
		// A shared cache may be used by several releases at once.
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), "sketchnote:"+buildinfo.Version+":")
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache picks the artifact cache: none, Redis when a URL is given, or
// the file cache.
func newCache(ctx context.Context, noCache bool, cacheURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cacheURL != "" {
		rc, err := cache.NewRedisCache(ctx, cacheURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		printWarning("Artifact cache disabled: %v", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Settings and Documents
// =============================================================================

// openSettings loads the persisted settings.
func (c *CLI) openSettings(ctx context.Context) (*settings.Settings, *settings.TOMLBackend, error) {
	path := c.configPath
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	backend, err := settings.NewTOMLBackend(path)
	if err != nil {
		return nil, nil, err
	}
	s := settings.New(settings.DefaultSchema(), backend, settings.WithLogger(c.Logger))
	if err := s.Load(ctx); err != nil {
		return nil, nil, err
	}
	return s, backend, nil
}

// openStore returns the Mongo store when uri is set, else the file store.
func openStore(ctx context.Context, uri, database string) (docstore.Store, error) {
	if uri != "" {
		ms, err := docstore.NewMongoStore(ctx, uri, database)
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	fs, err := docstore.NewFileStore("")
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// readSheet loads a sheet document from path.
func readSheet(path string) (*sheet.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sheet.Load(f)
}

// writeSheet saves s to path atomically.
func writeSheet(path string, s *sheet.Sheet) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := s.Save(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the artifact cache directory, honouring XDG_CACHE_HOME.
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
