package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchnote/internal/app"
	"github.com/matzehuels/sketchnote/pkg/geom"
	"github.com/matzehuels/sketchnote/pkg/httputil"
	"github.com/matzehuels/sketchnote/pkg/settings"
	"github.com/matzehuels/sketchnote/pkg/sheet"
	"github.com/matzehuels/sketchnote/pkg/stroke"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	sheetPath string  // sheet document to import into
	x, y      float64 // top left corner of the imported image
	noCache   bool    // always download remote images
}

// remoteTTL is how long downloaded images are reused.
const remoteTTL = 24 * time.Hour

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	opts := importOpts{x: stroke.OffsetXDefault, y: stroke.OffsetYDefault}

	cmd := &cobra.Command{
		Use:   "import [file|url...]",
		Short: "Import SVG or bitmap images into a sheet document",
		Long: `Import SVG, PNG, JPEG, GIF, BMP, TIFF or WebP images into a sheet document.

The sheet is created with the page format and background from the settings
when it does not exist yet. Each image is placed at --x/--y; later images are
stacked below the previous one. http(s) URLs are downloaded with retry and
cached for a day.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.sheetPath, "sheet", "s", "sheet.json", "sheet document to import into")
	cmd.Flags().Float64Var(&opts.x, "x", opts.x, "x position of the image")
	cmd.Flags().Float64Var(&opts.y, "y", opts.y, "y position of the image")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always download remote images")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, files []string, opts importOpts) error {
	logger := loggerFromContext(ctx)

	sh, created, err := c.openOrCreateSheet(ctx, opts.sheetPath)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	fetcher := c.newFetcher(opts.noCache)
	pos := geom.V(opts.x, opts.y)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := readSource(ctx, fetcher, file)
		if err != nil {
			return err
		}
		id, err := sh.ImportData(data, pos)
		if err != nil {
			return fmt.Errorf("import %s: %w", file, err)
		}
		st, _ := sh.Get(id)
		logger.Debug("imported", "file", file, "id", id, "kind", st.Kind(), "bounds", st.Bounds())
		printSuccess("Imported %s as %s", StyleValue.Render(file), StyleHighlight.Render(st.Kind()))
		printDetail("bounds %s", st.Bounds())
		pos = geom.V(opts.x, st.Bounds().Maxs.Y+stroke.OffsetYDefault)
	}

	if err := writeSheet(opts.sheetPath, sh); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Imported %d images", len(files)))
	if created {
		printInfo("Created sheet %s", opts.sheetPath)
	}
	printFile(opts.sheetPath)
	printNextStep("Render it", "sketchnote export "+opts.sheetPath)
	return nil
}

// openOrCreateSheet loads path, or returns a new sheet set up from the
// settings when path does not exist.
func (c *CLI) openOrCreateSheet(ctx context.Context, path string) (*sheet.Sheet, bool, error) {
	sh, err := readSheet(path)
	if err == nil {
		return sh, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, err
	}

	st, _, err := c.openSettings(ctx)
	if err != nil {
		return nil, false, err
	}
	canvas := app.NewCanvas(c.Logger)
	if err := canvas.LoadSheetSettings(st); err != nil {
		return nil, false, err
	}
	endless, err := st.Bool(settings.EndlessSheet)
	if err != nil {
		return nil, false, err
	}
	canvas.Sheet().Endless = endless
	return canvas.Sheet(), true, nil
}

// newFetcher returns a fetcher for remote images, cached under the artifact
// cache directory unless noCache is set.
func (c *CLI) newFetcher(noCache bool) *httputil.Fetcher {
	opts := []httputil.FetcherOption{httputil.WithLogger(c.Logger)}
	if noCache {
		return httputil.NewFetcher(opts...)
	}
	dir, err := cacheDir()
	if err == nil {
		if hc, err := httputil.NewCache(filepath.Join(dir, "remote"), remoteTTL); err == nil {
			opts = append(opts, httputil.WithCache(hc))
		}
	}
	return httputil.NewFetcher(opts...)
}

// readSource reads a local file or downloads a URL.
func readSource(ctx context.Context, fetcher *httputil.Fetcher, src string) ([]byte, error) {
	if httputil.IsURL(src) {
		return fetcher.Fetch(ctx, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}
