package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchnote/pkg/observability"
	"github.com/matzehuels/sketchnote/pkg/pipeline"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string  // output file (single format) or base path
	formats  string  // comma-separated output formats
	scale    float64 // raster scale for png
	noCache  bool    // disable the artifact cache
	refresh  bool    // ignore cached artifacts
	cacheURL string  // redis URL for a shared cache
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{scale: pipeline.DefaultScale, formats: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "export [sheet.json]",
		Short: "Export a sheet to SVG, PNG, PDF or JSON",
		Long: `Export a sheet document to one or more formats.

Rendered artifacts are cached by content, so exporting an unchanged sheet is
instant. Use --cache-url to share the cache through Redis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale for png output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().StringVar(&opts.cacheURL, "cache-url", "", "redis URL of a shared artifact cache")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts exportOpts) error {
	formats, err := pipeline.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	sh, err := readSheet(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.cacheURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetExportHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s...", input))
	spinner.Start()
	result, err := runner.Export(ctx, sh, pipeline.Options{
		Formats: formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Exported %s", input))
	printStats(result.Stats.Strokes, result.Stats.RenderTime, result.CacheInfo.RenderHit)

	return writeArtifacts(result.Artifacts, outputPaths(opts.output, input, formats))
}

// outputPaths maps each format to its output file. A single format may be
// written to an explicit output path.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && basePath(output, input) != output {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifacts(artifacts map[string][]byte, paths map[string]string) error {
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	for _, f := range formats {
		if err := os.WriteFile(paths[f], artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		printFile(paths[f])
	}
	return nil
}
