package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchnote/internal/app"
	"github.com/matzehuels/sketchnote/internal/server"
	"github.com/matzehuels/sketchnote/pkg/observability"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	noCache  bool
	cacheURL string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [sheet.json]",
		Short: "Serve settings and a sheet over HTTP",
		Long: `Serve the app settings and a sheet over HTTP.

Settings changed through the API are saved immediately. When a sheet file is
given, it is loaded at startup and written back on shutdown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runServe(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.cacheURL, "cache-url", "", "redis URL of a shared artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path string, opts serveOpts) error {
	st, _, err := c.openSettings(ctx)
	if err != nil {
		return err
	}

	win := app.NewAppWindow(st, app.WithLogger(c.Logger))
	defer win.Close()
	if err := win.SetupSettings(); err != nil {
		return err
	}
	if err := win.LoadSettings(); err != nil {
		return err
	}
	if path != "" {
		sh, err := readSheet(path)
		switch {
		case err == nil:
			win.Canvas().SetSheet(sh)
			if err := win.ActivateAction(app.ActionRefreshUIForSheet); err != nil {
				return err
			}
		case os.IsNotExist(err):
			printInfo("Starting with an empty sheet")
		default:
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.cacheURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetHTTPHooks(hooks)
	observability.SetExportHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	printInfo("Serving on %s", StyleLink.Render("http://"+opts.addr))
	srv := server.New(win, server.WithRunner(runner), server.WithLogger(c.Logger))
	serveErr := srv.ListenAndServe(ctx, opts.addr)

	// Shutdown uses a fresh context: ctx is already canceled here.
	saveCtx := context.Background()
	if err := win.SaveToSettings(); err != nil {
		return err
	}
	if err := st.Save(saveCtx); err != nil {
		return err
	}
	if path != "" {
		if err := writeSheet(path, win.Canvas().Sheet()); err != nil {
			return err
		}
		printFile(path)
	}
	return serveErr
}
