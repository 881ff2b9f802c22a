package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchnote/pkg/docstore"
)

// storeOpts selects the document store.
type storeOpts struct {
	mongoURI string
	database string
}

func (o *storeOpts) open(ctx context.Context) (docstore.Store, error) {
	return openStore(ctx, o.mongoURI, o.database)
}

// sheetsCommand creates the stored sheets command.
func (c *CLI) sheetsCommand() *cobra.Command {
	opts := &storeOpts{}
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Manage stored sheets",
		Long: `Manage named sheets in the document store.

Sheets are stored under $XDG_DATA_HOME/sketchnote/sheets, or in MongoDB when
--mongo-uri is set.`,
	}
	cmd.PersistentFlags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI")
	cmd.PersistentFlags().StringVar(&opts.database, "database", docstore.DefaultDatabase, "MongoDB database")

	cmd.AddCommand(c.sheetsListCommand(opts))
	cmd.AddCommand(c.sheetsPushCommand(opts))
	cmd.AddCommand(c.sheetsPullCommand(opts))
	cmd.AddCommand(c.sheetsRemoveCommand(opts))

	return cmd
}

func (c *CLI) sheetsListCommand(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("No stored sheets")
				return nil
			}
			for _, in := range infos {
				printKeyValue(in.Name, fmt.Sprintf("%s  %s",
					in.UpdatedAt.Local().Format(time.DateTime), StyleDim.Render(formatBytes(in.Size))))
			}
			return nil
		},
	}
}

func (c *CLI) sheetsPushCommand(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "push <name> <sheet.json>",
		Short: "Store a sheet document under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := readSheet(args[1])
			if err != nil {
				return err
			}
			store, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Put(cmd.Context(), args[0], sh); err != nil {
				return err
			}
			printSuccess("Stored %s as %s", args[1], StyleHighlight.Render(args[0]))
			return nil
		},
	}
}

func (c *CLI) sheetsPullCommand(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <name> <sheet.json>",
		Short: "Write a stored sheet to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			sh, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := writeSheet(args[1], sh); err != nil {
				return err
			}
			printFile(args[1])
			return nil
		},
	}
}

func (c *CLI) sheetsRemoveCommand(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a stored sheet",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

// formatBytes renders n with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
