package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchnote/pkg/compose"
	"github.com/matzehuels/sketchnote/pkg/errors"
	"github.com/matzehuels/sketchnote/pkg/settings"
)

// settingsCommand creates the settings management command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and edit the app settings",
	}

	cmd.AddCommand(c.settingsListCommand())
	cmd.AddCommand(c.settingsGetCommand())
	cmd.AddCommand(c.settingsSetCommand())
	cmd.AddCommand(c.settingsResetCommand())
	cmd.AddCommand(c.settingsPaletteCommand())
	cmd.AddCommand(c.settingsPathCommand())
	cmd.AddCommand(c.settingsTUICommand())

	return cmd
}

// completeKeys completes setting names.
func completeKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, k := range settings.DefaultSchema().Keys() {
		if strings.HasPrefix(k.Name, toComplete) {
			names = append(names, k.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (c *CLI) settingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all settings with their values",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := c.openSettings(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(settingsTable(st))
			return nil
		},
	}
}

// settingsTable renders every setting as a table row; changed values are
// highlighted.
func settingsTable(st *settings.Settings) string {
	keys := st.Schema().Keys()
	rows := make([][]string, 0, len(keys))
	changed := make([]bool, 0, len(keys))
	for _, k := range keys {
		v, _ := st.Value(k.Name)
		rows = append(rows, []string{k.Name, k.TypeName(), formatValue(v)})
		changed = append(changed, formatValue(v) != formatValue(k.Default))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Key", "Type", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 {
				return base.Foreground(colorDim)
			}
			if col == 2 && changed[row] {
				return base.Foreground(colorCyan)
			}
			return base
		}).
		Render()
}

func (c *CLI) settingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Print the value of a setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := c.openSettings(cmd.Context())
			if err != nil {
				return err
			}
			k, err := lookupKey(st, args[0])
			if err != nil {
				return err
			}
			v, err := st.Value(k.Name)
			if err != nil {
				return err
			}
			fmt.Println(formatValue(v))
			return nil
		},
	}
}

func (c *CLI) settingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long: `Change a setting.

Booleans accept true/false, numbers are decimal, and color tuples are a
comma-separated list of #rrggbb, #rrggbbaa or 0xRRGGBBAA values.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.updateSetting(cmd.Context(), args[0], func(st *settings.Settings, k settings.Key) error {
				v, err := parseValue(k, args[1])
				if err != nil {
					return err
				}
				return st.SetValue(k.Name, v)
			})
		},
	}
}

func (c *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "reset <key>",
		Short:             "Restore the default of a setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.updateSetting(cmd.Context(), args[0], func(st *settings.Settings, k settings.Key) error {
				return st.Reset(k.Name)
			})
		},
	}
}

// updateSetting applies fn to key and saves the settings.
func (c *CLI) updateSetting(ctx context.Context, key string, fn func(*settings.Settings, settings.Key) error) error {
	st, _, err := c.openSettings(ctx)
	if err != nil {
		return err
	}
	k, err := lookupKey(st, key)
	if err != nil {
		return err
	}
	if err := fn(st, k); err != nil {
		return err
	}
	if err := st.Save(ctx); err != nil {
		return err
	}
	v, _ := st.Value(k.Name)
	printSuccess("%s = %s", k.Name, StyleHighlight.Render(formatValue(v)))
	return nil
}

func (c *CLI) settingsPaletteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palette <key>",
		Short: "Show a color palette",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return paletteKeys(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := c.openSettings(cmd.Context())
			if err != nil {
				return err
			}
			k, err := lookupKey(st, args[0])
			if err != nil {
				return err
			}
			if k.Kind != settings.KindTuple {
				return errors.New(errors.ErrCodeInvalidInput, "%s is not a palette", k.Name)
			}
			tuple, err := st.Tuple(k.Name)
			if err != nil {
				return err
			}
			selected := int64(-1)
			if sel, ok := paletteSelection[k.Name]; ok {
				selected, _ = st.Int(sel)
			}
			fmt.Println(StyleTitle.Render(k.Name))
			for i, color := range settings.UnpackColors(tuple) {
				printSwatch(i, color.Hex(), color.String(), int64(i) == selected)
			}
			return nil
		},
	}
}

// paletteSelection maps palettes to the key holding their selected index.
var paletteSelection = map[string]string{
	settings.MarkerColors: settings.MarkerSelectedColor,
	settings.BrushColors:  settings.BrushSelectedColor,
	settings.ShaperColors: settings.ShaperSelectedColor,
	settings.ShaperFills:  settings.ShaperSelectedFill,
}

func paletteKeys() []string {
	return []string{settings.MarkerColors, settings.BrushColors, settings.ShaperColors, settings.ShaperFills}
}

func (c *CLI) settingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, backend, err := c.openSettings(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(backend.Path())
			return nil
		},
	}
}

func (c *CLI) settingsTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit settings interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, _, err := c.openSettings(ctx)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(NewSettingsModel(st), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(SettingsModel); ok && m.Changed {
				if err := st.Save(ctx); err != nil {
					return err
				}
				printSuccess("Settings saved")
			}
			return nil
		},
	}
}

func lookupKey(st *settings.Settings, name string) (settings.Key, error) {
	k, ok := st.Schema().Lookup(name)
	if !ok {
		return settings.Key{}, errors.New(errors.ErrCodeUnknownKey, "unknown setting %q", name)
	}
	return k, nil
}

// parseValue converts command-line text to a value of k's type.
func parseValue(k settings.Key, s string) (any, error) {
	s = strings.TrimSpace(s)
	switch k.Kind {
	case settings.KindString:
		return s, nil
	case settings.KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTypeMismatch, err, "%s: expected bool", k.Name)
		}
		return b, nil
	case settings.KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTypeMismatch, err, "%s: expected number", k.Name)
		}
		return f, nil
	case settings.KindInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTypeMismatch, err, "%s: expected integer", k.Name)
		}
		return n, nil
	case settings.KindTuple:
		parts := strings.Split(s, ",")
		tuple := make([]uint32, 0, len(parts))
		for _, p := range parts {
			color, err := compose.ParseColor(p)
			if err != nil {
				return nil, err
			}
			tuple = append(tuple, color.ToU32())
		}
		return tuple, nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "%s: unknown kind %s", k.Name, k.Kind)
}

// formatValue renders v the way parseValue reads it.
func formatValue(v any) string {
	switch t := v.(type) {
	case []uint32:
		parts := make([]string, len(t))
		for i, c := range t {
			parts[i] = compose.ColorFromU32(c).String()
		}
		return strings.Join(parts, ",")
	case string:
		if t == "" {
			return `""`
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
