// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/config"
	"github.com/thatcatcamp/themery/internal/themes"
	"github.com/thatcatcamp/themery/internal/tui"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Browse and export themes",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in themes",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLABEL\tPRIMARY (LIGHT)\tPRIMARY (DARK)\tSTATIC")
		for _, t := range themes.ListThemes() {
			static := "yes"
			if themes.IsNeutral(t.Name) {
				static = "no"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Name, t.DisplayLabel(), t.ActiveColor.Light, t.ActiveColor.Dark, static)
		}
		w.Flush()
	},
}

var themeShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a theme's light and dark swatches",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if themes.GetTheme(args[0]) == nil {
			exitOnError(fmt.Errorf("unknown theme %q", args[0]))
		}
		radius, _ := cmd.Flags().GetFloat64("radius")
		cfg := themes.DefaultExportConfig().WithTheme(args[0]).WithRadius(radius)
		fmt.Println(tui.Summary(cfg, themes.FormatV4))
	},
}

var themeExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Print the theme code for a theme",
	Long: `Print the theme in one of the export formats: v4, v3, cursor,
windsurf or registry. With --copy the output also goes to the clipboard.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initConfig())

		radius, _ := cmd.Flags().GetFloat64("radius")
		formatName, _ := cmd.Flags().GetString("format")

		format, err := themes.ParseFormat(formatName)
		exitOnError(err)

		if args[0] != themes.CustomThemeName && themes.GetTheme(args[0]) == nil {
			exitOnError(fmt.Errorf("unknown theme %q", args[0]))
		}
		cfg := themes.DefaultExportConfig().WithTheme(args[0]).WithRadius(radius)
		if cfg.IsCustom() {
			base, _ := cmd.Flags().GetString("base")
			primary, _ := cmd.Flags().GetString("primary")
			if !themes.ValidHex(base) || !themes.ValidHex(primary) {
				exitOnError(fmt.Errorf("--base and --primary must be #RRGGBB colors"))
			}
			cfg = cfg.WithBaseColor(base).WithPrimaryColor(primary)
		}

		copyOut, _ := cmd.Flags().GetBool("copy")
		exitOnError(emit(cmd.Context(), cfg, format, copyOut, analytics.SourceCLI))
	},
}

// emit prints the rendered theme, optionally copies it and records the copy
func emit(ctx context.Context, cfg themes.ExportConfig, format themes.Format, copyOut bool, source string) error {
	out := themes.Render(format, cfg, config.GetString("site.base_url"))
	if out == "" {
		return fmt.Errorf("%s has no %s output", cfg.Theme, format.Label())
	}
	fmt.Print(out)

	if !copyOut {
		return nil
	}
	if err := clipboard.WriteAll(out); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Copied to clipboard.")

	recorder, err := newRecorder()
	if err != nil {
		return err
	}
	return recorder.RecordCopy(ctx, cfg.Theme, cfg.Radius, string(format), source)
}

func init() {
	themeShowCmd.Flags().Float64("radius", themes.DefaultRadius, "radius in rem")

	themeExportCmd.Flags().StringP("format", "f", string(themes.FormatV4), "output format")
	themeExportCmd.Flags().Float64P("radius", "r", themes.DefaultRadius, "radius in rem")
	themeExportCmd.Flags().Bool("copy", false, "copy the output to the clipboard")
	themeExportCmd.Flags().String("base", themes.DefaultBaseColor, "base color for the custom theme")
	themeExportCmd.Flags().String("primary", themes.DefaultPrimaryColor, "primary color for the custom theme")

	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeExportCmd)
	rootCmd.AddCommand(themeCmd)
}
