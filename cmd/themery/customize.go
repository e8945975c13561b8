// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/config"
	"github.com/thatcatcamp/themery/internal/themes"
	"github.com/thatcatcamp/themery/internal/tui"
)

var customizeCmd = &cobra.Command{
	Use:   "customize",
	Short: "Pick a theme interactively",
	Long: `Walk through theme, radius, custom colors and output format in the
terminal, preview the swatches, then print the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initConfig())

		copyOut, _ := cmd.Flags().GetBool("copy")
		prefill := tui.Selection{
			Config: themes.DefaultExportConfig().
				WithTheme(config.GetString("site.default_theme")).
				WithRadius(config.GetFloat("site.default_radius")),
			Format: themes.FormatV4,
		}

		sel, err := tui.CustomizeForm(prefill)
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("Aborted.")
			return
		}
		exitOnError(err)

		exitOnError(emit(cmd.Context(), sel.Config, sel.Format, copyOut, analytics.SourceTUI))
	},
}

func init() {
	customizeCmd.Flags().Bool("copy", true, "copy the output to the clipboard")
	rootCmd.AddCommand(customizeCmd)
}
