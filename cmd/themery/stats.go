// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/config"
	"github.com/thatcatcamp/themery/internal/db"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show theme copy statistics",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initSystemDB())

		if !config.GetBool("analytics.enabled") {
			fmt.Println("Analytics are disabled. Enable with: themery config set analytics.enabled true")
		}

		window, _ := cmd.Flags().GetDuration("since")
		var since time.Time
		if window > 0 {
			since = time.Now().Add(-window)
		}

		recorder := analytics.NewRecorder(db.GetDB(), true)
		summary, err := recorder.Summarize(cmd.Context(), since)
		exitOnError(err)

		fmt.Printf("Copy events: %d\n\n", summary.Total)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "THEME\tCOPIES")
		for _, c := range summary.ByTheme {
			fmt.Fprintf(w, "%s\t%d\n", c.Key, c.Total)
		}
		fmt.Fprintln(w, "\t")
		fmt.Fprintln(w, "FORMAT\tCOPIES")
		for _, c := range summary.ByFormat {
			fmt.Fprintf(w, "%s\t%d\n", c.Key, c.Total)
		}
		w.Flush()

		if run := summary.LastPublish; run != nil {
			status := "ok"
			if run.Error != "" {
				status = run.Error
			}
			fmt.Printf("\nLast publish: %s to %s, %d files, %s\n",
				run.CreatedAt.Format("2006-01-02 15:04"), run.Target, run.Files, status)
		}
	},
}

func init() {
	statsCmd.Flags().Duration("since", 0, "only count events newer than this, e.g. 168h")
	rootCmd.AddCommand(statsCmd)
}
