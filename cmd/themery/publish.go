// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themery/internal/config"
	"github.com/thatcatcamp/themery/internal/metrics"
	"github.com/thatcatcamp/themery/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Pre-render the registry endpoints",
	Long: `Render registry.json and theme.json for every color theme and radius
and write them to a directory (default publish.dir) or, with --s3, to the
bucket configured under publish.s3_*.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initConfig())

		log, err := newLogger()
		exitOnError(err)

		recorder, err := newRecorder()
		exitOnError(err)

		dir, _ := cmd.Flags().GetString("dir")
		useS3, _ := cmd.Flags().GetBool("s3")
		if dir == "" {
			dir = config.GetString("publish.dir")
		}

		target, err := publishTarget(cmd.Context(), dir, useS3)
		exitOnError(err)

		p := &publish.Publisher{
			Target:        target,
			Concurrency:   config.GetInt("publish.concurrency"),
			DefaultRadius: config.GetFloat("site.default_radius"),
			Recorder:      recorder,
			Metrics:       metrics.New(),
			Log:           log,
		}

		res, err := p.Run(cmd.Context())
		exitOnError(err)

		fmt.Printf("Published %d files (%s) to %s in %s\n", res.Files, formatBytes(res.Bytes), target, res.Took.Round(time.Millisecond))
	},
}

// publishTarget picks the S3 bucket or a local directory
func publishTarget(ctx context.Context, dir string, useS3 bool) (publish.Target, error) {
	if useS3 {
		return publish.NewS3Target(ctx, publish.S3Options{
			Bucket:   config.GetString("publish.s3_bucket"),
			Prefix:   config.GetString("publish.s3_prefix"),
			Region:   config.GetString("publish.s3_region"),
			Endpoint: config.GetString("publish.s3_endpoint"),
		})
	}
	return publish.NewDirTarget(dir)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func init() {
	publishCmd.Flags().String("dir", "", "output directory (default publish.dir)")
	publishCmd.Flags().Bool("s3", false, "upload to the configured S3 bucket instead")
	rootCmd.AddCommand(publishCmd)
}
