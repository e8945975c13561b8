// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themery/internal/analytics"
	"github.com/thatcatcamp/themery/internal/config"
	"github.com/thatcatcamp/themery/internal/db"
	"github.com/thatcatcamp/themery/internal/logger"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "themery",
	Short: "Themery - shadcn/ui theme customizer and registry",
	Long: `Themery serves the shadcn/ui theme customizer: pick a palette and
radius, preview it, and copy the result as Tailwind v3 or v4 CSS, an MCP
config for your editor, or a registry item for the shadcn CLI.

It also serves and publishes the static registry endpoints for every
built-in theme.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvVar+" or ~/.themery/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig initializes the configuration system
func initConfig() error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.InitConfig(path)
}

// newLogger builds the process logger from log.* settings
func newLogger() (*logger.Logger, error) {
	level := config.GetString("log.level")
	if logLevel != "" {
		level = logLevel
	}
	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: config.GetBool("log.human"),
	})
}

// initSystemDB opens the analytics database
func initSystemDB() error {
	if err := initConfig(); err != nil {
		return err
	}

	dbType := config.GetString("database.type")
	dbPath := config.GetString("database.path")

	return db.InitDB(dbType, dbPath)
}

// newRecorder returns a recorder on the shared database, or a disabled one
// when analytics are switched off
func newRecorder() (*analytics.Recorder, error) {
	if !config.GetBool("analytics.enabled") {
		return analytics.NewRecorder(nil, false), nil
	}
	if err := initSystemDB(); err != nil {
		return nil, err
	}
	return analytics.NewRecorder(db.GetDB(), true), nil
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
