// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themery/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Themery configuration",
	Long:  "View and modify Themery configuration values",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initConfig())
		fmt.Println(config.GetString(args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initConfig())

		if err := config.Set(args[0], args[1]); err != nil {
			exitOnError(fmt.Errorf("setting config: %w", err))
		}

		fmt.Printf("Set %s = %s\n", args[0], args[1])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initConfig())

		for _, key := range config.Keys() {
			value := config.Get(key)
			if key == "session.secret" && config.GetString(key) != "" {
				value = "********"
			}
			fmt.Printf("%s: %v\n", key, value)
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
