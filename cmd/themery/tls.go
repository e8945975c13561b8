// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themery/internal/config"
	"github.com/thatcatcamp/themery/internal/tls"
)

var tlsCmd = &cobra.Command{
	Use:   "tls",
	Short: "TLS certificate management",
	Long:  "Manage the certificates for the domains listed in tls.domains",
}

var tlsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show certificate status",
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(initConfig())

		if !config.GetBool("tls.enabled") {
			fmt.Println("TLS is disabled. Enable it with: themery config set tls.enabled true")
			return
		}

		log, err := newLogger()
		exitOnError(err)

		tlsCfg, err := tls.LoadConfig()
		exitOnError(err)

		tlsManager, err := tls.NewManager(tlsCfg, log)
		exitOnError(err)
		defer tlsManager.Stop()

		statuses, err := tlsManager.GetCertificateStatus(cmd.Context())
		exitOnError(err)

		if len(statuses) == 0 {
			fmt.Println("No certificates found. Certificates are provisioned when the server starts.")
			fmt.Println("\nConfigured domains:")
			for _, domain := range tlsManager.Domains() {
				fmt.Printf("  - %s (not yet provisioned)\n", domain)
			}
			return
		}

		fmt.Printf("%-30s %-20s %-15s %s\n", "Domain", "Issuer", "Expires", "Days Left")
		fmt.Println("-----------------------------------------------------------------------------------")
		for _, status := range statuses {
			fmt.Printf("%-30s %-20s %-15s %d\n",
				status.Domain,
				status.Issuer,
				status.NotAfter.Format("2006-01-02"),
				status.DaysUntilExpiry,
			)
		}
	},
}

func init() {
	tlsCmd.AddCommand(tlsStatusCmd)
	rootCmd.AddCommand(tlsCmd)
}
