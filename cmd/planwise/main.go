package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/planwise-io/planwise/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planwise",
		Short: "Planwise - subscription and feature entitlement service",
		Long:  `Planwise manages product catalogs, plans, subscriptions and per-customer feature entitlement resolution.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
