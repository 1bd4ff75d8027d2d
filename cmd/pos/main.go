// Command pos runs and operates the Beshgebeya point-of-sale service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/beshgebeya/pos/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pos",
	Short:         "Beshgebeya point-of-sale and inventory service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(alertsGenerateCmd)
	rootCmd.AddCommand(scheduleRunCmd)
	rootCmd.AddCommand(salesExportCmd)
}
