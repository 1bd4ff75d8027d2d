package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/beshgebeya/pos/database/seeders"
	"github.com/beshgebeya/pos/internal/server"
	"github.com/beshgebeya/pos/pkg/database"
	"github.com/beshgebeya/pos/pkg/migration"
)

// pos migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.New(database.DB, os.Stdout).Run()
	},
}

// pos migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(database.DB, os.Stdout).Rollback()
	},
}

// pos migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		rows, err := migration.New(database.DB, os.Stdout).Status()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "STATUS\tBATCH\tMIGRATION")
		for _, row := range rows {
			status, batch := "Pending", "-"
			if row.Ran {
				status, batch = "Ran", fmt.Sprint(row.Batch)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", status, batch, row.Name)
		}
		return w.Flush()
	},
}

// pos seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(database.DB, os.Stdout)
	},
}
