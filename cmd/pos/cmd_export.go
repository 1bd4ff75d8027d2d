package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/internal/server"
	"github.com/beshgebeya/pos/pkg/database"
	"github.com/beshgebeya/pos/pkg/storage"
	"github.com/beshgebeya/pos/pkg/validate"
)

var (
	exportFrom string
	exportTo   string
	exportDisk string
)

// pos sales:export --from 2026-03-01 --to 2026-04-01
var salesExportCmd = &cobra.Command{
	Use:   "sales:export",
	Short: "Write a CSV of sales in [from, to) to a storage disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		to := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
		from := to.AddDate(0, 0, -7)
		var err error
		if exportFrom != "" {
			if from, err = validate.ParseDate(exportFrom); err != nil {
				return err
			}
		}
		if exportTo != "" {
			if to, err = validate.ParseDate(exportTo); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		if _, err := server.Services(ctx); err != nil {
			return err
		}
		defer server.Shutdown()

		var disk storage.Disk
		if exportDisk == "" {
			disk, err = storage.Default()
		} else {
			disk, err = storage.Use(exportDisk)
		}
		if err != nil {
			return err
		}

		reports := services.NewReportService(repositories.New(database.DB), disk)
		exp, err := reports.ExportSales(ctx, from, to)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d sales (%d lines) to %s\n", exp.Sales, exp.Lines, exp.Path)
		if exp.URL != "" {
			fmt.Println(exp.URL)
		}
		return nil
	},
}

func init() {
	salesExportCmd.Flags().StringVar(&exportFrom, "from", "", "first day, YYYY-MM-DD (default: 7 days ago)")
	salesExportCmd.Flags().StringVar(&exportTo, "to", "", "day after the last, YYYY-MM-DD (default: tomorrow)")
	salesExportCmd.Flags().StringVar(&exportDisk, "disk", "", "storage disk name (default: STORAGE_DISK)")
}
