package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/beshgebeya/pos/config"
	"github.com/beshgebeya/pos/internal/server"
	"github.com/beshgebeya/pos/pkg/schedule"
)

// pos alerts:generate
var alertsGenerateCmd = &cobra.Command{
	Use:   "alerts:generate",
	Short: "Re-evaluate stock and replace the stored alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := server.Services(ctx)
		if err != nil {
			return err
		}
		defer server.Shutdown()

		alerts, err := svc.Alerts.Evaluate(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Generated %d alerts.\n", len(alerts))
		for _, a := range alerts {
			fmt.Printf("  %-12s %s\n", a.Kind, a.Message)
		}
		return nil
	},
}

// pos schedule:run
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Evaluate alerts on ALERT_SCHEDULE until stopped",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := server.Services(ctx)
		if err != nil {
			return err
		}
		defer server.Shutdown()

		s := schedule.New()
		err = s.Cron("alerts:generate", config.AlertSchedule(), func(ctx context.Context) error {
			_, err := svc.Alerts.Evaluate(ctx)
			return err
		})
		if err != nil {
			return err
		}

		fmt.Println("Registered scheduled tasks:")
		for _, t := range s.List() {
			fmt.Println("  •", t)
		}
		fmt.Println("Scheduler started. Press Ctrl+C to stop.")
		s.Run(ctx)
		fmt.Println("Scheduler stopped.")
		return nil
	},
}
