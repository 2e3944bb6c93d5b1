package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Refresh all snapshots on a cron schedule",
	Long: `Runs the full refresh (the all command) on a cron schedule and keeps
running until interrupted.

Example:
  goldgauge schedule
  goldgauge schedule --cron "0 6 * * *"`,
	RunE: runSchedule,
}

var scheduleSpec string

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleSpec, "cron", "0 6 * * *", "cron expression for the refresh")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	// Fail fast on config problems before the first tick.
	d, err := initDeps()
	if err != nil {
		return err
	}

	c := cron.New()
	_, err = c.AddFunc(scheduleSpec, func() {
		d.log.Info("Scheduled refresh starting")
		if err := runAll(cmd, nil); err != nil {
			d.log.WithError(err).Error("Scheduled refresh failed")
			return
		}
		d.log.Info("Scheduled refresh finished")
	})
	if err != nil {
		return fmt.Errorf("parse cron expression %q: %w", scheduleSpec, err)
	}

	c.Start()
	fmt.Printf("Scheduler started (cron %q). Press Ctrl+C to stop.\n", scheduleSpec)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nStopping scheduler...")
	<-c.Stop().Done()
	fmt.Println("Scheduler stopped")
	return nil
}
