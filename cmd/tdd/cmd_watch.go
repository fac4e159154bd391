package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EGAdams/adk-web/internal/runner"
	"github.com/EGAdams/adk-web/internal/watch"
)

// watchCmd re-runs the test suite whenever a workspace file changes.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and re-run tests on changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		w, err := watch.New(a.ws, a.runner, func(report *runner.Report) {
			fmt.Printf("\n=== %s: %s ===\n", report.Status, report.Summary)
			for _, c := range report.Cases {
				marker := "ok"
				if c.Status == runner.CaseFailed {
					marker = "FAIL"
				}
				fmt.Printf("  %-4s %s\n", marker, c.Name)
			}
		})
		if err != nil {
			return err
		}

		if err := w.Start(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("Watching %s and %s (ctrl-c to stop)\n", a.ws.CodeDir(), a.ws.TestDir())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		w.Stop()

		stats := w.Snapshot()
		logger.Info("watch session finished",
			zap.Int("runs", stats.RunsTriggered),
			zap.Int("created", stats.FilesCreated),
			zap.Int("modified", stats.FilesModified),
			zap.Int("deleted", stats.FilesDeleted))
		return nil
	},
}
