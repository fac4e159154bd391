package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EGAdams/adk-web/internal/executor"
	"github.com/EGAdams/adk-web/internal/runner"
)

var (
	runWorkingDir string
	runTimeout    time.Duration
)

// runCmd executes an arbitrary shell command through the executor. A
// non-zero exit prints the result and exits with the same code.
var runCmd = &cobra.Command{
	Use:   "run [command...]",
	Short: "Execute a shell command and report the structured result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		command := strings.Join(args, " ")
		spec := executor.Shell(command)
		if runWorkingDir != "" {
			spec.WorkingDirectory = runWorkingDir
		}
		if runTimeout > 0 {
			spec.Timeout = runTimeout
		}

		logger.Debug("executing", zap.String("command", command))

		res, err := a.exec.Execute(cmd.Context(), spec)
		if err != nil {
			return err
		}

		if err := printJSON(res); err != nil {
			return err
		}
		if !res.Succeeded() && res.ExitCode > 0 {
			return exitCodeError{res.ExitCode}
		}
		return nil
	},
}

var (
	testPattern string
	testAnalyze bool
)

// testCmd runs the project test suite and optionally analyzes failures.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the project test suite",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.runner.Run(cmd.Context(), testPattern)
		if err != nil {
			return err
		}

		if err := printJSON(report); err != nil {
			return err
		}

		if report.Status == runner.StatusFailed && testAnalyze {
			fmt.Println()
			if err := printJSON(runner.Analyze(report)); err != nil {
				return err
			}
		}
		if report.Status == runner.StatusFailed {
			return exitCodeError{1}
		}
		return nil
	},
}

// buildCmd runs the detected or configured build command.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the project build command",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.runner.Build(cmd.Context())
		if err != nil {
			return err
		}

		if err := printJSON(res); err != nil {
			return err
		}
		if !res.Succeeded() {
			return exitCodeError{1}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runWorkingDir, "dir", "d", "", "Working directory for the command")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Command timeout (0 = config default)")

	testCmd.Flags().StringVarP(&testPattern, "pattern", "p", "", "Only run tests matching this pattern")
	testCmd.Flags().BoolVar(&testAnalyze, "analyze", false, "Analyze failures after a failed run")
}
