package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/EGAdams/adk-web/internal/config"
	"github.com/EGAdams/adk-web/internal/executor"
	"github.com/EGAdams/adk-web/internal/logging"
)

// Runner executes a project's test and build commands through an Executor.
type Runner struct {
	exec executor.Executor
	cfg  config.RunnerConfig
	dir  string
}

// New creates a Runner for the project at dir.
func New(exec executor.Executor, cfg config.RunnerConfig, dir string) *Runner {
	if dir == "" {
		dir = "."
	}
	return &Runner{exec: exec, cfg: cfg, dir: dir}
}

// TestCommand returns the configured test command or the auto-detected one.
func (r *Runner) TestCommand() (string, error) {
	if r.cfg.TestCommand != "" {
		return r.cfg.TestCommand, nil
	}
	if cmd := detectTestCommand(r.dir); cmd != "" {
		return cmd, nil
	}
	return "", fmt.Errorf("could not detect test command in %s, set runner.test_command", r.dir)
}

// BuildCommand returns the configured build command or the auto-detected one.
func (r *Runner) BuildCommand() (string, error) {
	if r.cfg.BuildCommand != "" {
		return r.cfg.BuildCommand, nil
	}
	if cmd := detectBuildCommand(r.dir); cmd != "" {
		return cmd, nil
	}
	return "", fmt.Errorf("could not detect build command in %s, set runner.build_command", r.dir)
}

// Run executes the test suite, optionally narrowed to tests matching
// pattern, and parses the output into a Report. A failing suite is a
// Report with status "failed", not an error.
func (r *Runner) Run(ctx context.Context, pattern string) (*Report, error) {
	command, err := r.TestCommand()
	if err != nil {
		return nil, err
	}
	if pattern != "" {
		command = addTestPattern(command, pattern)
	}

	logging.Runner("running tests: %s (dir=%s)", command, r.dir)

	res, err := r.execute(ctx, command)
	if err != nil {
		return nil, err
	}

	report := r.buildReport(command, res)
	logging.Runner("test run %s: %s", report.Status, report.Summary)
	return report, nil
}

// Build executes the project build command.
func (r *Runner) Build(ctx context.Context) (*executor.Result, error) {
	command, err := r.BuildCommand()
	if err != nil {
		return nil, err
	}
	logging.Runner("building: %s (dir=%s)", command, r.dir)
	return r.execute(ctx, command)
}

func (r *Runner) execute(ctx context.Context, command string) (*executor.Result, error) {
	cmd := executor.Shell(command)
	cmd.WorkingDirectory = r.dir

	if r.cfg.Timeout != "" {
		d, err := time.ParseDuration(r.cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid runner timeout %q: %w", r.cfg.Timeout, err)
		}
		cmd.Timeout = d
	}

	return r.exec.Execute(ctx, cmd)
}

func (r *Runner) buildReport(command string, res *executor.Result) *Report {
	report := &Report{
		Status:   StatusSuccess,
		Command:  command,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		Duration: res.Duration,
	}
	if !res.Succeeded() {
		report.Status = StatusFailed
	}

	report.Cases = parseCases(command, res.Stdout, res.Stderr)

	switch {
	case len(report.Cases) > 0:
		report.Summary = counts(report.Cases)
	case strings.HasPrefix(command, "pytest") && pytestSummary(res.Stdout) != "":
		report.Summary = pytestSummary(res.Stdout)
	case res.Succeeded():
		report.Summary = "all tests passed"
	default:
		report.Summary = res.Error
	}

	return report
}
