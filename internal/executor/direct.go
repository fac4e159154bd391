package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/EGAdams/adk-web/internal/logging"
)

// Executor runs commands and returns structured results.
// The interface exists so callers (tools, runner, tests) can substitute a
// fake without spawning processes.
type Executor interface {
	// Execute runs a command synchronously. The context can cancel it.
	// A non-nil Result with Status "failed" is returned for non-zero
	// exits; errors are reserved for infrastructure faults.
	Execute(ctx context.Context, cmd Command) (*Result, error)
}

// Direct executes commands directly on the host using os/exec.
type Direct struct {
	config Config
}

// NewDirect creates a host executor with default config.
func NewDirect() *Direct {
	return NewDirectWithConfig(DefaultConfig())
}

// NewDirectWithConfig creates a host executor with custom config.
func NewDirectWithConfig(config Config) *Direct {
	if config.MaxOutputBytes <= 0 {
		config.MaxOutputBytes = DefaultMaxOutput
	}
	logging.ShellDebug("executor configured: timeout=%v maxOutput=%d", config.DefaultTimeout, config.MaxOutputBytes)
	return &Direct{config: config}
}

// Execute runs a command on the host.
func (e *Direct) Execute(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("binary is required")
	}

	logging.Shell("executing: %s", cmd.CommandString())

	timeout := e.config.DefaultTimeout
	if cmd.Timeout > 0 {
		timeout = cmd.Timeout
	} else if cmd.Timeout < 0 {
		timeout = 0
	}

	execCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		execCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	proc := exec.CommandContext(execCtx, cmd.Binary, cmd.Arguments...)

	proc.Dir = cmd.WorkingDirectory
	if proc.Dir == "" {
		proc.Dir = e.config.WorkingDirectory
	}

	proc.Env = append(os.Environ(), cmd.Environment...)

	if cmd.Stdin != "" {
		proc.Stdin = strings.NewReader(cmd.Stdin)
	}

	stdout := newCappedBuffer(e.config.MaxOutputBytes)
	stderr := newCappedBuffer(e.config.MaxOutputBytes)
	proc.Stdout = stdout
	proc.Stderr = stderr

	start := time.Now()
	err := proc.Run()
	elapsed := time.Since(start)

	result := &Result{
		Status:    StatusSuccess,
		Command:   cmd.CommandString(),
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  0,
		Duration:  elapsed,
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}

	if err == nil {
		logging.ShellDebug("completed: %s (%d bytes stdout, %v)", cmd.CommandString(), len(result.Stdout), elapsed)
		return result, nil
	}

	// Timeout and cancellation are reported as failed results: partial
	// output is still useful to the caller.
	if execCtx.Err() != nil {
		result.Status = StatusFailed
		result.ExitCode = exitCode(err)
		result.Killed = true
		if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			result.Error = fmt.Sprintf("command timed out after %v", timeout)
		} else {
			result.Error = "command canceled"
		}
		logging.ShellWarn("%s: %s", result.Error, cmd.CommandString())
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Process fault: the command ran and exited non-zero.
		result.Status = StatusFailed
		result.ExitCode = exitErr.ExitCode()
		result.Error = fmt.Sprintf("command failed with exit code %d", result.ExitCode)
		logging.ShellWarn("failed (exit %d): %s", result.ExitCode, cmd.CommandString())
		return result, nil
	}

	// Infrastructure fault: the process never ran (binary missing,
	// permission denied, bad working directory).
	logging.ShellWarn("spawn failed: %s (%v)", cmd.CommandString(), err)
	return nil, fmt.Errorf("failed to start command %q: %w", cmd.CommandString(), err)
}

// exitCode extracts an exit code from a Run error, -1 when unavailable.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
