// Package executor is the process boundary: it spawns external commands,
// captures their output, and reports exit status as structured data.
//
// Design principles carried from the rest of the system:
//   - Non-zero exit codes are results, not errors. A failing command is
//     useful data (partial output, exit code) for the caller.
//   - Go errors are reserved for infrastructure faults: the process could
//     not be spawned at all.
//   - The hardened form takes a binary plus argument list. Shell() builds
//     the host-interpreter form for callers that own the command string;
//     those callers are responsible for sanitizing it.
package executor

import (
	"runtime"
	"strings"
	"time"
)

// Status values for a Result.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Command specifies a process to execute.
type Command struct {
	// Binary is the executable to run (e.g. "go", "git", "sh").
	Binary string `json:"binary"`

	// Arguments are the command-line arguments.
	Arguments []string `json:"arguments,omitempty"`

	// WorkingDirectory is the directory to execute in.
	// If empty, the executor's configured working directory is used.
	WorkingDirectory string `json:"working_directory,omitempty"`

	// Environment variables to append to the inherited environment
	// (KEY=VALUE format).
	Environment []string `json:"environment,omitempty"`

	// Stdin provides input to the command's standard input.
	Stdin string `json:"stdin,omitempty"`

	// Timeout overrides the executor default for this command.
	// Zero means use the default; negative means no timeout.
	Timeout time.Duration `json:"-"`

	// Display overrides the command string reported in results. Shell()
	// sets it to the raw command so results carry what the caller wrote,
	// not the interpreter wrapping.
	Display string `json:"-"`
}

// CommandString returns the command as a string for display and for the
// Result's command field: the caller's original string when Display is
// set, the binary plus arguments otherwise.
func (c Command) CommandString() string {
	if c.Display != "" {
		return c.Display
	}
	if len(c.Arguments) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Arguments, " ")
}

// Shell wraps a raw command string in the host's command interpreter
// (sh -c on Unix, cmd /C on Windows). The string is passed verbatim;
// the caller sanitizes any untrusted input.
func Shell(command string) Command {
	if runtime.GOOS == "windows" {
		return Command{Binary: "cmd", Arguments: []string{"/C", command}, Display: command}
	}
	return Command{Binary: "sh", Arguments: []string{"-c", command}, Display: command}
}

// Result is the outcome of executing a command.
type Result struct {
	// Status is "success" for a zero exit code, "failed" otherwise.
	Status string `json:"status"`

	// Command is the original command string.
	Command string `json:"command"`

	// Stdout is the captured standard output.
	Stdout string `json:"stdout"`

	// Stderr is the captured standard error.
	Stderr string `json:"stderr"`

	// ExitCode is the command's exit code (-1 if not available).
	ExitCode int `json:"exit_code"`

	// Error is a human-readable failure description, set when Status is
	// "failed". It is never a Go error: process faults are data.
	Error string `json:"error,omitempty"`

	// Duration is how long the command ran.
	Duration time.Duration `json:"duration"`

	// Killed indicates the command was terminated by timeout or
	// cancellation.
	Killed bool `json:"killed,omitempty"`

	// Truncated indicates captured output hit the size cap.
	Truncated bool `json:"truncated,omitempty"`
}

// Succeeded reports whether the command exited zero.
func (r *Result) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Output returns stdout and stderr joined for display.
func (r *Result) Output() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stdout + "\n" + r.Stderr
}

// Config holds executor defaults.
type Config struct {
	// DefaultTimeout bounds command execution. Zero means no timeout,
	// matching the historical contract.
	DefaultTimeout time.Duration

	// MaxOutputBytes caps each captured stream. Zero means DefaultMaxOutput.
	MaxOutputBytes int64

	// WorkingDirectory is the default directory for commands.
	WorkingDirectory string
}

// DefaultMaxOutput caps each captured stream when no limit is configured.
const DefaultMaxOutput int64 = 10 << 20 // 10MB

// DefaultConfig returns the default executor configuration.
func DefaultConfig() Config {
	return Config{
		MaxOutputBytes: DefaultMaxOutput,
	}
}
