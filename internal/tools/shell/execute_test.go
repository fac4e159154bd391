package shell

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/EGAdams/adk-web/internal/executor"
	"github.com/EGAdams/adk-web/internal/tools"
)

// recordingExecutor captures the command it was asked to run.
type recordingExecutor struct {
	got    executor.Command
	result *executor.Result
}

func (r *recordingExecutor) Execute(ctx context.Context, cmd executor.Command) (*executor.Result, error) {
	r.got = cmd
	if r.result != nil {
		return r.result, nil
	}
	return &executor.Result{Status: executor.StatusSuccess, Command: cmd.CommandString()}, nil
}

func newShellRegistry(t *testing.T, exec executor.Executor) *tools.Registry {
	t.Helper()
	registry := tools.NewRegistry()
	if err := RegisterAll(registry, exec); err != nil {
		t.Fatal(err)
	}
	return registry
}

func TestRunShellCommand(t *testing.T) {
	fake := &recordingExecutor{}
	registry := newShellRegistry(t, fake)

	res, err := registry.Execute(context.Background(), "run_shell_command", map[string]any{
		"command":     "echo hello",
		"working_dir": "/tmp",
		"timeout":     "30s",
	})
	if err != nil {
		t.Fatal(err)
	}

	if fake.got.WorkingDirectory != "/tmp" {
		t.Errorf("working dir = %q", fake.got.WorkingDirectory)
	}
	if fake.got.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", fake.got.Timeout)
	}
	if !strings.Contains(fake.got.CommandString(), "echo hello") {
		t.Errorf("command = %q", fake.got.CommandString())
	}
	if _, ok := res.Payload.(*executor.Result); !ok {
		t.Fatalf("payload type %T", res.Payload)
	}
}

func TestRunShellCommandFailureIsPayload(t *testing.T) {
	fake := &recordingExecutor{result: &executor.Result{
		Status:   executor.StatusFailed,
		ExitCode: 2,
		Stderr:   "ls: cannot access 'missing'",
		Error:    "command failed with exit code 2",
	}}
	registry := newShellRegistry(t, fake)

	res, err := registry.Execute(context.Background(), "run_shell_command", map[string]any{
		"command": "ls missing",
	})
	if err != nil {
		t.Fatalf("non-zero exit must not be a Go error, got %v", err)
	}

	payload := res.Payload.(*executor.Result)
	if payload.Status != executor.StatusFailed || payload.ExitCode != 2 {
		t.Errorf("payload = %+v", payload)
	}
}

func TestRunShellCommandMissingArg(t *testing.T) {
	registry := newShellRegistry(t, &recordingExecutor{})

	if _, err := registry.Execute(context.Background(), "run_shell_command", map[string]any{}); err == nil {
		t.Fatal("expected error for missing command")
	}
}

func TestRunShellCommandIgnoresBadTimeout(t *testing.T) {
	fake := &recordingExecutor{}
	registry := newShellRegistry(t, fake)

	if _, err := registry.Execute(context.Background(), "run_shell_command", map[string]any{
		"command": "true",
		"timeout": "not-a-duration",
	}); err != nil {
		t.Fatal(err)
	}
	if fake.got.Timeout != 0 {
		t.Errorf("timeout = %v, want 0", fake.got.Timeout)
	}
}

func TestBashTool(t *testing.T) {
	fake := &recordingExecutor{}
	registry := newShellRegistry(t, fake)

	if _, err := registry.Execute(context.Background(), "bash", map[string]any{
		"script": "for i in 1 2 3; do echo $i; done",
	}); err != nil {
		t.Fatal(err)
	}

	if fake.got.Binary != "bash" {
		t.Errorf("binary = %q", fake.got.Binary)
	}
	if len(fake.got.Arguments) != 2 || fake.got.Arguments[0] != "-c" {
		t.Errorf("arguments = %v", fake.got.Arguments)
	}
}

func TestRunShellCommandEndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix shell test")
	}

	registry := newShellRegistry(t, executor.NewDirect())

	res, err := registry.Execute(context.Background(), "run_shell_command", map[string]any{
		"command": "echo tool output",
	})
	if err != nil {
		t.Fatal(err)
	}

	payload := res.Payload.(*executor.Result)
	if payload.Status != executor.StatusSuccess {
		t.Errorf("status = %q (stderr: %s)", payload.Status, payload.Stderr)
	}
	if !strings.Contains(payload.Stdout, "tool output") {
		t.Errorf("stdout = %q", payload.Stdout)
	}
	if payload.Command != "echo tool output" {
		t.Errorf("command = %q, want the caller's string", payload.Command)
	}
}
