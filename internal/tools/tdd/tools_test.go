package tdd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EGAdams/adk-web/internal/config"
	"github.com/EGAdams/adk-web/internal/executor"
	"github.com/EGAdams/adk-web/internal/refactor"
	"github.com/EGAdams/adk-web/internal/runner"
	"github.com/EGAdams/adk-web/internal/tasks"
	"github.com/EGAdams/adk-web/internal/tools"
	"github.com/EGAdams/adk-web/internal/workspace"
)

// scriptedExecutor returns a fixed result for every command.
type scriptedExecutor struct {
	result *executor.Result
	calls  int
}

func (s *scriptedExecutor) Execute(ctx context.Context, cmd executor.Command) (*executor.Result, error) {
	s.calls++
	res := *s.result
	res.Command = cmd.CommandString()
	return &res, nil
}

func newTestToolset(t *testing.T, exec executor.Executor) (*Toolset, *tools.Registry, *workspace.Workspace) {
	t.Helper()

	dir := t.TempDir()
	ws := workspace.New(config.WorkspaceConfig{
		CodeDir: filepath.Join(dir, "code"),
		TestDir: filepath.Join(dir, "tests"),
	})
	require.NoError(t, ws.EnsureDirs())

	store, err := tasks.NewStore(dir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	r := runner.New(exec, config.RunnerConfig{TestCommand: "go test ./..."}, dir)

	ts := NewToolset(store, r, refactor.New(ws))
	registry := tools.NewRegistry()
	require.NoError(t, ts.RegisterAll(registry))
	return ts, registry, ws
}

func TestDefineAndCompleteTask(t *testing.T) {
	_, registry, _ := newTestToolset(t, &scriptedExecutor{result: &executor.Result{Status: executor.StatusSuccess}})
	ctx := context.Background()

	res, err := registry.Execute(ctx, "define_task", map[string]any{
		"description": "implement calculator add",
	})
	require.NoError(t, err)

	task := res.Payload.(*tasks.Task)
	assert.Equal(t, tasks.StatusOpen, task.Status)
	assert.NotEmpty(t, task.ID)

	res, err = registry.Execute(ctx, "complete_task", map[string]any{"task_id": task.ID})
	require.NoError(t, err)
	assert.Equal(t, tasks.StatusDone, res.Payload.(*tasks.Task).Status)

	res, err = registry.Execute(ctx, "list_tasks", map[string]any{"status": tasks.StatusDone})
	require.NoError(t, err)
	assert.Len(t, res.Payload.([]*tasks.Task), 1)
}

func TestDefineTaskRequiresDescription(t *testing.T) {
	_, registry, _ := newTestToolset(t, &scriptedExecutor{result: &executor.Result{Status: executor.StatusSuccess}})

	_, err := registry.Execute(context.Background(), "define_task", map[string]any{})
	assert.Error(t, err)
}

func TestRunTestsStoresReport(t *testing.T) {
	exec := &scriptedExecutor{result: &executor.Result{
		Status: executor.StatusSuccess,
		Stdout: "--- PASS: TestAdd (0.00s)\nPASS\nok\n",
	}}
	ts, registry, _ := newTestToolset(t, exec)

	res, err := registry.Execute(context.Background(), "run_tests", map[string]any{})
	require.NoError(t, err)

	report := res.Payload.(*runner.Report)
	assert.Equal(t, runner.StatusSuccess, report.Status)
	assert.Same(t, report, ts.LastReport())
}

func TestAnalyzeFailureUsesLastReport(t *testing.T) {
	exec := &scriptedExecutor{result: &executor.Result{
		Status:   executor.StatusFailed,
		ExitCode: 1,
		Stdout:   "--- FAIL: TestAdd (0.00s)\n    calc_test.go:12: got 4, want 3\nFAIL\n",
		Error:    "command failed with exit code 1",
	}}
	_, registry, _ := newTestToolset(t, exec)
	ctx := context.Background()

	_, err := registry.Execute(ctx, "run_tests", map[string]any{})
	require.NoError(t, err)
	runsAfterTests := exec.calls

	res, err := registry.Execute(ctx, "analyze_failure", map[string]any{})
	require.NoError(t, err)

	analysis := res.Payload.(*runner.Analysis)
	assert.Equal(t, runner.AnalysisComplete, analysis.Status)
	assert.Contains(t, analysis.FailedTests, "TestAdd")
	assert.Contains(t, analysis.Suspects, "calc_test.go:12")
	assert.Equal(t, runsAfterTests, exec.calls, "analyze_failure should reuse the stored report")
}

func TestAnalyzeFailureRunsSuiteWhenNoReport(t *testing.T) {
	exec := &scriptedExecutor{result: &executor.Result{Status: executor.StatusSuccess, Stdout: "PASS\n"}}
	_, registry, _ := newTestToolset(t, exec)

	res, err := registry.Execute(context.Background(), "analyze_failure", map[string]any{})
	require.NoError(t, err)

	analysis := res.Payload.(*runner.Analysis)
	assert.Equal(t, runner.NoFailuresFound, analysis.Status)
	assert.Equal(t, 1, exec.calls)
}

func TestRefactorCodeSingleEdit(t *testing.T) {
	_, registry, ws := newTestToolset(t, &scriptedExecutor{result: &executor.Result{Status: executor.StatusSuccess}})

	_, err := ws.WriteCodeFile("calc.py", "def add(a, b):\n    return a - b\n")
	require.NoError(t, err)

	res, err := registry.Execute(context.Background(), "refactor_code", map[string]any{
		"file":    "calc.py",
		"find":    "a - b",
		"replace": "a + b",
	})
	require.NoError(t, err)

	summary := res.Payload.(*refactor.Summary)
	assert.Equal(t, refactor.StatusApplied, summary.Status)
	assert.Equal(t, 1, summary.Replacements)

	content, err := ws.ReadFile(ws.CodeDir(), "calc.py")
	require.NoError(t, err)
	assert.Contains(t, content, "a + b")
}

func TestRefactorCodeYAMLPlan(t *testing.T) {
	_, registry, ws := newTestToolset(t, &scriptedExecutor{result: &executor.Result{Status: executor.StatusSuccess}})

	_, err := ws.WriteCodeFile("calc.py", "x = 1\ny = 1\n")
	require.NoError(t, err)

	plan := `
description: rename values
edits:
  - file: calc.py
    find: "1"
    replace: "2"
    all: true
`
	res, err := registry.Execute(context.Background(), "refactor_code", map[string]any{"plan": plan})
	require.NoError(t, err)

	summary := res.Payload.(*refactor.Summary)
	assert.Equal(t, 2, summary.Replacements)
}

func TestRefactorCodeRejectsBareArgs(t *testing.T) {
	_, registry, _ := newTestToolset(t, &scriptedExecutor{result: &executor.Result{Status: executor.StatusSuccess}})

	_, err := registry.Execute(context.Background(), "refactor_code", map[string]any{})
	assert.Error(t, err)
}
