package tdd

import (
	"context"
	"fmt"
	"sync"

	"github.com/EGAdams/adk-web/internal/logging"
	"github.com/EGAdams/adk-web/internal/refactor"
	"github.com/EGAdams/adk-web/internal/runner"
	"github.com/EGAdams/adk-web/internal/tasks"
	"github.com/EGAdams/adk-web/internal/tools"
)

// Toolset binds the workflow dependencies together. run_tests stores the
// report it produced so analyze_failure can read it back.
type Toolset struct {
	store  *tasks.Store
	runner *runner.Runner
	engine *refactor.Engine

	mu         sync.Mutex
	lastReport *runner.Report
}

// NewToolset creates the workflow toolset.
func NewToolset(store *tasks.Store, r *runner.Runner, engine *refactor.Engine) *Toolset {
	return &Toolset{store: store, runner: r, engine: engine}
}

// LastReport returns the report from the most recent run_tests call, or
// nil if no run has happened yet.
func (t *Toolset) LastReport() *runner.Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastReport
}

func (t *Toolset) setLastReport(r *runner.Report) {
	t.mu.Lock()
	t.lastReport = r
	t.mu.Unlock()
}

// DefineTaskTool returns a tool that records a development task.
func (t *Toolset) DefineTaskTool() *tools.Tool {
	return &tools.Tool{
		Name:        "define_task",
		Description: "Record a development task and return its id",
		Category:    tools.CategoryPlan,
		Priority:    90,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			description := tools.StringArg(args, "description")
			task, err := t.store.Define(description)
			if err != nil {
				return nil, err
			}
			logging.Tasks("defined task %s: %s", task.ID, task.Description)
			return task, nil
		},
		Schema: tools.Schema{
			Required: []string{"description"},
			Properties: map[string]tools.Property{
				"description": {
					Type:        "string",
					Description: "What the task should accomplish",
				},
			},
		},
	}
}

// ListTasksTool returns a tool that lists recorded tasks.
func (t *Toolset) ListTasksTool() *tools.Tool {
	return &tools.Tool{
		Name:        "list_tasks",
		Description: "List recorded tasks, optionally filtered by status",
		Category:    tools.CategoryPlan,
		Priority:    60,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			return t.store.List(tools.StringArg(args, "status"))
		},
		Schema: tools.Schema{
			Properties: map[string]tools.Property{
				"status": {
					Type:        "string",
					Description: "Filter by status",
					Enum:        []any{tasks.StatusOpen, tasks.StatusDone},
				},
			},
		},
	}
}

// CompleteTaskTool returns a tool that marks a task as done.
func (t *Toolset) CompleteTaskTool() *tools.Tool {
	return &tools.Tool{
		Name:        "complete_task",
		Description: "Mark a task as done",
		Category:    tools.CategoryPlan,
		Priority:    60,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			id := tools.StringArg(args, "task_id")
			if err := t.store.SetStatus(id, tasks.StatusDone); err != nil {
				return nil, err
			}
			return t.store.Get(id)
		},
		Schema: tools.Schema{
			Required: []string{"task_id"},
			Properties: map[string]tools.Property{
				"task_id": {
					Type:        "string",
					Description: "The id returned by define_task",
				},
			},
		},
	}
}

// RunTestsTool returns a tool that executes the project test suite. A
// failing suite is a report in the payload, not an error.
func (t *Toolset) RunTestsTool() *tools.Tool {
	return &tools.Tool{
		Name:        "run_tests",
		Description: "Run the project test suite and return a parsed report",
		Category:    tools.CategoryTest,
		Priority:    90,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			report, err := t.runner.Run(ctx, tools.StringArg(args, "pattern"))
			if err != nil {
				return nil, err
			}
			t.setLastReport(report)
			return report, nil
		},
		Schema: tools.Schema{
			Properties: map[string]tools.Property{
				"pattern": {
					Type:        "string",
					Description: "Narrow the run to tests matching this pattern",
				},
			},
		},
	}
}

// AnalyzeFailureTool returns a tool that produces a bug report from the
// last run_tests report. When no run has happened yet it runs the suite
// first.
func (t *Toolset) AnalyzeFailureTool() *tools.Tool {
	return &tools.Tool{
		Name:        "analyze_failure",
		Description: "Analyze the last test failure and suggest suspect files",
		Category:    tools.CategoryDebug,
		Priority:    90,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			report := t.LastReport()
			if report == nil {
				fresh, err := t.runner.Run(ctx, "")
				if err != nil {
					return nil, err
				}
				t.setLastReport(fresh)
				report = fresh
			}
			return runner.Analyze(report), nil
		},
		Schema: tools.Schema{},
	}
}

// RefactorCodeTool returns a tool that applies a mechanical find/replace
// plan against the code directory. It accepts either a YAML plan or a
// single file/find/replace edit.
func (t *Toolset) RefactorCodeTool() *tools.Tool {
	return &tools.Tool{
		Name:        "refactor_code",
		Description: "Apply a find/replace refactoring plan to the code directory",
		Category:    tools.CategoryCode,
		Priority:    80,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			plan, err := planFromArgs(args)
			if err != nil {
				return nil, err
			}
			return t.engine.Apply(plan)
		},
		Schema: tools.Schema{
			Properties: map[string]tools.Property{
				"plan": {
					Type:        "string",
					Description: "Full refactoring plan as YAML",
				},
				"file": {
					Type:        "string",
					Description: "File to edit (single-edit form)",
				},
				"find": {
					Type:        "string",
					Description: "Text to find (single-edit form)",
				},
				"replace": {
					Type:        "string",
					Description: "Replacement text (single-edit form)",
				},
				"all": {
					Type:        "boolean",
					Description: "Replace every occurrence instead of the first",
					Default:     false,
				},
			},
		},
	}
}

func planFromArgs(args map[string]any) (*refactor.Plan, error) {
	if raw := tools.StringArg(args, "plan"); raw != "" {
		return refactor.ParsePlan([]byte(raw))
	}

	file := tools.StringArg(args, "file")
	find := tools.StringArg(args, "find")
	if file == "" || find == "" {
		return nil, fmt.Errorf("provide either a plan or file and find")
	}

	return &refactor.Plan{
		Edits: []refactor.Edit{{
			File:    file,
			Find:    find,
			Replace: tools.StringArg(args, "replace"),
			All:     tools.BoolArg(args, "all", false),
		}},
	}, nil
}
