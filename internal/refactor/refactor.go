// Package refactor applies mechanical refactoring plans to workspace code
// files. A plan is a list of find/replace edits; applying one actually
// rewrites the files, replacing the old echo-the-plan placeholder.
package refactor

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/EGAdams/adk-web/internal/logging"
	"github.com/EGAdams/adk-web/internal/workspace"
)

// Edit is a single find/replace operation on one code file.
type Edit struct {
	// File is the code file name, relative to the code directory.
	File string `yaml:"file" json:"file"`

	// Find is the exact text to replace. It must be present in the file.
	Find string `yaml:"find" json:"find"`

	// Replace is the replacement text.
	Replace string `yaml:"replace" json:"replace"`

	// All replaces every occurrence instead of just the first.
	All bool `yaml:"all" json:"all"`
}

// Plan describes a refactoring as an ordered list of edits.
type Plan struct {
	Description string `yaml:"description" json:"description"`
	Edits       []Edit `yaml:"edits" json:"edits"`
}

// Summary reports what a plan changed.
type Summary struct {
	Status       string   `json:"status"`
	Plan         string   `json:"plan"`
	FilesChanged []string `json:"files_changed"`
	Replacements int      `json:"replacements"`
}

// StatusApplied is the summary status after a successful apply.
const StatusApplied = "refactoring_applied"

// LoadPlan reads a plan from a YAML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan parses a YAML plan document.
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &plan, nil
}

// Engine applies plans to a workspace's code files.
type Engine struct {
	ws *workspace.Workspace
}

// New creates a refactoring engine for the workspace.
func New(ws *workspace.Workspace) *Engine {
	return &Engine{ws: ws}
}

// Apply executes every edit in the plan, in order. The plan is rejected as
// a whole if any edit names a missing file or text that is not present;
// edits before the failing one will already have been written (no
// rollback - plans are expected to be reviewed before applying).
func (e *Engine) Apply(plan *Plan) (*Summary, error) {
	if plan == nil || len(plan.Edits) == 0 {
		return nil, fmt.Errorf("refactoring plan has no edits")
	}

	logging.Workspace("applying refactoring plan: %s (%d edits)", plan.Description, len(plan.Edits))

	summary := &Summary{
		Status: StatusApplied,
		Plan:   plan.Description,
	}
	changed := make(map[string]bool)

	for i, edit := range plan.Edits {
		n, err := e.apply(edit)
		if err != nil {
			return nil, fmt.Errorf("edit %d (%s): %w", i+1, edit.File, err)
		}
		summary.Replacements += n
		if !changed[edit.File] {
			changed[edit.File] = true
			summary.FilesChanged = append(summary.FilesChanged, edit.File)
		}
	}

	return summary, nil
}

// apply performs one edit and returns the number of replacements made.
func (e *Engine) apply(edit Edit) (int, error) {
	if edit.Find == "" {
		return 0, fmt.Errorf("find text is required")
	}

	content, err := e.ws.ReadFile(e.ws.CodeDir(), edit.File)
	if err != nil {
		return 0, err
	}

	count := strings.Count(content, edit.Find)
	if count == 0 {
		return 0, fmt.Errorf("text %q not found", truncate(edit.Find, 40))
	}
	if !edit.All {
		count = 1
	}

	updated := strings.Replace(content, edit.Find, edit.Replace, count)

	if _, err := e.ws.WriteCodeFile(edit.File, updated); err != nil {
		return 0, err
	}

	logging.WorkspaceDebug("refactored %s: %d replacement(s)", edit.File, count)
	return count, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
