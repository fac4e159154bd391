// Package tools provides modular tool definitions for the TDD workflow.
//
// Each tool is standalone and can be invoked by any workflow role through
// the Registry. Roles (planner, test writer, coder, test runner, debugger,
// installer) select tools by category; the registry performs argument
// validation and execution.
package tools

import (
	"context"
)

// Category classifies tools for role-based filtering.
type Category string

const (
	// CategoryPlan covers task definition and planning.
	CategoryPlan Category = "/plan"

	// CategoryCode covers file writes and refactoring.
	CategoryCode Category = "/code"

	// CategoryTest covers test writing and test execution.
	CategoryTest Category = "/test"

	// CategoryDebug covers failure analysis.
	CategoryDebug Category = "/debug"

	// CategoryShell covers raw command execution.
	CategoryShell Category = "/shell"

	// CategoryGeneral is for tools usable by any role.
	CategoryGeneral Category = "/general"
)

// Property describes a single parameter property for JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
}

// Schema defines the JSON schema for tool arguments.
type Schema struct {
	// Required lists parameters that must be provided.
	Required []string `json:"required"`

	// Properties describes each parameter.
	Properties map[string]Property `json:"properties"`
}

// ExecuteFunc is the signature for tool execution.
// Returns the result payload and any error.
type ExecuteFunc func(ctx context.Context, args map[string]any) (any, error)

// Tool defines a modular tool that any workflow role can use.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string

	// Description explains what the tool does.
	Description string

	// Category classifies the tool for role filtering.
	Category Category

	// Execute runs the tool with the given arguments.
	Execute ExecuteFunc

	// Schema defines the expected arguments.
	Schema Schema

	// Priority is used when multiple tools match.
	// Higher priority tools are preferred (default 50).
	Priority int
}

// Validate checks if the tool definition is valid.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}

// Result wraps the outcome of a tool execution with metadata.
type Result struct {
	// ToolName identifies which tool was executed.
	ToolName string

	// Payload is the structured output from the tool.
	Payload any

	// Error is set if the tool failed.
	Error error

	// DurationMs is how long execution took.
	DurationMs int64
}

// IsSuccess returns true if the tool executed without error.
func (r *Result) IsSuccess() bool {
	return r.Error == nil
}

// StringArg extracts a string argument, returning "" when absent or of the
// wrong type.
func StringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// BoolArg extracts a bool argument with a default.
func BoolArg(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}
