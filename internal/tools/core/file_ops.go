package core

import (
	"context"
	"fmt"

	"github.com/EGAdams/adk-web/internal/logging"
	"github.com/EGAdams/adk-web/internal/tools"
	"github.com/EGAdams/adk-web/internal/workspace"
)

// WriteTestFileTool returns a tool that writes a file into the managed
// test directory.
func WriteTestFileTool(ws *workspace.Workspace) *tools.Tool {
	return &tools.Tool{
		Name:        "write_test_file",
		Description: "Write a test file into the managed test directory",
		Category:    tools.CategoryTest,
		Priority:    90,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			return executeWrite(args, ws.WriteTestFile)
		},
		Schema: tools.Schema{
			Required: []string{"file_name", "content"},
			Properties: map[string]tools.Property{
				"file_name": {
					Type:        "string",
					Description: "File name relative to the test directory",
				},
				"content": {
					Type:        "string",
					Description: "Full file content to write",
				},
			},
		},
	}
}

// WriteCodeFileTool returns a tool that writes a file into the managed
// code directory.
func WriteCodeFileTool(ws *workspace.Workspace) *tools.Tool {
	return &tools.Tool{
		Name:        "write_code_file",
		Description: "Write a source file into the managed code directory",
		Category:    tools.CategoryCode,
		Priority:    90,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			return executeWrite(args, ws.WriteCodeFile)
		},
		Schema: tools.Schema{
			Required: []string{"file_name", "content"},
			Properties: map[string]tools.Property{
				"file_name": {
					Type:        "string",
					Description: "File name relative to the code directory",
				},
				"content": {
					Type:        "string",
					Description: "Full file content to write",
				},
			},
		},
	}
}

// ReadFileTool returns a tool that reads a file from either workspace
// directory.
func ReadFileTool(ws *workspace.Workspace) *tools.Tool {
	return &tools.Tool{
		Name:        "read_file",
		Description: "Read a file from the code or test directory",
		Category:    tools.CategoryGeneral,
		Priority:    80,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			name := tools.StringArg(args, "file_name")
			if name == "" {
				return nil, fmt.Errorf("file_name is required")
			}

			dir := ws.CodeDir()
			if tools.StringArg(args, "dir") == "test" {
				dir = ws.TestDir()
			}

			logging.ToolsDebug("read_file: dir=%s name=%s", dir, name)

			content, err := ws.ReadFile(dir, name)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"file_name": name,
				"content":   content,
			}, nil
		},
		Schema: tools.Schema{
			Required: []string{"file_name"},
			Properties: map[string]tools.Property{
				"file_name": {
					Type:        "string",
					Description: "File name relative to the chosen directory",
				},
				"dir": {
					Type:        "string",
					Description: "Which directory to read from",
					Default:     "code",
					Enum:        []any{"code", "test"},
				},
			},
		},
	}
}

// writeFunc matches the workspace write methods.
type writeFunc func(name, content string) (*workspace.WriteResult, error)

func executeWrite(args map[string]any, write writeFunc) (any, error) {
	name := tools.StringArg(args, "file_name")
	if name == "" {
		return nil, fmt.Errorf("file_name is required")
	}
	content, ok := args["content"].(string)
	if !ok {
		return nil, fmt.Errorf("content is required")
	}

	logging.ToolsDebug("write file: name=%s bytes=%d", name, len(content))

	return write(name, content)
}
