package core

import (
	"github.com/EGAdams/adk-web/internal/tools"
	"github.com/EGAdams/adk-web/internal/workspace"
)

// RegisterAll registers all workspace file tools with the given registry.
func RegisterAll(registry *tools.Registry, ws *workspace.Workspace) error {
	allTools := []*tools.Tool{
		WriteTestFileTool(ws),
		WriteCodeFileTool(ws),
		ReadFileTool(ws),
	}

	for _, tool := range allTools {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	return nil
}
