package shell

import (
	"github.com/EGAdams/adk-web/internal/executor"
	"github.com/EGAdams/adk-web/internal/tools"
)

// RegisterAll registers all command execution tools with the given registry.
func RegisterAll(registry *tools.Registry, exec executor.Executor) error {
	allTools := []*tools.Tool{
		RunShellCommandTool(exec),
		BashTool(exec),
	}

	for _, tool := range allTools {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	return nil
}
