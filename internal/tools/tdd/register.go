package tdd

import (
	"github.com/EGAdams/adk-web/internal/tools"
)

// RegisterAll registers all workflow tools with the given registry.
func (t *Toolset) RegisterAll(registry *tools.Registry) error {
	allTools := []*tools.Tool{
		t.DefineTaskTool(),
		t.ListTasksTool(),
		t.CompleteTaskTool(),
		t.RunTestsTool(),
		t.AnalyzeFailureTool(),
		t.RefactorCodeTool(),
	}

	for _, tool := range allTools {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	return nil
}
