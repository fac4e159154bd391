package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var toolsRole string

// toolsCmd lists the registered tools.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List registered tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		list := a.registry.All()
		if toolsRole != "" {
			list = a.registry.FilterByRole(toolsRole)
		}

		for _, t := range list {
			fmt.Printf("%-18s %-8s %s\n", t.Name, t.Category, t.Description)
		}
		return nil
	},
}

// toolCmd invokes a single tool with JSON arguments.
var toolCmd = &cobra.Command{
	Use:   "tool [name] [json-args]",
	Short: "Invoke a tool directly with JSON arguments",
	Long: `Invokes a registered tool by name. Arguments are a JSON object,
for example:

  tdd tool write_code_file '{"file_name": "calc.py", "content": "x = 1"}'
  tdd tool run_shell_command '{"command": "ls -la"}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		toolArgs := map[string]any{}
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
				return fmt.Errorf("invalid JSON arguments: %w", err)
			}
		}

		res, err := a.registry.Execute(cmd.Context(), args[0], toolArgs)
		if err != nil {
			return err
		}
		return printJSON(res.Payload)
	},
}

func init() {
	toolsCmd.Flags().StringVar(&toolsRole, "role", "", "Filter tools by workflow role")
}
