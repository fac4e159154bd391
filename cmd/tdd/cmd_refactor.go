package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EGAdams/adk-web/internal/refactor"
)

var (
	refactorFile    string
	refactorFind    string
	refactorReplace string
	refactorAll     bool
)

// refactorCmd applies a find/replace plan to the code directory. Either a
// plan file or the single-edit flags.
var refactorCmd = &cobra.Command{
	Use:   "refactor [plan.yaml]",
	Short: "Apply a mechanical find/replace refactoring",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var plan *refactor.Plan
		switch {
		case len(args) == 1:
			plan, err = refactor.LoadPlan(args[0])
			if err != nil {
				return err
			}
		case refactorFile != "" && refactorFind != "":
			plan = &refactor.Plan{
				Edits: []refactor.Edit{{
					File:    refactorFile,
					Find:    refactorFind,
					Replace: refactorReplace,
					All:     refactorAll,
				}},
			}
		default:
			return fmt.Errorf("provide a plan file or --file and --find")
		}

		summary, err := a.engine.Apply(plan)
		if err != nil {
			return err
		}
		return printJSON(summary)
	},
}

func init() {
	refactorCmd.Flags().StringVar(&refactorFile, "file", "", "File to edit")
	refactorCmd.Flags().StringVar(&refactorFind, "find", "", "Text to find")
	refactorCmd.Flags().StringVar(&refactorReplace, "replace", "", "Replacement text")
	refactorCmd.Flags().BoolVar(&refactorAll, "all", false, "Replace every occurrence")
}
