package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EGAdams/adk-web/internal/tasks"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage development tasks",
}

var taskDefineCmd = &cobra.Command{
	Use:   "define [description]",
	Short: "Record a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		task, err := a.store.Define(strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printJSON(task)
	},
}

var taskStatusFilter string

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		list, err := a.store.List(taskStatusFilter)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No tasks recorded.")
			return nil
		}
		for _, task := range list {
			fmt.Printf("%s  [%s]  %s\n", task.ID, task.Status, task.Description)
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.SetStatus(args[0], tasks.StatusDone); err != nil {
			return err
		}
		task, err := a.store.Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(task)
	},
}

func init() {
	taskListCmd.Flags().StringVar(&taskStatusFilter, "status", "", "Filter by status (open, done)")

	taskCmd.AddCommand(taskDefineCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
}
