// Package tdd provides the red/green/refactor workflow tools.
//
// These tools bind the task store, the test runner and the refactor
// engine into the registry. run_tests remembers its last report so that
// analyze_failure can work from it without re-running the suite.
//
// Tools:
//   - define_task: Record a development task
//   - list_tasks: List recorded tasks
//   - complete_task: Mark a task as done
//   - run_tests: Execute the project test suite
//   - analyze_failure: Produce a bug report from the last failing run
//   - refactor_code: Apply a mechanical find/replace plan
package tdd
