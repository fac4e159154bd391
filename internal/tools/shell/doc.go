// Package shell provides command execution tools.
//
// These tools wrap the host executor so workflow roles can run arbitrary
// commands. A non-zero exit code is reported in the result payload, not
// as a Go error; errors are reserved for commands that never started.
//
// Tools:
//   - run_shell_command: Execute a shell command string
//   - bash: Execute a multi-line bash script
package shell
