package shell

import (
	"context"
	"fmt"
	"time"

	"github.com/EGAdams/adk-web/internal/executor"
	"github.com/EGAdams/adk-web/internal/logging"
	"github.com/EGAdams/adk-web/internal/tools"
)

// RunShellCommandTool returns a tool that executes a shell command string
// through the host interpreter. A non-zero exit code comes back in the
// payload as a failed result, not as an error.
func RunShellCommandTool(exec executor.Executor) *tools.Tool {
	return &tools.Tool{
		Name:        "run_shell_command",
		Description: "Execute a shell command and return status, output and exit code",
		Category:    tools.CategoryShell,
		Priority:    70,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			command := tools.StringArg(args, "command")
			if command == "" {
				return nil, fmt.Errorf("command is required")
			}

			cmd := executor.Shell(command)
			applyOptions(&cmd, args)

			logging.Shell("run_shell_command: %s", command)
			return exec.Execute(ctx, cmd)
		},
		Schema: tools.Schema{
			Required: []string{"command"},
			Properties: map[string]tools.Property{
				"command": {
					Type:        "string",
					Description: "The shell command to execute",
				},
				"working_dir": {
					Type:        "string",
					Description: "Working directory for the command",
				},
				"timeout": {
					Type:        "string",
					Description: "Timeout as a duration string (e.g. \"30s\")",
				},
				"stdin": {
					Type:        "string",
					Description: "Input for the command's standard input",
				},
			},
		},
	}
}

// BashTool returns a tool that executes a multi-line bash script.
func BashTool(exec executor.Executor) *tools.Tool {
	return &tools.Tool{
		Name:        "bash",
		Description: "Execute a bash script",
		Category:    tools.CategoryShell,
		Priority:    60,
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			script := tools.StringArg(args, "script")
			if script == "" {
				return nil, fmt.Errorf("script is required")
			}

			cmd := executor.Command{
				Binary:    "bash",
				Arguments: []string{"-c", script},
			}
			applyOptions(&cmd, args)

			logging.Shell("bash: %d bytes", len(script))
			return exec.Execute(ctx, cmd)
		},
		Schema: tools.Schema{
			Required: []string{"script"},
			Properties: map[string]tools.Property{
				"script": {
					Type:        "string",
					Description: "The bash script to execute",
				},
				"working_dir": {
					Type:        "string",
					Description: "Working directory for the script",
				},
				"timeout": {
					Type:        "string",
					Description: "Timeout as a duration string (e.g. \"30s\")",
				},
			},
		},
	}
}

// applyOptions copies the optional common arguments onto cmd. A bad
// timeout string is ignored rather than silently hanging the run forever.
func applyOptions(cmd *executor.Command, args map[string]any) {
	if wd := tools.StringArg(args, "working_dir"); wd != "" {
		cmd.WorkingDirectory = wd
	}
	if in := tools.StringArg(args, "stdin"); in != "" {
		cmd.Stdin = in
	}
	if raw := tools.StringArg(args, "timeout"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cmd.Timeout = d
		} else {
			logging.ShellWarn("ignoring invalid timeout %q: %v", raw, err)
		}
	}
}
