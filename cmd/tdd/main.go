package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/EGAdams/adk-web/internal/config"
	"github.com/EGAdams/adk-web/internal/executor"
	"github.com/EGAdams/adk-web/internal/logging"
	"github.com/EGAdams/adk-web/internal/refactor"
	"github.com/EGAdams/adk-web/internal/runner"
	"github.com/EGAdams/adk-web/internal/tasks"
	"github.com/EGAdams/adk-web/internal/tools"
	toolscore "github.com/EGAdams/adk-web/internal/tools/core"
	toolshell "github.com/EGAdams/adk-web/internal/tools/shell"
	tooltdd "github.com/EGAdams/adk-web/internal/tools/tdd"
	"github.com/EGAdams/adk-web/internal/workspace"
)

var (
	// Global flags
	verbose       bool
	workspacePath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tdd",
	Short: "tdd - test-driven workflow runner",
	Long: `tdd manages a small red/green/refactor workspace.

It provisions separate code and test directories, writes generated files
into them, runs the project's real test suite, diagnoses failures, and
applies mechanical refactorings. Command failures (non-zero exits) are
reported as structured results, not process errors.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if err := logging.Initialize(workspacePath); err != nil {
			logger.Warn("file logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app bundles the wired-up subsystems a command needs.
type app struct {
	cfg      *config.Config
	ws       *workspace.Workspace
	exec     executor.Executor
	runner   *runner.Runner
	store    *tasks.Store
	engine   *refactor.Engine
	toolset  *tooltdd.Toolset
	registry *tools.Registry
}

// newApp loads the workspace config and wires every subsystem together.
func newApp() (*app, error) {
	cfg, err := config.Load(config.Path(workspacePath))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	wsCfg := cfg.Workspace
	wsCfg.CodeDir = resolve(wsCfg.CodeDir)
	wsCfg.TestDir = resolve(wsCfg.TestDir)
	ws := workspace.New(wsCfg)

	timeout, err := cfg.Execution.ParsedTimeout()
	if err != nil {
		return nil, err
	}
	exec := executor.NewDirectWithConfig(executor.Config{
		DefaultTimeout:   timeout,
		MaxOutputBytes:   cfg.Execution.MaxOutputBytes,
		WorkingDirectory: resolve(cfg.Execution.WorkingDirectory),
	})

	r := runner.New(exec, cfg.Runner, workspacePath)

	store, err := tasks.NewStore(filepath.Join(workspacePath, config.ConfigDir))
	if err != nil {
		return nil, err
	}

	engine := refactor.New(ws)
	toolset := tooltdd.NewToolset(store, r, engine)

	registry := tools.NewRegistry()
	if err := toolscore.RegisterAll(registry, ws); err != nil {
		store.Close()
		return nil, err
	}
	if err := toolshell.RegisterAll(registry, exec); err != nil {
		store.Close()
		return nil, err
	}
	if err := toolset.RegisterAll(registry); err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		ws:       ws,
		exec:     exec,
		runner:   r,
		store:    store,
		engine:   engine,
		toolset:  toolset,
		registry: registry,
	}, nil
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// resolve makes a config-relative path absolute within the workspace.
func resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspacePath, path)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitCodeError carries a process exit code out of a command's RunE so
// deferred cleanup (sqlite store, log files) runs before the process
// terminates; os.Exit inside RunE would skip it.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", ".", "Workspace directory")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(writeTestCmd)
	rootCmd.AddCommand(writeCodeCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(refactorCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(toolCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// cobra skips PersistentPostRun when RunE errors.
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}

		var exit exitCodeError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
