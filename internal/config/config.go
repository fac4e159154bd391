// Package config holds the project configuration loaded from .tdd/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigDir is the per-workspace state directory, relative to the
// workspace root.
const ConfigDir = ".tdd"

// Config holds all tdd configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Workspace directories
	Workspace WorkspaceConfig `yaml:"workspace"`

	// Command execution settings
	Execution ExecutionConfig `yaml:"execution"`

	// Test runner settings
	Runner RunnerConfig `yaml:"runner"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// WorkspaceConfig configures the generated-file directories.
// Both paths are relative to the workspace root.
type WorkspaceConfig struct {
	// CodeDir holds generated production code files.
	CodeDir string `yaml:"code_dir"`

	// TestDir holds generated test files.
	TestDir string `yaml:"test_dir"`
}

// ExecutionConfig configures the command executor.
type ExecutionConfig struct {
	// Default timeout for commands. Empty or "0" means no timeout.
	DefaultTimeout string `yaml:"default_timeout"`

	// Working directory for spawned commands
	WorkingDirectory string `yaml:"working_directory"`

	// MaxOutputBytes caps captured stdout+stderr per stream (0 = default)
	MaxOutputBytes int64 `yaml:"max_output_bytes"`
}

// ParsedTimeout returns DefaultTimeout as a duration.
// Zero means no timeout is enforced.
func (e *ExecutionConfig) ParsedTimeout() (time.Duration, error) {
	if e.DefaultTimeout == "" || e.DefaultTimeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.DefaultTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid default_timeout %q: %w", e.DefaultTimeout, err)
	}
	return d, nil
}

// RunnerConfig configures the test runner.
type RunnerConfig struct {
	// TestCommand overrides auto-detection (e.g. "go test ./...")
	TestCommand string `yaml:"test_command"`

	// BuildCommand overrides auto-detection (e.g. "go build ./...")
	BuildCommand string `yaml:"build_command"`

	// Timeout for a full test run. Empty means the executor default.
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode"` // Master toggle - false = no logging (production)
	Categories map[string]bool `yaml:"categories"` // Per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Returns false if debug_mode is false (production mode).
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true // All enabled by default in debug mode
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true // Enable by default if not specified
	}
	return enabled
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "tdd",
		Version: "1.0.0",

		Workspace: WorkspaceConfig{
			CodeDir: "simulated_codebase",
			TestDir: "simulated_tests",
		},

		Execution: ExecutionConfig{
			DefaultTimeout:   "0", // No timeout unless configured
			WorkingDirectory: ".",
		},

		Runner: RunnerConfig{
			Timeout: "10m",
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Path returns the config file path for a workspace root.
func Path(workspace string) string {
	return filepath.Join(workspace, ConfigDir, "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("TDD_CODE_DIR"); dir != "" {
		c.Workspace.CodeDir = dir
	}
	if dir := os.Getenv("TDD_TEST_DIR"); dir != "" {
		c.Workspace.TestDir = dir
	}
	if cmd := os.Getenv("TDD_TEST_COMMAND"); cmd != "" {
		c.Runner.TestCommand = cmd
	}
	if timeout := os.Getenv("TDD_EXEC_TIMEOUT"); timeout != "" {
		c.Execution.DefaultTimeout = timeout
	}
	if os.Getenv("TDD_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Workspace.CodeDir == "" {
		return fmt.Errorf("workspace.code_dir must not be empty")
	}
	if c.Workspace.TestDir == "" {
		return fmt.Errorf("workspace.test_dir must not be empty")
	}
	if c.Workspace.CodeDir == c.Workspace.TestDir {
		return fmt.Errorf("workspace.code_dir and workspace.test_dir must differ")
	}
	if _, err := c.Execution.ParsedTimeout(); err != nil {
		return err
	}
	return nil
}
