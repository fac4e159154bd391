package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "simulated_codebase", cfg.Workspace.CodeDir)
	assert.Equal(t, "simulated_tests", cfg.Workspace.TestDir)
	assert.NoError(t, cfg.Validate())

	// Observed contract: no timeout unless configured
	d, err := cfg.Execution.ParsedTimeout()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Workspace, cfg.Workspace)
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
workspace:
  code_dir: src
  test_dir: tests
execution:
  default_timeout: 30s
runner:
  test_command: "pytest -q"
logging:
  debug_mode: true
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.Workspace.CodeDir)
	assert.Equal(t, "tests", cfg.Workspace.TestDir)
	assert.Equal(t, "pytest -q", cfg.Runner.TestCommand)
	assert.True(t, cfg.Logging.DebugMode)

	d, err := cfg.Execution.ParsedTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Runner.TestCommand = "go test ./..."
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "go test ./...", got.Runner.TestCommand)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("workspace dirs", func(t *testing.T) {
		t.Setenv("TDD_CODE_DIR", "generated/src")
		t.Setenv("TDD_TEST_DIR", "generated/tests")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "generated/src", cfg.Workspace.CodeDir)
		assert.Equal(t, "generated/tests", cfg.Workspace.TestDir)
	})

	t.Run("debug toggle", func(t *testing.T) {
		t.Setenv("TDD_DEBUG", "1")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"empty code dir", func(c *Config) { c.Workspace.CodeDir = "" }, true},
		{"empty test dir", func(c *Config) { c.Workspace.TestDir = "" }, true},
		{"same dirs", func(c *Config) { c.Workspace.TestDir = c.Workspace.CodeDir }, true},
		{"bad timeout", func(c *Config) { c.Execution.DefaultTimeout = "soon" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{DebugMode: false}
	assert.False(t, lc.IsCategoryEnabled("shell"))

	lc = LoggingConfig{DebugMode: true}
	assert.True(t, lc.IsCategoryEnabled("shell"))

	lc = LoggingConfig{DebugMode: true, Categories: map[string]bool{"shell": false}}
	assert.False(t, lc.IsCategoryEnabled("shell"))
	assert.True(t, lc.IsCategoryEnabled("workspace"))
}
