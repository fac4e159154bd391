package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetState clears package-level logging state between tests.
func resetState() {
	CloseAll()
	loggers = make(map[Category]*Logger)
	logsDir = ""
	workspace = ""
	config = loggingConfig{}
	logLevel = LevelInfo
}

func writeConfig(t *testing.T, ws, content string) {
	t.Helper()
	configDir := filepath.Join(ws, ".tdd")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestAllCategoriesLog(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, `
logging:
  level: debug
  debug_mode: true
  categories:
    boot: true
    config: true
    workspace: true
    tools: true
    shell: true
    tasks: true
    runner: true
    watch: true
`)

	resetState()
	defer resetState()

	if err := Initialize(tempDir); err != nil {
		t.Fatalf("failed to initialize logging: %v", err)
	}

	if !IsDebugMode() {
		t.Error("expected debug mode to be enabled")
	}

	categories := []Category{
		CategoryBoot, CategoryConfig, CategoryWorkspace, CategoryTools,
		CategoryShell, CategoryTasks, CategoryRunner, CategoryWatch,
	}

	for _, cat := range categories {
		Get(cat).Info("test message for %s", cat)
	}
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(tempDir, ".tdd", "logs"))
	if err != nil {
		t.Fatalf("failed to read logs dir: %v", err)
	}

	found := make(map[string]bool)
	for _, e := range entries {
		for _, cat := range categories {
			if strings.HasSuffix(e.Name(), "_"+string(cat)+".log") {
				found[string(cat)] = true
			}
		}
	}
	for _, cat := range categories {
		if !found[string(cat)] {
			t.Errorf("no log file created for category %s", cat)
		}
	}
}

func TestProductionModeIsSilent(t *testing.T) {
	tempDir := t.TempDir()

	// No config file at all: production mode.
	resetState()
	defer resetState()

	if err := Initialize(tempDir); err != nil {
		t.Fatalf("failed to initialize logging: %v", err)
	}

	if IsDebugMode() {
		t.Error("expected debug mode off without a config")
	}

	Boot("this should not be written anywhere")
	Workspace("neither should this")

	if _, err := os.Stat(filepath.Join(tempDir, ".tdd", "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not exist in production mode")
	}
}

func TestCategoryToggle(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, `
logging:
  level: info
  debug_mode: true
  categories:
    shell: false
    runner: true
`)

	resetState()
	defer resetState()

	if err := Initialize(tempDir); err != nil {
		t.Fatalf("failed to initialize logging: %v", err)
	}

	if IsCategoryEnabled(CategoryShell) {
		t.Error("shell category should be disabled")
	}
	if !IsCategoryEnabled(CategoryRunner) {
		t.Error("runner category should be enabled")
	}
	// Unlisted categories default to enabled in debug mode.
	if !IsCategoryEnabled(CategoryTasks) {
		t.Error("unlisted category should default to enabled")
	}
}

func TestLogLevelFiltering(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, `
logging:
  level: warn
  debug_mode: true
`)

	resetState()
	defer resetState()

	if err := Initialize(tempDir); err != nil {
		t.Fatalf("failed to initialize logging: %v", err)
	}

	l := Get(CategoryShell)
	l.Debug("dropped debug")
	l.Info("dropped info")
	l.Warn("kept warn")
	l.Error("kept error")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(tempDir, ".tdd", "logs"))
	if err != nil {
		t.Fatalf("failed to read logs dir: %v", err)
	}

	var content string
	for _, e := range entries {
		if strings.Contains(e.Name(), "shell") {
			data, err := os.ReadFile(filepath.Join(tempDir, ".tdd", "logs", e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			content = string(data)
		}
	}

	if strings.Contains(content, "dropped") {
		t.Errorf("low-level messages were written: %s", content)
	}
	if !strings.Contains(content, "kept warn") || !strings.Contains(content, "kept error") {
		t.Errorf("warn/error messages missing: %s", content)
	}
}

func TestReloadConfig(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, `
logging:
  debug_mode: false
`)

	resetState()
	defer resetState()

	if err := Initialize(tempDir); err != nil {
		t.Fatalf("failed to initialize logging: %v", err)
	}
	if IsDebugMode() {
		t.Fatal("debug mode should start off")
	}

	writeConfig(t, tempDir, `
logging:
  debug_mode: true
`)

	if err := ReloadConfig(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !IsDebugMode() {
		t.Error("debug mode should be on after reload")
	}
}
