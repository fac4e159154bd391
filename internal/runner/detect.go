package runner

import (
	"os"
	"path/filepath"
	"strings"
)

// detectTestCommand detects the appropriate test command for a project.
func detectTestCommand(dir string) string {
	checks := []struct {
		file    string
		command string
	}{
		{"go.mod", "go test ./..."},
		{"Cargo.toml", "cargo test"},
		{"package.json", "npm test"},
		{"pytest.ini", "pytest"},
		{"setup.py", "python -m pytest"},
		{"pyproject.toml", "pytest"},
		{"build.gradle", "./gradlew test"},
		{"pom.xml", "mvn test"},
	}

	for _, check := range checks {
		if _, err := os.Stat(filepath.Join(dir, check.file)); err == nil {
			return check.command
		}
	}

	return ""
}

// detectBuildCommand detects the appropriate build command for a project.
func detectBuildCommand(dir string) string {
	checks := []struct {
		file    string
		command string
	}{
		{"go.mod", "go build ./..."},
		{"Cargo.toml", "cargo build"},
		{"package.json", "npm run build"},
		{"Makefile", "make"},
		{"build.gradle", "./gradlew build"},
		{"pom.xml", "mvn package"},
		{"pyproject.toml", "python -m build"},
	}

	for _, check := range checks {
		if _, err := os.Stat(filepath.Join(dir, check.file)); err == nil {
			return check.command
		}
	}

	return ""
}

// addTestPattern narrows a test command to tests matching pattern.
func addTestPattern(command, pattern string) string {
	switch {
	case strings.HasPrefix(command, "go test"):
		return command + " -run " + pattern
	case strings.HasPrefix(command, "pytest"), strings.Contains(command, "-m pytest"):
		return command + " -k " + pattern
	case strings.HasPrefix(command, "npm test"):
		return command + " -- --grep " + pattern
	case strings.HasPrefix(command, "cargo test"):
		return command + " " + pattern
	}
	return command + " " + pattern
}
