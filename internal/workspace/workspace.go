// Package workspace provisions the generated-file directories and writes
// named files into them.
//
// A Workspace owns two directories: one for generated production code and
// one for generated tests. Both are created on demand; writes always
// truncate (last write wins, no append semantics).
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/EGAdams/adk-web/internal/config"
	"github.com/EGAdams/adk-web/internal/logging"
)

// PreviewLen is how many characters of written content are echoed back in a
// WriteResult for confirmation and logging.
const PreviewLen = 100

// StatusSuccess is the status carried by every WriteResult; write failures
// surface as errors, never as a result value.
const StatusSuccess = "success"

// WriteResult confirms a completed write.
type WriteResult struct {
	// Status is always "success" on a non-error return.
	Status string `json:"status"`

	// FilePath is the resolved path of the written file.
	FilePath string `json:"file_path"`

	// ContentPreview is the first PreviewLen characters of the content
	// (the whole content when shorter).
	ContentPreview string `json:"content_preview"`
}

// Workspace is the pair of directories used for generated test and
// production files. It is constructed from an explicit config struct;
// there is no process-wide directory state.
type Workspace struct {
	codeDir string
	testDir string
}

// New creates a Workspace from configuration. Directories are not created
// until EnsureDirs or the first write.
func New(cfg config.WorkspaceConfig) *Workspace {
	return &Workspace{
		codeDir: cfg.CodeDir,
		testDir: cfg.TestDir,
	}
}

// CodeDir returns the directory for generated production code.
func (w *Workspace) CodeDir() string { return w.codeDir }

// TestDir returns the directory for generated test code.
func (w *Workspace) TestDir() string { return w.testDir }

// EnsureDirs creates the code and test directories, including missing
// parents. It is idempotent: repeated calls succeed silently. Filesystem
// errors propagate to the caller.
func (w *Workspace) EnsureDirs() error {
	for _, dir := range []string{w.codeDir, w.testDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	logging.WorkspaceDebug("ensured dirs: code=%s test=%s", w.codeDir, w.testDir)
	return nil
}

// WriteTestFile writes a named test file into the test directory,
// overwriting any existing content.
func (w *Workspace) WriteTestFile(name, content string) (*WriteResult, error) {
	return w.write(w.testDir, name, content)
}

// WriteCodeFile writes a named production code file into the code
// directory, overwriting any existing content.
func (w *Workspace) WriteCodeFile(name, content string) (*WriteResult, error) {
	return w.write(w.codeDir, name, content)
}

// ReadFile reads a previously written file from either directory.
// The name is validated the same way as for writes.
func (w *Workspace) ReadFile(dir, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func (w *Workspace) write(dir, name, content string) (*WriteResult, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := w.EnsureDirs(); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name)

	// Names may carry subdirectories (e.g. "pkg/util.py")
	if sub := filepath.Dir(path); sub != dir {
		if err := os.MkdirAll(sub, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", sub, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write file %s: %w", path, err)
	}

	logging.Workspace("wrote %s (%d bytes)", path, len(content))

	return &WriteResult{
		Status:         StatusSuccess,
		FilePath:       path,
		ContentPreview: Preview(content),
	}, nil
}

// Preview returns the first PreviewLen characters of content, or the whole
// content when it is shorter. Characters, not bytes: multi-byte runes count
// once and are never split.
func Preview(content string) string {
	if len(content) <= PreviewLen {
		return content
	}
	count := 0
	for i := range content {
		if count == PreviewLen {
			return content[:i]
		}
		count++
	}
	return content
}

// validateName rejects names that would escape the target directory.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("file name is required")
	}
	if !filepath.IsLocal(name) {
		return fmt.Errorf("file name %q escapes the workspace", name)
	}
	return nil
}
