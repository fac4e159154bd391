// Package watch reruns the test suite when workspace files change.
// It watches the code and test directories, debounces rapid saves, and
// coalesces overlapping triggers into a single test run.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/singleflight"

	"github.com/EGAdams/adk-web/internal/logging"
	"github.com/EGAdams/adk-web/internal/runner"
	"github.com/EGAdams/adk-web/internal/workspace"
)

// OnReport is called after each triggered test run.
type OnReport func(*runner.Report)

// Stats tracks watcher activity for debugging.
type Stats struct {
	FilesCreated  int
	FilesModified int
	FilesDeleted  int
	RunsTriggered int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// Watcher observes the workspace and triggers test runs on changes.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	runner      *runner.Runner
	dirs        []string
	onReport    OnReport
	debounceDur time.Duration
	pending     map[string]time.Time
	group       singleflight.Group
	runWG       sync.WaitGroup
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// New creates a watcher over the workspace's code and test directories.
// onReport may be nil.
func New(ws *workspace.Workspace, r *runner.Runner, onReport OnReport) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:     fw,
		runner:      r,
		dirs:        []string{ws.CodeDir(), ws.TestDir()},
		onReport:    onReport,
		debounceDur: 500 * time.Millisecond, // settle window for rapid saves
		pending:     make(map[string]time.Time),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			logging.Get(logging.CategoryWatch).Warn("watch failed for %s: %v", dir, err)
			continue
		}
		logging.Watch("watching %s", dir)
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop and any in-flight
// test run to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.runWG.Wait()

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryWatch).Error("error closing watcher: %v", err)
	}
	logging.Watch("stopped")
}

// Snapshot returns a copy of the watcher activity counters.
func (w *Watcher) Snapshot() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// run is the main event loop.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// Timer for batching rapid changes
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Watch("context cancelled")
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWatch).Error("watch error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.processSettled(ctx)
		}
	}
}

// handleEvent records a filesystem event for debounced processing.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !relevant(event.Name) {
		return
	}

	var op string
	switch {
	case event.Op&fsnotify.Create != 0:
		op = "create"
	case event.Op&fsnotify.Write != 0:
		op = "modify"
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		op = "delete"
	default:
		return // Ignore chmod, etc.
	}

	logging.WatchDebug("%s: %s", op, event.Name)

	w.mu.Lock()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventTime = time.Now()
	switch op {
	case "create":
		w.stats.FilesCreated++
	case "modify":
		w.stats.FilesModified++
	case "delete":
		w.stats.FilesDeleted++
	}
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// processSettled triggers a test run once changes settle past the
// debounce window. The run happens off the event loop so fsnotify events
// keep draining; triggers landing while a run is in flight join it through
// the singleflight group instead of queueing another run.
func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	settled := false
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounceDur {
			delete(w.pending, path)
			settled = true
		}
	}
	w.mu.Unlock()

	if !settled {
		return
	}

	w.runWG.Add(1)
	go func() {
		defer w.runWG.Done()

		// The inner func executes once per coalesced batch; joined
		// triggers share its result without re-running the suite.
		_, err, _ := w.group.Do("run-tests", func() (any, error) {
			report, err := w.runner.Run(ctx, "")

			w.mu.Lock()
			w.stats.RunsTriggered++
			if err != nil {
				w.stats.Errors++
			}
			w.mu.Unlock()

			if err != nil {
				return nil, err
			}

			logging.Watch("triggered run: %s (%s)", report.Status, report.Summary)
			if w.onReport != nil {
				w.onReport(report)
			}
			return report, nil
		})
		if err != nil {
			logging.Get(logging.CategoryWatch).Error("triggered run failed: %v", err)
		}
	}()
}

// relevant filters editor temp files and hidden files out of the stream.
func relevant(path string) bool {
	base := filepath.Base(path)
	if base == "" || base == "." || strings.HasPrefix(base, ".") {
		return false
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".tmp") {
		return false
	}
	return true
}
