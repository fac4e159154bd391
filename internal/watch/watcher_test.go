package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/EGAdams/adk-web/internal/config"
	"github.com/EGAdams/adk-web/internal/executor"
	"github.com/EGAdams/adk-web/internal/runner"
	"github.com/EGAdams/adk-web/internal/workspace"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingExecutor counts executions and succeeds immediately.
type countingExecutor struct {
	calls atomic.Int64
}

func (c *countingExecutor) Execute(ctx context.Context, cmd executor.Command) (*executor.Result, error) {
	c.calls.Add(1)
	return &executor.Result{
		Status:  executor.StatusSuccess,
		Command: cmd.CommandString(),
		Stdout:  "ok",
	}, nil
}

func newTestWatcher(t *testing.T, exec executor.Executor, onReport OnReport) (*Watcher, *workspace.Workspace) {
	t.Helper()

	dir := t.TempDir()
	ws := workspace.New(config.WorkspaceConfig{
		CodeDir: filepath.Join(dir, "code"),
		TestDir: filepath.Join(dir, "tests"),
	})
	if err := ws.EnsureDirs(); err != nil {
		t.Fatal(err)
	}

	r := runner.New(exec, config.RunnerConfig{TestCommand: "go test ./..."}, dir)

	w, err := New(ws, r, onReport)
	if err != nil {
		t.Fatal(err)
	}
	// Short settle window keeps the test fast
	w.debounceDur = 50 * time.Millisecond
	return w, ws
}

func TestWatcher_TriggersRunOnWrite(t *testing.T) {
	exec := &countingExecutor{}
	reports := make(chan *runner.Report, 8)

	w, ws := newTestWatcher(t, exec, func(r *runner.Report) { reports <- r })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if _, err := ws.WriteCodeFile("calc.py", "x = 1\n"); err != nil {
		t.Fatal(err)
	}

	select {
	case report := <-reports:
		if report.Status != runner.StatusSuccess {
			t.Errorf("report status = %q", report.Status)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no test run triggered within 5s")
	}

	if exec.calls.Load() == 0 {
		t.Error("executor never invoked")
	}

	stats := w.Snapshot()
	if stats.RunsTriggered == 0 {
		t.Error("stats should record a triggered run")
	}
}

func TestWatcher_IgnoresTempFiles(t *testing.T) {
	exec := &countingExecutor{}

	w, ws := newTestWatcher(t, exec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Editor temp files shouldn't count as workspace changes
	tmp := filepath.Join(ws.CodeDir(), ".calc.py.swp")
	if err := os.WriteFile(tmp, []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)

	stats := w.Snapshot()
	if stats.FilesCreated != 0 && stats.FilesModified != 0 {
		t.Errorf("temp file counted as change: %+v", stats)
	}
}

// blockingExecutor holds every run until released so a test can overlap
// triggers with an in-flight run.
type blockingExecutor struct {
	entered     chan struct{}
	release     chan struct{}
	releaseOnce sync.Once
	calls       atomic.Int64
}

func (b *blockingExecutor) Execute(ctx context.Context, cmd executor.Command) (*executor.Result, error) {
	b.calls.Add(1)
	b.entered <- struct{}{}
	<-b.release
	return &executor.Result{Status: executor.StatusSuccess, Command: cmd.CommandString()}, nil
}

func (b *blockingExecutor) releaseAll() {
	b.releaseOnce.Do(func() { close(b.release) })
}

func TestWatcher_CoalescesOverlappingTriggers(t *testing.T) {
	exec := &blockingExecutor{
		entered: make(chan struct{}, 3),
		release: make(chan struct{}),
	}
	var reports atomic.Int64

	w, _ := newTestWatcher(t, exec, func(*runner.Report) { reports.Add(1) })
	defer w.watcher.Close()
	defer exec.releaseAll()

	ctx := context.Background()
	trigger := func(path string) {
		w.mu.Lock()
		w.pending[path] = time.Now().Add(-time.Second)
		w.mu.Unlock()
		w.processSettled(ctx)
	}

	trigger("calc.py")
	<-exec.entered // first run is now in flight

	// These arrive mid-run and must join it, not queue more runs.
	trigger("calc2.py")
	trigger("calc3.py")
	time.Sleep(150 * time.Millisecond)

	exec.releaseAll()
	w.runWG.Wait()

	if got := exec.calls.Load(); got != 1 {
		t.Errorf("executor ran %d times, want 1", got)
	}
	if got := w.Snapshot().RunsTriggered; got != 1 {
		t.Errorf("runs triggered = %d, want 1", got)
	}
	if got := reports.Load(); got != 1 {
		t.Errorf("onReport called %d times, want 1", got)
	}
}

func TestWatcher_EventLoopDrainsDuringRun(t *testing.T) {
	exec := &blockingExecutor{
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}

	w, ws := newTestWatcher(t, exec, nil)
	defer exec.releaseAll()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if _, err := ws.WriteCodeFile("calc.py", "x = 1\n"); err != nil {
		t.Fatal(err)
	}
	<-exec.entered // run in flight, loop must still accept events

	if _, err := ws.WriteCodeFile("other.py", "y = 2\n"); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		if w.Snapshot().FilesCreated+w.Snapshot().FilesModified >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("event loop blocked behind the in-flight run")
		case <-time.After(10 * time.Millisecond):
		}
	}

	exec.releaseAll()
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, _ := newTestWatcher(t, &countingExecutor{}, nil)

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	w.Stop()
	w.Stop() // Second stop must not panic or block
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"code/calc.py", true},
		{"tests/test_calc.py", true},
		{"code/.hidden", false},
		{"code/calc.py~", false},
		{"code/.calc.py.swp", false},
		{"code/build.tmp", false},
	}

	for _, tt := range tests {
		if got := relevant(tt.path); got != tt.want {
			t.Errorf("relevant(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
