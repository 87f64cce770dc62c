package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	flushes := make(chan struct{}, 10)
	d := NewDebouncer(50*time.Millisecond, func() {
		flushes <- struct{}{}
	})
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Add()
	}

	select {
	case <-flushes:
	case <-time.After(time.Second):
		t.Fatal("debouncer never flushed")
	}

	select {
	case <-flushes:
		t.Error("burst produced more than one flush")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncerStopPreventsFlush(t *testing.T) {
	flushes := make(chan struct{}, 1)
	d := NewDebouncer(50*time.Millisecond, func() {
		flushes <- struct{}{}
	})

	d.Add()
	d.Stop()

	select {
	case <-flushes:
		t.Error("flush fired after Stop")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestIgnorePatterns(t *testing.T) {
	cfg := DefaultConfig()
	w := &Watcher{config: cfg}

	ignored := []string{
		"/work/memories.md.swp",
		"/work/.#memories.md",
		"/work/notes.tmp",
		"/work/.git/index",
	}
	for _, path := range ignored {
		if !w.ignored(path) {
			t.Errorf("expected %q to be ignored", path)
		}
	}

	if w.ignored("/work/memories.md") {
		t.Error("memory file must not be ignored")
	}
}

func TestWatcherReportsMemoryFileChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memories.md")

	changes := make(chan struct{}, 10)
	cfg := DefaultConfig()
	cfg.DebounceWindow = 20 * time.Millisecond

	w, err := New(cfg, path, func() {
		changes <- struct{}{}
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("## 2024-01-01 00:00 UTC\nhi\n\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for memory file write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "memories.md")

	changes := make(chan struct{}, 10)
	cfg := DefaultConfig()
	cfg.DebounceWindow = 20 * time.Millisecond

	w, err := New(cfg, path, func() {
		changes <- struct{}{}
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case <-changes:
		t.Error("unrelated file triggered a change")
	case <-time.After(200 * time.Millisecond):
	}
}
