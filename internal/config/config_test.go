package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.MemoryFile != DefaultMemoryFile {
		t.Errorf("MemoryFile = %q, want %q", cfg.MemoryFile, DefaultMemoryFile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if !cfg.Watcher.Enabled {
		t.Error("watcher should be enabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
memory_file: /tmp/notes/memories.md
log_level: debug
watcher:
  enabled: false
  debounce_window: 1s
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.MemoryFile != "/tmp/notes/memories.md" {
		t.Errorf("MemoryFile = %q", cfg.MemoryFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Watcher.Enabled {
		t.Error("watcher should be disabled by config")
	}
	if cfg.Watcher.DebounceWindow != time.Second {
		t.Errorf("DebounceWindow = %v", cfg.Watcher.DebounceWindow)
	}
	// Unset fields keep defaults.
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Load()
	cfg.MemoryFile = filepath.Join(dir, "nested", "memories.md")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "nested")); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}
