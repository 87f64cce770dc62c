package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mnemo-mcp/mnemo/internal/watcher"
)

// DefaultMemoryFile is resolved against the process working directory.
const DefaultMemoryFile = "memories.md"

type Config struct {
	MemoryFile string         `yaml:"memory_file"`
	LogLevel   string         `yaml:"log_level"`
	LogFormat  string         `yaml:"log_format"`
	Watcher    watcher.Config `yaml:"watcher"`
}

func Load() *Config {
	return &Config{
		MemoryFile: DefaultMemoryFile,
		LogLevel:   "info",
		LogFormat:  "text",
		Watcher:    watcher.DefaultConfig(),
	}
}

// LoadFile layers a YAML config file over the defaults. Unset fields
// keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.MemoryFile == "" {
		cfg.MemoryFile = DefaultMemoryFile
	}

	return cfg, nil
}

func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.MemoryFile)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
