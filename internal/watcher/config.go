package watcher

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Enabled        bool
	DebounceWindow time.Duration
	IgnorePatterns []string
}

func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		DebounceWindow: 300 * time.Millisecond,
		IgnorePatterns: []string{
			"**/*.swp",
			"**/*.tmp",
			"**/*~",
			"**/.#*",
			"**/.git/**",
		},
	}
}

// UnmarshalYAML layers file settings over whatever the receiver already
// holds, so absent keys keep their defaults. Durations are given in Go
// syntax ("300ms", "1s").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enabled        *bool    `yaml:"enabled"`
		DebounceWindow *string  `yaml:"debounce_window"`
		IgnorePatterns []string `yaml:"ignore_patterns"`
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Enabled != nil {
		c.Enabled = *raw.Enabled
	}
	if raw.DebounceWindow != nil {
		d, err := time.ParseDuration(*raw.DebounceWindow)
		if err != nil {
			return fmt.Errorf("invalid debounce_window: %w", err)
		}
		c.DebounceWindow = d
	}
	if raw.IgnorePatterns != nil {
		c.IgnorePatterns = raw.IgnorePatterns
	}

	return nil
}
