package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/mnemo-mcp/mnemo/internal/config"
	"github.com/mnemo-mcp/mnemo/internal/logger"
	"github.com/mnemo-mcp/mnemo/internal/memory"
	"github.com/mnemo-mcp/mnemo/internal/mcp"
	"github.com/mnemo-mcp/mnemo/internal/watcher"
	"github.com/mnemo-mcp/mnemo/pkg/version"
)

func main() {
	var (
		configPath  = pflag.String("config", "", "path to a YAML config file")
		memoryFile  = pflag.String("file", "", "path to the memory file (default memories.md in the working directory)")
		logLevel    = pflag.String("log-level", "", "log level: debug, info, warn, error")
		logFormat   = pflag.String("log-format", "", "log format: text or json")
		showVersion = pflag.Bool("version", false, "print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", version.ServerName, version.Version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *memoryFile != "" {
		cfg.MemoryFile = *memoryFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.LogLevel)
	logCfg.Format = cfg.LogFormat
	logger.Init(logCfg)

	log := logger.With("session", uuid.NewString())

	if err := cfg.EnsureDirectories(); err != nil {
		log.Error("failed to ensure directories", "error", err)
		os.Exit(1)
	}

	store := memory.NewStore(cfg.MemoryFile)
	server := mcp.NewServer(mcp.NewHandler(store))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Watcher.Enabled {
		w, err := watcher.New(cfg.Watcher, cfg.MemoryFile, func() {
			server.NotifyResourceUpdated(mcp.MemoryResourceURI)
		})
		if err != nil {
			log.Warn("file watcher unavailable", "error", err)
		} else if err := w.Start(ctx); err != nil {
			log.Warn("failed to start file watcher", "error", err)
			w.Stop()
		} else {
			defer w.Stop()
		}
	}

	log.Info("server starting",
		"version", version.Version,
		"memoryFile", cfg.MemoryFile)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ProcessStream(os.Stdin, os.Stdout)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, io.EOF) {
			log.Error("stream processing failed", "error", err)
			os.Exit(1)
		}
		log.Info("client disconnected")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}
