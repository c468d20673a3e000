// Package main provides the entry point for splitmux.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/abdullathedruid/splitmux/internal/app"
	"github.com/abdullathedruid/splitmux/internal/config"
	"github.com/abdullathedruid/splitmux/internal/logger"
	"github.com/abdullathedruid/splitmux/internal/preset"
	"github.com/abdullathedruid/splitmux/internal/store"
	"github.com/abdullathedruid/splitmux/internal/version"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	noRestore := flag.Bool("no-restore", false, "start with a fresh layout")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("splitmux %s\n", version.Short())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *noRestore {
		cfg.NoRestore = true
	}

	if err := cfg.EnsureDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogFile()); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.SetDebug(*debug)
	log := logger.ComponentLogger("main")
	log.Info("splitmux starting", "version", version.Short(), "data_dir", cfg.DataDir)

	ctx := context.Background()

	st, err := store.Open(ctx, cfg.SnapshotDB())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	catalog, err := preset.NewCatalog(cfg.PresetsFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading presets: %v\n", err)
		os.Exit(1)
	}
	watcher, err := preset.NewWatcher(catalog)
	if err != nil {
		// Hot reload is a convenience; run without it.
		log.Warn("preset watching unavailable", "error", err)
		watcher = nil
	}

	application, err := app.New(app.Options{
		Config:  cfg,
		Log:     logger.ComponentLogger("app"),
		Store:   st,
		Catalog: catalog,
		Watcher: watcher,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting splitmux: %v\n", err)
		os.Exit(1)
	}

	if err := application.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing workspace: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
