package main

import (
	"fmt"
	"os"

	"github.com/Asikur22/daily-tasks-tracker/internal/config"
	"github.com/Asikur22/daily-tasks-tracker/internal/storage"
	"github.com/Asikur22/daily-tasks-tracker/internal/tracker"
	"github.com/Asikur22/daily-tasks-tracker/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app, err := tracker.New(store)
	if err != nil {
		fmt.Printf("failed to load data: %v\n", err)
		os.Exit(1)
	}

	if err := ui.Run(app, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
