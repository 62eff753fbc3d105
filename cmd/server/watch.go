package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/raja-kanniappa/agentlens/internal/service"
)

// watchSimulationConfig re-reads the config file on change and applies
// the simulation section to the running service. Only the simulation
// settings reload live; everything else needs a restart.
//
// The watch is on the directory, not the file: editors and config
// management tools replace files by rename, which drops a file-level
// watch.
func watchSimulationConfig(ctx context.Context, path string, svc *service.Service) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("resolve config path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadConfig(abs)
				if err != nil {
					log.Printf("config reload skipped: %v", err)
					continue
				}
				svc.SetErrorSimulation(cfg.Simulation.Enabled, cfg.Simulation.Rate)
				log.Printf("simulation settings reloaded: enabled=%v rate=%v",
					cfg.Simulation.Enabled, cfg.Simulation.Rate)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watch error: %v", err)
			}
		}
	}()

	return nil
}
