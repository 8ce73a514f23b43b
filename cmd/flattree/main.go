// Command flattree materializes flat parent-key records into trees.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/flattree/internal/adapters/driven/config/file"
	"github.com/custodia-labs/flattree/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/flattree/internal/adapters/driving/cli"
	"github.com/custodia-labs/flattree/internal/core/services"
	"github.com/custodia-labs/flattree/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, wire); err != nil {
		stop()
		os.Exit(1)
	}
}

// wire builds the adapters and services for one command invocation.
func wire(paths cli.Paths) (*cli.Services, error) {
	cfg, err := file.NewConfigStore(paths.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config: %s", cfg.Path())

	settings, err := services.LoadEngineSettings(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(paths.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	hierarchies := file.NewHierarchyStore(cfg)
	return &cli.Services{
		Tree:        services.NewTreeService(hierarchies, store, settings),
		Sample:      services.NewSampleService(store),
		Records:     store,
		Hierarchies: hierarchies,
		Close:       store.Close,
	}, nil
}
