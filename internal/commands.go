package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/dagaz/internal/activity"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/mcpserver"
	"github.com/starford/dagaz/internal/storage"
)

// bootstrap opens the data directory, loads the ledger, and syncs the
// search index. Shared by the seed and mcp commands, which run without the
// HTTP server.
func bootstrap(cfg *Config) (*activity.Store, *index.DB, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Data.Path, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	files, err := storage.NewFS(cfg.Data.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}
	store := activity.NewStore(files, logger)

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init index: %w", err)
	}
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}
	return store, db, nil
}

// RunSeed populates the ledger with sample data and exits.
func RunSeed(_ context.Context, cfg *Config) error {
	store, db, err := bootstrap(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := activity.Seed(store); err != nil {
		return err
	}
	if err := index.Sync(db, store, slog.Default()); err != nil {
		return err
	}
	slog.Info("Sample data seeded", slog.Int("activities", len(store.All())))
	return nil
}

// RunMCP serves the MCP stdio transport until the client disconnects.
func RunMCP(_ context.Context, cfg *Config) error {
	store, db, err := bootstrap(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return mcpserver.New(store, db).ServeStdio()
}
