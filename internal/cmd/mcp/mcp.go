// Package mcp parses MCP command flags and serves the game tools over stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/louisbranch/ladders/internal/platform/cmd"
	"github.com/louisbranch/ladders/internal/services/game/service"
	"github.com/louisbranch/ladders/internal/services/game/storage/sqlite"
	mcpservice "github.com/louisbranch/ladders/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath string `env:"LADDERS_DB_PATH" envDefault:"data/ladders.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database (empty disables saving)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the MCP tools until ctx is cancelled. Stdout carries the
// protocol, so logs go to errOut.
func Run(ctx context.Context, cfg Config, errOut io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		server, closeStore, err := newServer(cfg, errOut)
		if err != nil {
			return err
		}
		defer closeStore()
		return server.Serve(ctx)
	})
}

func newServer(cfg Config, errOut io.Writer) (*mcpservice.Server, func(), error) {
	if errOut == nil {
		errOut = io.Discard
	}
	logger := log.New(errOut, "", 0)
	opts := []service.Option{service.WithLogger(logger)}
	closeStore := func() {}

	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create storage dir: %w", err)
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, service.WithStore(store))
		closeStore = func() {
			if err := store.Close(); err != nil {
				logger.Printf("close store: %v", err)
			}
		}
	}

	server, err := mcpservice.New(service.New(opts...))
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return server, closeStore, nil
}
