// Package main plays a game of shoots and ladders.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	gamecmd "github.com/louisbranch/ladders/internal/cmd/game"
	"github.com/louisbranch/ladders/internal/platform/config"
	apperrors "github.com/louisbranch/ladders/internal/platform/errors"
)

func main() {
	cfg, err := gamecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := gamecmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %s", apperrors.LocalizedMessage(err, cfg.Locale))
	}
}
