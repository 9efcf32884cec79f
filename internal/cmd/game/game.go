// Package game parses game command flags and plays a game.
package game

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/louisbranch/ladders/internal/core/board/script"
	"github.com/louisbranch/ladders/internal/core/dice"
	coregame "github.com/louisbranch/ladders/internal/core/game"
	entrypoint "github.com/louisbranch/ladders/internal/platform/cmd"
	"github.com/louisbranch/ladders/internal/services/game/service"
	"github.com/louisbranch/ladders/internal/services/game/storage/sqlite"
)

// Config holds game command configuration.
type Config struct {
	Strategy    string `env:"LADDERS_STRATEGY"     envDefault:"guarded"`
	Die         string `env:"LADDERS_DIE"          envDefault:"cycle"`
	Sides       int    `env:"LADDERS_DIE_SIDES"    envDefault:"6"`
	Seed        int64  `env:"LADDERS_SEED"`
	MaxTurns    int    `env:"LADDERS_MAX_TURNS"    envDefault:"1000"`
	BoardScript string `env:"LADDERS_BOARD_SCRIPT"`
	DBPath      string `env:"LADDERS_DB_PATH"`
	Locale      string `env:"LADDERS_LOCALE"       envDefault:"en-US"`
	Verbose     bool   `env:"LADDERS_VERBOSE"`
	// List prints the most recent saved games instead of playing.
	List int
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "loop strategy: guarded (while) or deferred (repeat-while)")
	fs.StringVar(&cfg.Die, "die", cfg.Die, "die kind: cycle or seeded")
	fs.IntVar(&cfg.Sides, "sides", cfg.Sides, "number of die faces")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the seeded die (0 picks one)")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "stop unfinished games after this many turns")
	fs.StringVar(&cfg.BoardScript, "board", cfg.BoardScript, "path to a Lua board script (default: classic board)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to a SQLite database for saving games")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "print every turn")
	fs.IntVar(&cfg.List, "list", 0, "list the most recent saved games and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run plays one game and prints its status to out.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		return run(ctx, cfg, out, errOut)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	logger := log.New(errOut, "", 0)
	opts := []service.Option{service.WithLogger(logger)}
	if strings.TrimSpace(cfg.DBPath) != "" {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Printf("close store: %v", err)
			}
		}()
		opts = append(opts, service.WithStore(store))
	}
	svc := service.New(opts...)

	if cfg.List > 0 {
		return listGames(ctx, svc, cfg.List, out)
	}

	req := service.PlayRequest{
		Strategy: coregame.Strategy(cfg.Strategy),
		Die:      dice.Kind(cfg.Die),
		Sides:    cfg.Sides,
		Seed:     cfg.Seed,
		MaxTurns: cfg.MaxTurns,
	}
	if path := strings.TrimSpace(cfg.BoardScript); path != "" {
		layout, err := script.Load(path)
		if err != nil {
			return fmt.Errorf("board script: %w", err)
		}
		req.Layout = layout
	}

	session, err := svc.Play(ctx, req)
	if err != nil && !errors.Is(err, coregame.ErrTurnLimit) {
		return err
	}
	if cfg.Verbose {
		for _, move := range session.Result.Moves {
			fmt.Fprintln(out, service.MoveMessage(cfg.Locale, move))
		}
		fmt.Fprintln(out, service.SummaryMessage(cfg.Locale, session))
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, service.GameOverMessage(cfg.Locale))
	return nil
}

func listGames(ctx context.Context, svc *service.Service, limit int, out io.Writer) error {
	games, err := svc.ListGames(ctx, limit)
	if err != nil {
		return err
	}
	for _, g := range games {
		status := "finished"
		if !g.Finished {
			status = "unfinished"
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%d turns\tsquare %d\t%s\n",
			g.ID, g.Board, g.Strategy, g.Die, g.Turns, g.Position, status)
	}
	return nil
}
