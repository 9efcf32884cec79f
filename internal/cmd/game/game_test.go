package game

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	coregame "github.com/louisbranch/ladders/internal/core/game"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Strategy != "guarded" || cfg.Die != "cycle" || cfg.Sides != 6 {
		t.Fatalf("config = %+v, want guarded cycle d6", cfg)
	}
	if cfg.MaxTurns != 1000 || cfg.Locale != "en-US" || cfg.Verbose || cfg.List != 0 {
		t.Fatalf("config = %+v, want default limits", cfg)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("LADDERS_STRATEGY", "deferred")
	t.Setenv("LADDERS_LOCALE", "pt-BR")

	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-die", "seeded", "-seed", "7", "-verbose", "-list", "3"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Strategy != "deferred" || cfg.Locale != "pt-BR" {
		t.Fatalf("config = %+v, want env overrides", cfg)
	}
	if cfg.Die != "seeded" || cfg.Seed != 7 || !cfg.Verbose || cfg.List != 3 {
		t.Fatalf("config = %+v, want flag overrides", cfg)
	}
}

func TestParseConfigRejectsBadFlag(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, []string{"-sides", "many"}); err == nil {
		t.Fatal("expected flag parse error")
	}
}

func TestRunPrintsGameOver(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), defaultConfig(), &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "Game over!\n" {
		t.Fatalf("output = %q, want game over line", out.String())
	}
}

func TestRunVerbosePrintsTurns(t *testing.T) {
	cfg := defaultConfig()
	cfg.Verbose = true

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 12 {
		t.Fatalf("lines = %d, want 10 turns, summary and game over: %q", len(lines), out.String())
	}
	if lines[0] != "Turn 1: rolled 1, 0 -> 1" {
		t.Fatalf("first line = %q", lines[0])
	}
	if lines[1] != "Turn 2: rolled 2, 1 -> 11 (ladder +8)" {
		t.Fatalf("second line = %q", lines[1])
	}
	if lines[10] != "Finished on square 27 after 10 turns." {
		t.Fatalf("summary line = %q", lines[10])
	}
	if lines[11] != "Game over!" {
		t.Fatalf("last line = %q", lines[11])
	}
}

func TestRunLocalizedGameOver(t *testing.T) {
	cfg := defaultConfig()
	cfg.Locale = "pt-BR"

	var out bytes.Buffer
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "Fim de jogo!\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunWithBoardScriptAndDatabase(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "short.lua")
	if err := os.WriteFile(scriptPath, []byte("local b = Board.new(6); b:ladder(2, 5); return b"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	cfg := defaultConfig()
	cfg.BoardScript = scriptPath
	cfg.DBPath = filepath.Join(dir, "games.db")

	var out, errOut bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(errOut.String(), "finished on square") {
		t.Fatalf("logs = %q, want finish log", errOut.String())
	}

	cfg.List = 5
	out.Reset()
	if err := Run(context.Background(), cfg, &out, nil); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out.String(), "\tshort\tguarded\tcycle\t") || !strings.Contains(out.String(), "finished") {
		t.Fatalf("list output = %q", out.String())
	}
}

func TestRunListRequiresDatabase(t *testing.T) {
	cfg := defaultConfig()
	cfg.List = 5
	if err := Run(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected missing store error")
	}
}

func TestRunTurnLimit(t *testing.T) {
	scriptPath := filepath.Join(t.TempDir(), "loop.lua")
	if err := os.WriteFile(scriptPath, []byte("local b = Board.new(10); b:shoot(2, 0); return b"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	cfg := defaultConfig()
	cfg.BoardScript = scriptPath
	cfg.Sides = 1
	cfg.MaxTurns = 20
	cfg.Verbose = true

	var out bytes.Buffer
	err := Run(context.Background(), cfg, &out, nil)
	if !errors.Is(err, coregame.ErrTurnLimit) {
		t.Fatalf("err = %v, want %v", err, coregame.ErrTurnLimit)
	}
	if strings.Contains(out.String(), "Game over!") {
		t.Fatalf("output = %q, want no game over line", out.String())
	}
	if !strings.Contains(out.String(), "without finishing") {
		t.Fatalf("output = %q, want turn limit summary", out.String())
	}
}

func TestRunRejectsOversizedBoardScript(t *testing.T) {
	scriptPath := filepath.Join(t.TempDir(), "huge.lua")
	if err := os.WriteFile(scriptPath, []byte("return Board.new(2^53)"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	cfg := defaultConfig()
	cfg.BoardScript = scriptPath
	if err := Run(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected board script error")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "strategy", mutate: func(c *Config) { c.Strategy = "sideways" }},
		{name: "die", mutate: func(c *Config) { c.Die = "loaded" }},
		{name: "script", mutate: func(c *Config) { c.BoardScript = filepath.Join(t.TempDir(), "missing.lua") }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(&cfg)
			if err := Run(context.Background(), cfg, nil, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func defaultConfig() Config {
	return Config{
		Strategy: "guarded",
		Die:      "cycle",
		Sides:    6,
		MaxTurns: 1000,
		Locale:   "en-US",
	}
}
