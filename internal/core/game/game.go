// Package game runs the shoots-and-ladders simulation.
//
// A game starts with the token on square 0 and repeats turns until the token
// reaches or passes the board's final square. Each turn rolls the die once,
// moves the token by the rolled face and applies the offset of the square it
// lands on.
//
// # Strategies
//
// The loop supports two orderings of the exit check and the offset lookup.
// Both describe the same rule and finish the classic board the same way;
// they differ only in how the lookup is kept on the board.
//
//   - StrategyGuarded checks the exit condition before each turn and applies
//     the landing offset immediately. The landing square may already lie
//     past the final square, so the lookup relies on Board.OffsetAt
//     returning 0 for out-of-range squares.
//   - StrategyDeferred applies the offset of the current square at the top of
//     the next turn and checks the exit condition after moving. The lookup
//     only ever happens while the token is known to be on the board, so it
//     needs no guard at all.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/ladders/internal/core/board"
	"github.com/louisbranch/ladders/internal/core/dice"
	apperrors "github.com/louisbranch/ladders/internal/platform/errors"
)

// DefaultMaxTurns bounds a game when Options.MaxTurns is unset.
const DefaultMaxTurns = 1000

// ErrTurnLimit indicates a game did not finish within its turn budget.
var ErrTurnLimit = apperrors.New(apperrors.CodeGameTurnLimit, "turn limit reached")

// ErrUnknownStrategy indicates a strategy name could not be parsed.
var ErrUnknownStrategy = apperrors.New(apperrors.CodeGameUnknownStrategy, "unknown strategy")

var (
	errMissingBoard = errors.New("board is required")
	errMissingDie   = errors.New("die is required")
)

// Strategy selects where the loop checks for the end of the game.
type Strategy string

const (
	// StrategyGuarded checks before rolling and guards the offset lookup.
	StrategyGuarded Strategy = "guarded"
	// StrategyDeferred checks after moving and defers the offset lookup.
	StrategyDeferred Strategy = "deferred"
)

// ParseStrategy parses a strategy name. Empty input selects StrategyGuarded.
func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "guarded", "while", "pre-check":
		return StrategyGuarded, nil
	case "deferred", "repeat", "post-check":
		return StrategyDeferred, nil
	default:
		return "", apperrors.WithMetadata(
			apperrors.CodeGameUnknownStrategy,
			fmt.Sprintf("unknown strategy %q", value),
			map[string]string{"Strategy": value},
		)
	}
}

// Options configures a game.
type Options struct {
	Strategy Strategy
	// MaxTurns bounds the number of turns; zero or less means DefaultMaxTurns.
	MaxTurns int
}

// State is the token position and the last rolled face.
type State struct {
	Position int
	Face     int
}

// Move records one turn.
//
// Jump is the offset applied during the turn. Under StrategyDeferred it was
// earned by the previous turn's landing square and is applied before the
// roll.
type Move struct {
	Turn int
	From int
	Roll int
	Jump int
	To   int
}

// Result is the outcome of a game.
type Result struct {
	State
	Turns    int
	Finished bool
	Moves    []Move
}

// Play runs a game on b using roller until the token reaches the final square.
//
// When the turn budget runs out first, Play returns the partial result along
// with an error matching ErrTurnLimit.
func Play(b *board.Board, roller dice.Roller, opts Options) (Result, error) {
	if b == nil {
		return Result{}, errMissingBoard
	}
	if roller == nil {
		return Result{}, errMissingDie
	}
	strategy := opts.Strategy
	switch strategy {
	case "":
		strategy = StrategyGuarded
	case StrategyGuarded, StrategyDeferred:
	default:
		return Result{}, apperrors.WithMetadata(
			apperrors.CodeGameUnknownStrategy,
			fmt.Sprintf("unknown strategy %q", strategy),
			map[string]string{"Strategy": string(strategy)},
		)
	}
	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	final := b.FinalSquare()
	var state State
	var moves []Move

	for {
		if strategy == StrategyGuarded && state.Position >= final {
			break
		}
		if len(moves) >= maxTurns {
			return newResult(state, moves, false), apperrors.WithMetadata(
				apperrors.CodeGameTurnLimit,
				fmt.Sprintf("game unfinished after %d turns on square %d", maxTurns, state.Position),
				map[string]string{
					"MaxTurns": strconv.Itoa(maxTurns),
					"Position": strconv.Itoa(state.Position),
				},
			)
		}

		move := Move{Turn: len(moves) + 1, From: state.Position}
		if strategy == StrategyDeferred {
			move.Jump = b.OffsetAt(state.Position)
			state.Position += move.Jump
		}
		state.Face = roller.Roll()
		move.Roll = state.Face
		state.Position += state.Face
		if strategy == StrategyGuarded {
			move.Jump = b.OffsetAt(state.Position)
			state.Position += move.Jump
		}
		move.To = state.Position
		moves = append(moves, move)

		if strategy == StrategyDeferred && state.Position >= final {
			break
		}
	}
	return newResult(state, moves, true), nil
}

func newResult(state State, moves []Move, finished bool) Result {
	return Result{
		State:    state,
		Turns:    len(moves),
		Finished: finished,
		Moves:    moves,
	}
}
