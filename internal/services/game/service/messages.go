package service

import (
	"strconv"

	"github.com/louisbranch/ladders/internal/core/game"
	"github.com/louisbranch/ladders/internal/platform/i18n/catalog"
)

// GameOverMessage returns the status line printed when a game ends.
func GameOverMessage(locale string) string {
	return catalog.Default().Sprintf(locale, "game.over")
}

// SummaryMessage describes where a session ended.
func SummaryMessage(locale string, session Session) string {
	key := "game.summary"
	if !session.Result.Finished {
		key = "game.turn_limit"
	}
	return catalog.Default().Sprintf(locale, key, session.Result.Position, session.Result.Turns)
}

// MoveMessage describes one turn.
func MoveMessage(locale string, move game.Move) string {
	switch {
	case move.Jump > 0:
		return catalog.Default().Sprintf(locale, "game.turn.ladder", move.Turn, move.Roll, move.From, move.To, signed(move.Jump))
	case move.Jump < 0:
		return catalog.Default().Sprintf(locale, "game.turn.shoot", move.Turn, move.Roll, move.From, move.To, signed(move.Jump))
	default:
		return catalog.Default().Sprintf(locale, "game.turn", move.Turn, move.Roll, move.From, move.To)
	}
}

func signed(value int) string {
	if value > 0 {
		return "+" + strconv.Itoa(value)
	}
	return strconv.Itoa(value)
}
