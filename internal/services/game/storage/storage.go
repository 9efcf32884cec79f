// Package storage defines persistence contracts for played games.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/ladders/internal/platform/errors"
)

var (
	// ErrNotFound indicates a requested game record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrAlreadyExists indicates a game with the same ID was already stored.
	ErrAlreadyExists = apperrors.New(apperrors.CodeAlreadyExists, "record already exists")
)

// MoveRecord stores one turn of a game.
type MoveRecord struct {
	Turn int
	From int
	Roll int
	Jump int
	To   int
}

// GameRecord stores one finished or abandoned game.
type GameRecord struct {
	ID          string
	Board       string
	FinalSquare int
	Strategy    string
	Die         string
	Seed        int64
	Turns       int
	Position    int
	Finished    bool
	Moves       []MoveRecord
	CreatedAt   time.Time
}

// GameStore persists game records.
type GameStore interface {
	PutGame(ctx context.Context, record GameRecord) error
	// GetGame returns the record with its moves ordered by turn.
	GetGame(ctx context.Context, id string) (GameRecord, error)
	// ListGames returns the most recent records first, without moves.
	ListGames(ctx context.Context, limit int) ([]GameRecord, error)
}
