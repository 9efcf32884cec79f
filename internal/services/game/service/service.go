package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/louisbranch/ladders/internal/core/board"
	"github.com/louisbranch/ladders/internal/core/board/script"
	"github.com/louisbranch/ladders/internal/core/dice"
	"github.com/louisbranch/ladders/internal/core/game"
	apperrors "github.com/louisbranch/ladders/internal/platform/errors"
	"github.com/louisbranch/ladders/internal/platform/id"
	"github.com/louisbranch/ladders/internal/platform/otel"
	"github.com/louisbranch/ladders/internal/random"
	"github.com/louisbranch/ladders/internal/services/game/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ClassicBoardName names the built-in tutorial board.
const ClassicBoardName = "classic"

// ErrStoreNotConfigured indicates a read was attempted without a store.
var ErrStoreNotConfigured = errors.New("game store is not configured")

// PlayRequest describes one game to play.
type PlayRequest struct {
	// Layout overrides the classic board when set.
	Layout   *script.Layout
	Strategy game.Strategy
	Die      dice.Kind
	// Sides defaults to dice.StandardSides.
	Sides int
	// Seed is used by seeded dice; zero asks for a fresh seed.
	Seed     int64
	MaxTurns int
}

// Session is a played game.
type Session struct {
	ID          string
	Board       string
	FinalSquare int
	Strategy    game.Strategy
	Die         dice.Kind
	Seed        int64
	Result      game.Result
	CreatedAt   time.Time
}

// Service plays and records games.
type Service struct {
	store   storage.GameStore
	logger  *log.Logger
	tracer  trace.Tracer
	clock   func() time.Time
	newID   func() (string, error)
	newSeed random.SeedFunc
}

// Option configures a Service.
type Option func(*Service)

// WithStore persists every played game in store.
func WithStore(store storage.GameStore) Option {
	return func(s *Service) { s.store = store }
}

// WithLogger sets the service logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator overrides game ID generation.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithSeedFunc overrides seed generation for unseeded seeded dice.
func WithSeedFunc(newSeed random.SeedFunc) Option {
	return func(s *Service) {
		if newSeed != nil {
			s.newSeed = newSeed
		}
	}
}

// New creates a Service. Without WithStore games are played but not saved.
func New(opts ...Option) *Service {
	s := &Service{
		logger:  log.New(io.Discard, "", 0),
		tracer:  otel.Tracer(),
		clock:   time.Now,
		newID:   id.NewID,
		newSeed: random.NewSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play runs one game.
//
// A game that exhausts its turn budget is still recorded; Play returns its
// session together with an error matching game.ErrTurnLimit.
func (s *Service) Play(ctx context.Context, req PlayRequest) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	boardName, b, err := resolveBoard(req.Layout)
	if err != nil {
		return Session{}, err
	}
	strategy, err := game.ParseStrategy(string(req.Strategy))
	if err != nil {
		return Session{}, err
	}
	kind, err := dice.ParseKind(string(req.Die))
	if err != nil {
		return Session{}, err
	}
	sides := req.Sides
	if sides == 0 {
		sides = dice.StandardSides
	}
	seed := int64(0)
	if kind == dice.KindSeeded {
		seed, err = random.ResolveSeed(req.Seed, s.newSeed)
		if err != nil {
			return Session{}, fmt.Errorf("resolve seed: %w", err)
		}
	}
	roller, err := dice.NewRoller(kind, sides, seed)
	if err != nil {
		return Session{}, err
	}
	gameID, err := s.newID()
	if err != nil {
		return Session{}, fmt.Errorf("generate game id: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "game.play", trace.WithAttributes(
		attribute.String("game.id", gameID),
		attribute.String("game.board", boardName),
		attribute.Int("game.final_square", b.FinalSquare()),
		attribute.String("game.strategy", string(strategy)),
		attribute.String("game.die", string(kind)),
	))
	defer span.End()

	result, playErr := game.Play(b, roller, game.Options{Strategy: strategy, MaxTurns: req.MaxTurns})
	if playErr != nil && !errors.Is(playErr, game.ErrTurnLimit) {
		span.RecordError(playErr)
		span.SetAttributes(attribute.String("error.code", string(apperrors.GetCode(playErr))))
		span.SetStatus(codes.Error, "play failed")
		return Session{}, playErr
	}
	span.SetAttributes(
		attribute.Int("game.turns", result.Turns),
		attribute.Int("game.position", result.Position),
		attribute.Bool("game.finished", result.Finished),
	)

	session := Session{
		ID:          gameID,
		Board:       boardName,
		FinalSquare: b.FinalSquare(),
		Strategy:    strategy,
		Die:         kind,
		Seed:        seed,
		Result:      result,
		CreatedAt:   s.clock().UTC(),
	}

	if s.store != nil {
		if err := s.store.PutGame(ctx, toRecord(session)); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.code", string(apperrors.GetCode(err))))
			span.SetStatus(codes.Error, "save failed")
			return Session{}, fmt.Errorf("save game: %w", err)
		}
	}

	if playErr != nil {
		span.SetAttributes(attribute.String("error.code", string(apperrors.GetCode(playErr))))
		span.SetStatus(codes.Error, "turn limit")
		s.logger.Printf("game %s stopped on square %d after %d turns", gameID, result.Position, result.Turns)
		return session, playErr
	}
	s.logger.Printf("game %s finished on square %d after %d turns", gameID, result.Position, result.Turns)
	return session, nil
}

// GetGame returns a saved game with its moves.
func (s *Service) GetGame(ctx context.Context, id string) (storage.GameRecord, error) {
	if s.store == nil {
		return storage.GameRecord{}, ErrStoreNotConfigured
	}
	return s.store.GetGame(ctx, id)
}

// ListGames returns the most recent saved games.
func (s *Service) ListGames(ctx context.Context, limit int) ([]storage.GameRecord, error) {
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	return s.store.ListGames(ctx, limit)
}

func resolveBoard(layout *script.Layout) (string, *board.Board, error) {
	if layout == nil {
		return ClassicBoardName, board.Classic(), nil
	}
	b, err := layout.Board()
	if err != nil {
		return "", nil, err
	}
	name := layout.Name
	if name == "" {
		name = "custom"
	}
	return name, b, nil
}

func toRecord(session Session) storage.GameRecord {
	moves := make([]storage.MoveRecord, 0, len(session.Result.Moves))
	for _, move := range session.Result.Moves {
		moves = append(moves, storage.MoveRecord{
			Turn: move.Turn,
			From: move.From,
			Roll: move.Roll,
			Jump: move.Jump,
			To:   move.To,
		})
	}
	return storage.GameRecord{
		ID:          session.ID,
		Board:       session.Board,
		FinalSquare: session.FinalSquare,
		Strategy:    string(session.Strategy),
		Die:         string(session.Die),
		Seed:        session.Seed,
		Turns:       session.Result.Turns,
		Position:    session.Result.Position,
		Finished:    session.Result.Finished,
		Moves:       moves,
		CreatedAt:   session.CreatedAt,
	}
}
