package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/ladders/internal/core/dice"
	"github.com/louisbranch/ladders/internal/core/game"
	"github.com/louisbranch/ladders/internal/services/game/service"
	"github.com/louisbranch/ladders/internal/services/game/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GameService is the game API the tools call.
type GameService interface {
	Play(ctx context.Context, req service.PlayRequest) (service.Session, error)
	GetGame(ctx context.Context, id string) (storage.GameRecord, error)
	ListGames(ctx context.Context, limit int) ([]storage.GameRecord, error)
}

// PlayGameInput represents the MCP tool input for playing a game.
type PlayGameInput struct {
	Strategy string `json:"strategy,omitempty" jsonschema:"loop strategy: guarded (default) or deferred"`
	Die      string `json:"die,omitempty" jsonschema:"die kind: cycle (default) or seeded"`
	Sides    int    `json:"sides,omitempty" jsonschema:"number of die faces, defaults to 6"`
	Seed     int64  `json:"seed,omitempty" jsonschema:"seed for the seeded die; zero picks one"`
	MaxTurns int    `json:"max_turns,omitempty" jsonschema:"turn budget, defaults to 1000"`
	Locale   string `json:"locale,omitempty" jsonschema:"locale for the status message, defaults to en-US"`
}

// MoveResult represents one turn in MCP output.
type MoveResult struct {
	Turn int `json:"turn" jsonschema:"1-based turn number"`
	From int `json:"from" jsonschema:"square before the turn"`
	Roll int `json:"roll" jsonschema:"die face rolled"`
	Jump int `json:"jump" jsonschema:"offset applied during the turn; positive is a ladder, negative a shoot"`
	To   int `json:"to" jsonschema:"square after the turn"`
}

// GameResult represents one game in MCP output.
type GameResult struct {
	ID          string       `json:"id" jsonschema:"game identifier"`
	Board       string       `json:"board" jsonschema:"board name"`
	FinalSquare int          `json:"final_square" jsonschema:"square that ends the game"`
	Strategy    string       `json:"strategy" jsonschema:"loop strategy used"`
	Die         string       `json:"die" jsonschema:"die kind used"`
	Seed        int64        `json:"seed,omitempty" jsonschema:"seed used by a seeded die"`
	Turns       int          `json:"turns" jsonschema:"number of turns played"`
	Position    int          `json:"position" jsonschema:"final token position"`
	Finished    bool         `json:"finished" jsonschema:"whether the token reached the final square"`
	Moves       []MoveResult `json:"moves,omitempty" jsonschema:"turn-by-turn history"`
	CreatedAt   string       `json:"created_at,omitempty" jsonschema:"RFC3339 creation time"`
}

// PlayGameResult represents the MCP tool output for a played game.
type PlayGameResult struct {
	Game    GameResult `json:"game" jsonschema:"the played game"`
	Message string     `json:"message" jsonschema:"localized status message"`
}

// GetGameInput represents the MCP tool input for reading a game.
type GetGameInput struct {
	ID string `json:"id" jsonschema:"game identifier"`
}

// ListGamesInput represents the MCP tool input for listing games.
type ListGamesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of games, defaults to 20"`
}

// ListGamesResult represents the MCP tool output for listing games.
type ListGamesResult struct {
	Games []GameResult `json:"games" jsonschema:"most recent games first"`
}

// PlayGameTool defines the MCP tool schema for playing a game.
func PlayGameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "play_game",
		Description: "Plays a game of shoots and ladders on the classic board",
	}
}

// GetGameTool defines the MCP tool schema for reading a game.
func GetGameTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_game",
		Description: "Returns a saved game with its moves",
	}
}

// ListGamesTool defines the MCP tool schema for listing games.
func ListGamesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_games",
		Description: "Lists the most recent saved games",
	}
}

// PlayGameHandler plays a game through the game service.
func PlayGameHandler(games GameService) mcp.ToolHandlerFor[PlayGameInput, PlayGameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlayGameInput) (*mcp.CallToolResult, PlayGameResult, error) {
		if games == nil {
			return nil, PlayGameResult{}, fmt.Errorf("game service is not configured")
		}
		session, err := games.Play(ctx, service.PlayRequest{
			Strategy: game.Strategy(strings.TrimSpace(input.Strategy)),
			Die:      dice.Kind(strings.TrimSpace(input.Die)),
			Sides:    input.Sides,
			Seed:     input.Seed,
			MaxTurns: input.MaxTurns,
		})
		// An exhausted turn budget still yields a recorded game.
		if err != nil && !errors.Is(err, game.ErrTurnLimit) {
			return nil, PlayGameResult{}, fmt.Errorf("play game: %w", err)
		}

		message := service.SummaryMessage(input.Locale, session)
		if session.Result.Finished {
			message += " " + service.GameOverMessage(input.Locale)
		}
		return nil, PlayGameResult{
			Game:    sessionResult(session),
			Message: message,
		}, nil
	}
}

// GetGameHandler reads one saved game.
func GetGameHandler(games GameService) mcp.ToolHandlerFor[GetGameInput, GameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetGameInput) (*mcp.CallToolResult, GameResult, error) {
		if games == nil {
			return nil, GameResult{}, fmt.Errorf("game service is not configured")
		}
		id := strings.TrimSpace(input.ID)
		if id == "" {
			return nil, GameResult{}, fmt.Errorf("id is required")
		}
		record, err := games.GetGame(ctx, id)
		if err != nil {
			return nil, GameResult{}, fmt.Errorf("get game: %w", err)
		}
		return nil, recordResult(record), nil
	}
}

// ListGamesHandler lists recent saved games.
func ListGamesHandler(games GameService) mcp.ToolHandlerFor[ListGamesInput, ListGamesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListGamesInput) (*mcp.CallToolResult, ListGamesResult, error) {
		if games == nil {
			return nil, ListGamesResult{}, fmt.Errorf("game service is not configured")
		}
		if input.Limit < 0 {
			return nil, ListGamesResult{}, fmt.Errorf("limit must not be negative")
		}
		records, err := games.ListGames(ctx, input.Limit)
		if err != nil {
			return nil, ListGamesResult{}, fmt.Errorf("list games: %w", err)
		}
		result := ListGamesResult{Games: make([]GameResult, 0, len(records))}
		for _, record := range records {
			result.Games = append(result.Games, recordResult(record))
		}
		return nil, result, nil
	}
}

func sessionResult(session service.Session) GameResult {
	moves := make([]MoveResult, 0, len(session.Result.Moves))
	for _, move := range session.Result.Moves {
		moves = append(moves, MoveResult{Turn: move.Turn, From: move.From, Roll: move.Roll, Jump: move.Jump, To: move.To})
	}
	return GameResult{
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
		CreatedAt:   formatTime(session.CreatedAt),
	}
}

func recordResult(record storage.GameRecord) GameResult {
	var moves []MoveResult
	for _, move := range record.Moves {
		moves = append(moves, MoveResult{Turn: move.Turn, From: move.From, Roll: move.Roll, Jump: move.Jump, To: move.To})
	}
	return GameResult{
		ID:          record.ID,
		Board:       record.Board,
		FinalSquare: record.FinalSquare,
		Strategy:    record.Strategy,
		Die:         record.Die,
		Seed:        record.Seed,
		Turns:       record.Turns,
		Position:    record.Position,
		Finished:    record.Finished,
		Moves:       moves,
		CreatedAt:   formatTime(record.CreatedAt),
	}
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
