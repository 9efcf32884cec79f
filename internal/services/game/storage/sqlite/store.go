// Package sqlite provides a SQLite-backed game storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/louisbranch/ladders/internal/platform/errors"
	sqlitemigrate "github.com/louisbranch/ladders/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/ladders/internal/platform/timeouts"
	"github.com/louisbranch/ladders/internal/services/game/storage"
	"github.com/louisbranch/ladders/internal/services/game/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

// Store persists game records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite game store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		fmt.Sprintf("?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
			timeouts.SQLiteBusy.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutGame inserts one game record and its moves.
func (s *Store) PutGame(ctx context.Context, record storage.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(record.Board) == "" {
		return fmt.Errorf("board name is required")
	}
	if record.FinalSquare < 1 {
		return fmt.Errorf("final square must be at least 1")
	}
	createdAt := record.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put game: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO games (
		   id, board, final_square, strategy, die, seed,
		   turns, position, finished, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		record.Board,
		record.FinalSquare,
		record.Strategy,
		record.Die,
		record.Seed,
		record.Turns,
		record.Position,
		boolToInt(record.Finished),
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.CodeAlreadyExists, fmt.Sprintf("game %s already exists", record.ID), err)
		}
		return fmt.Errorf("put game: %w", err)
	}

	if len(record.Moves) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO game_moves (
		   game_id, turn, from_square, roll, jump, to_square
		 ) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare put moves: %w", err)
		}
		defer stmt.Close()
		for _, move := range record.Moves {
			if _, err := stmt.ExecContext(ctx, id, move.Turn, move.From, move.Roll, move.Jump, move.To); err != nil {
				return fmt.Errorf("put move %d: %w", move.Turn, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put game: %w", err)
	}
	return nil
}

// GetGame returns one game with its moves ordered by turn.
func (s *Store) GetGame(ctx context.Context, id string) (storage.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.GameRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.GameRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.GameRecord{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, selectGameColumns+` WHERE id = ?`, id)
	record, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.GameRecord{}, storage.ErrNotFound
		}
		return storage.GameRecord{}, fmt.Errorf("get game: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT turn, from_square, roll, jump, to_square
		   FROM game_moves
		  WHERE game_id = ?
		  ORDER BY turn`,
		id,
	)
	if err != nil {
		return storage.GameRecord{}, fmt.Errorf("get game moves: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var move storage.MoveRecord
		if err := rows.Scan(&move.Turn, &move.From, &move.Roll, &move.Jump, &move.To); err != nil {
			return storage.GameRecord{}, fmt.Errorf("scan game move: %w", err)
		}
		record.Moves = append(record.Moves, move)
	}
	if err := rows.Err(); err != nil {
		return storage.GameRecord{}, fmt.Errorf("iterate game moves: %w", err)
	}
	return record, nil
}

// ListGames returns up to limit games, newest first, without moves.
func (s *Store) ListGames(ctx context.Context, limit int) ([]storage.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.sqlDB.QueryContext(ctx, selectGameColumns+` ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	records := make([]storage.GameRecord, 0, limit)
	for rows.Next() {
		record, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return records, nil
}

const selectGameColumns = `SELECT id, board, final_square, strategy, die, seed,
       turns, position, finished, created_at
  FROM games`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (storage.GameRecord, error) {
	var record storage.GameRecord
	var finished int
	var createdAt int64
	err := row.Scan(
		&record.ID,
		&record.Board,
		&record.FinalSquare,
		&record.Strategy,
		&record.Die,
		&record.Seed,
		&record.Turns,
		&record.Position,
		&finished,
		&createdAt,
	)
	if err != nil {
		return storage.GameRecord{}, err
	}
	record.Finished = finished != 0
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.GameStore = (*Store)(nil)
