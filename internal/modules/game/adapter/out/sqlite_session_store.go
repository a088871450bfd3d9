package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"rps/internal/modules/game/adapter/out/migrations"
	"rps/internal/modules/game/domain"
	gameout "rps/internal/modules/game/port/out"
	apperrors "rps/internal/platform/errors"
	"rps/internal/platform/id"
	"rps/internal/platform/sqlitemigrate"
)

const idAttempts = 3

type SQLiteSessionStore struct {
	db       *sql.DB
	ids      id.Generator
	capacity int
}

var _ gameout.SessionStore = (*SQLiteSessionStore)(nil)

func NewSQLiteSessionStore(ctx context.Context, dbPath string, capacity int, ids id.Generator) (*SQLiteSessionStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive")
	}
	if ids == nil {
		ids = id.UUID{}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := filepath.Clean(dbPath) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, migrations.SQLiteDir); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteSessionStore{db: db, ids: ids, capacity: capacity}, nil
}

func (s *SQLiteSessionStore) Capacity() int { return s.capacity }

func (s *SQLiteSessionStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteSessionStore) Save(ctx context.Context, game domain.SavedGame) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_data`).Scan(&count); err != nil {
		return "", fmt.Errorf("count saved games: %w", err)
	}
	if count >= s.capacity {
		return "", apperrors.ErrCapacityExceeded
	}

	savedAt := game.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	var gameID string
	for attempt := 0; ; attempt++ {
		gameID = s.ids.New()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO game_data (game_id, games_won, games_lost, max_rounds_per_game, saved_at) VALUES (?, ?, ?, ?, ?)`,
			gameID, game.Game.GamesWon, game.Game.GamesLost, game.MaxRounds, savedAt.UTC().UnixMilli(),
		)
		if err == nil {
			break
		}
		if !isPrimaryKeyViolation(err) || attempt+1 >= idAttempts {
			return "", fmt.Errorf("insert game_data: %w", err)
		}
	}

	r := game.Round
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO round_data (game_id, round, rounds_lost, total_draws, rounds_won, user_choice, computer_choice) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID, r.CurrentRound, r.RoundsLost, r.TotalDraws, r.RoundsWon, string(r.UserChoice), string(r.OpponentChoice),
	); err != nil {
		return "", fmt.Errorf("insert round_data: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}
	return gameID, nil
}

func (s *SQLiteSessionStore) Restore(ctx context.Context, gameID string) (domain.SavedGame, error) {
	const query = `
SELECT g.game_id, g.games_won, g.games_lost, g.max_rounds_per_game, g.saved_at,
       r.round, r.rounds_lost, r.total_draws, r.rounds_won, r.user_choice, r.computer_choice
FROM game_data g
JOIN round_data r ON r.game_id = g.game_id
WHERE g.game_id = ?`

	var (
		game           domain.SavedGame
		savedAt        int64
		user, opponent string
	)
	err := s.db.QueryRowContext(ctx, query, gameID).Scan(
		&game.ID, &game.Game.GamesWon, &game.Game.GamesLost, &game.MaxRounds, &savedAt,
		&game.Round.CurrentRound, &game.Round.RoundsLost, &game.Round.TotalDraws, &game.Round.RoundsWon, &user, &opponent,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SavedGame{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, gameID)
	}
	if err != nil {
		return domain.SavedGame{}, fmt.Errorf("restore %s: %w", gameID, err)
	}
	game.SavedAt = time.UnixMilli(savedAt).UTC()
	game.Round.UserChoice = domain.Choice(user)
	game.Round.OpponentChoice = domain.Choice(opponent)
	return game, nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, gameID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM game_data WHERE game_id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", gameID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", gameID, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, gameID)
	}
	return nil
}

func (s *SQLiteSessionStore) List(ctx context.Context) ([]domain.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, games_lost, games_won, saved_at FROM game_data ORDER BY saved_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list saved games: %w", err)
	}
	defer rows.Close()

	var out []domain.Summary
	for rows.Next() {
		var (
			sum     domain.Summary
			savedAt int64
		)
		if err := rows.Scan(&sum.ID, &sum.GamesLost, &sum.GamesWon, &savedAt); err != nil {
			return nil, fmt.Errorf("scan saved game: %w", err)
		}
		sum.SavedAt = time.UnixMilli(savedAt).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteSessionStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count saved games: %w", err)
	}
	return n, nil
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
