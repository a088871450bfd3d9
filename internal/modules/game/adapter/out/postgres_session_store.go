package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rps/internal/modules/game/adapter/out/migrations"
	"rps/internal/modules/game/domain"
	gameout "rps/internal/modules/game/port/out"
	apperrors "rps/internal/platform/errors"
	"rps/internal/platform/id"
	"rps/internal/platform/sqlitemigrate"
)

// PostgresSessionStore keeps saved games in PostgreSQL.
type PostgresSessionStore struct {
	pool     *pgxpool.Pool
	ids      id.Generator
	capacity int
}

var _ gameout.SessionStore = (*PostgresSessionStore)(nil)

func NewPostgresSessionStore(ctx context.Context, dsn string, capacity int, ids id.Generator) (*PostgresSessionStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive")
	}
	if ids == nil {
		ids = id.UUID{}
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := &PostgresSessionStore{pool: pool, ids: ids, capacity: capacity}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresSessionStore) ensureSchema(ctx context.Context) error {
	entries, err := fs.ReadDir(migrations.FS, migrations.PostgresDir)
	if err != nil {
		return fmt.Errorf("read postgres migrations: %w", err)
	}
	for _, entry := range entries {
		content, err := fs.ReadFile(migrations.FS, path.Join(migrations.PostgresDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.pool.Exec(ctx, sqlitemigrate.UpSection(string(content))); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (s *PostgresSessionStore) Capacity() int { return s.capacity }

func (s *PostgresSessionStore) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *PostgresSessionStore) Save(ctx context.Context, game domain.SavedGame) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM game_data`).Scan(&count); err != nil {
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
		tag, err := tx.Exec(ctx,
			`INSERT INTO game_data (game_id, games_won, games_lost, max_rounds_per_game, saved_at)
			 VALUES ($1, $2, $3, $4, $5) ON CONFLICT (game_id) DO NOTHING`,
			gameID, int64(game.Game.GamesWon), int64(game.Game.GamesLost), int64(game.MaxRounds), savedAt.UTC(),
		)
		if err != nil {
			return "", fmt.Errorf("insert game_data: %w", err)
		}
		if tag.RowsAffected() == 1 {
			break
		}
		if attempt+1 >= idAttempts {
			return "", fmt.Errorf("insert game_data: id collision on %s", gameID)
		}
	}

	r := game.Round
	if _, err := tx.Exec(ctx,
		`INSERT INTO round_data (game_id, round, rounds_lost, total_draws, rounds_won, user_choice, computer_choice)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		gameID, int64(r.CurrentRound), int64(r.RoundsLost), int64(r.TotalDraws), int64(r.RoundsWon),
		string(r.UserChoice), string(r.OpponentChoice),
	); err != nil {
		return "", fmt.Errorf("insert round_data: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit save: %w", err)
	}
	return gameID, nil
}

func (s *PostgresSessionStore) Restore(ctx context.Context, gameID string) (domain.SavedGame, error) {
	var (
		game                                domain.SavedGame
		won, lost, maxRounds                int64
		round, roundsLost, draws, roundsWon int64
		user, opponent                      string
	)
	err := s.pool.QueryRow(ctx, `
SELECT g.game_id, g.games_won, g.games_lost, g.max_rounds_per_game, g.saved_at,
       r.round, r.rounds_lost, r.total_draws, r.rounds_won, r.user_choice, r.computer_choice
FROM game_data g
JOIN round_data r ON r.game_id = g.game_id
WHERE g.game_id = $1`, gameID).Scan(
		&game.ID, &won, &lost, &maxRounds, &game.SavedAt,
		&round, &roundsLost, &draws, &roundsWon, &user, &opponent,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.SavedGame{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, gameID)
	}
	if err != nil {
		return domain.SavedGame{}, fmt.Errorf("restore %s: %w", gameID, err)
	}
	game.Game = domain.GameStats{GamesWon: uint(won), GamesLost: uint(lost)}
	game.MaxRounds = uint(maxRounds)
	game.Round = domain.RoundStats{
		CurrentRound:   uint(round),
		RoundsLost:     uint(roundsLost),
		TotalDraws:     uint(draws),
		RoundsWon:      uint(roundsWon),
		UserChoice:     domain.Choice(user),
		OpponentChoice: domain.Choice(opponent),
	}
	game.SavedAt = game.SavedAt.UTC()
	return game, nil
}

func (s *PostgresSessionStore) Delete(ctx context.Context, gameID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM game_data WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", gameID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, gameID)
	}
	return nil
}

func (s *PostgresSessionStore) List(ctx context.Context) ([]domain.Summary, error) {
	rows, err := s.pool.Query(ctx, `SELECT game_id, games_lost, games_won, saved_at FROM game_data ORDER BY saved_at, game_id`)
	if err != nil {
		return nil, fmt.Errorf("list saved games: %w", err)
	}
	defer rows.Close()

	var out []domain.Summary
	for rows.Next() {
		var (
			sum       domain.Summary
			lost, won int64
		)
		if err := rows.Scan(&sum.ID, &lost, &won, &sum.SavedAt); err != nil {
			return nil, fmt.Errorf("scan saved game: %w", err)
		}
		sum.GamesLost, sum.GamesWon = uint(lost), uint(won)
		sum.SavedAt = sum.SavedAt.UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *PostgresSessionStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM game_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count saved games: %w", err)
	}
	return n, nil
}
