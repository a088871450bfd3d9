package service

import (
	"context"
	"fmt"
	"log/slog"

	"rps/internal/modules/game/domain"
	gameout "rps/internal/modules/game/port/out"
	"rps/internal/platform/clock"
	apperrors "rps/internal/platform/errors"
)

type RoundResult struct {
	User     domain.Choice
	Opponent domain.Choice
	Outcome  domain.Outcome
}

// GameService owns the live session and coordinates it with the store and
// the opponent.
type GameService struct {
	session  *domain.Session
	store    gameout.SessionStore
	opponent gameout.Opponent
	clock    clock.Clock
	logger   *slog.Logger
}

func NewGameService(store gameout.SessionStore, opponent gameout.Opponent, clk clock.Clock, logger *slog.Logger) *GameService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &GameService{
		session:  domain.NewSession(),
		store:    store,
		opponent: opponent,
		clock:    clk,
		logger:   logger,
	}
}

func (s *GameService) Session() *domain.Session {
	return s.session
}

func (s *GameService) Capacity() int {
	if s.store == nil {
		return 0
	}
	return s.store.Capacity()
}

func (s *GameService) ConfigureRounds(rounds uint) error {
	if err := s.session.Configure(rounds); err != nil {
		return err
	}
	s.logger.Debug("rounds configured", "max_rounds", rounds, "win_condition", s.session.WinCondition())
	return nil
}

func (s *GameService) PlayRound(ctx context.Context, user domain.Choice) (RoundResult, error) {
	if !user.Valid() {
		return RoundResult{}, fmt.Errorf("%w: choice %q", apperrors.ErrInvalidInput, user)
	}
	if s.opponent == nil {
		return RoundResult{}, fmt.Errorf("opponent is not configured")
	}
	opp, err := s.opponent.Choose(ctx)
	if err != nil {
		return RoundResult{}, fmt.Errorf("opponent choice: %w", err)
	}
	outcome, err := s.session.ResolveRound(user, opp)
	if err != nil {
		return RoundResult{}, err
	}
	r := s.session.Round()
	s.logger.Debug("round resolved",
		"user", user.Name(), "opponent", opp.Name(), "outcome", outcome.String(),
		"round", r.CurrentRound, "max_rounds", s.session.MaxRounds())
	return RoundResult{User: user, Opponent: opp, Outcome: outcome}, nil
}

// FinishGame settles the winner of a completed game.
func (s *GameService) FinishGame() domain.Winner {
	winner := s.session.DecideWinner()
	g := s.session.Game()
	s.logger.Info("game finished", "winner", string(winner), "games_won", g.GamesWon, "games_lost", g.GamesLost)
	return winner
}

func (s *GameService) NextGame() {
	s.session.ClearRoundStats()
}

func (s *GameService) Abandon() {
	s.session.ClearGameStats()
}

func (s *GameService) Save(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", apperrors.ErrStoreUnconfigured
	}
	rec := s.session.Snapshot()
	rec.SavedAt = s.clock.Now()
	id, err := s.store.Save(ctx, rec)
	if err != nil {
		s.logger.Warn("save failed", "error", err)
		return "", err
	}
	rec.ID = id
	s.session.RecordSaved(rec.Summary())
	s.session.SetSavedID(id)
	s.logger.Info("game saved", "game_id", id, "saved_count", s.session.SavedGamesCount())
	return id, nil
}

func (s *GameService) Restore(ctx context.Context, id string) error {
	if s.store == nil {
		return apperrors.ErrStoreUnconfigured
	}
	rec, err := s.store.Restore(ctx, id)
	if err != nil {
		s.logger.Warn("restore failed", "game_id", id, "error", err)
		return err
	}
	if err := s.session.Apply(rec); err != nil {
		return fmt.Errorf("apply saved game %s: %w", id, err)
	}
	s.logger.Info("game restored", "game_id", id, "max_rounds", rec.MaxRounds, "round", rec.Round.CurrentRound)
	return nil
}

func (s *GameService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return apperrors.ErrStoreUnconfigured
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("delete failed", "game_id", id, "error", err)
		return err
	}
	s.session.RecordDeleted(id)
	s.session.SetDeletedID(id)
	s.logger.Info("game deleted", "game_id", id, "saved_count", s.session.SavedGamesCount())
	return nil
}

// ListSaved serves the cached listing, hitting the store only when the
// cache is empty.
func (s *GameService) ListSaved(ctx context.Context) ([]domain.Summary, error) {
	if cached := s.session.SavedGames(); len(cached) > 0 {
		return cached, nil
	}
	if s.store == nil {
		return nil, apperrors.ErrStoreUnconfigured
	}
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved games: %w", err)
	}
	s.session.SetSavedGames(list)
	return s.session.SavedGames(), nil
}

func (s *GameService) GetSaved(ctx context.Context, id string) (domain.SavedGame, error) {
	if s.store == nil {
		return domain.SavedGame{}, apperrors.ErrStoreUnconfigured
	}
	return s.store.Restore(ctx, id)
}

// LoadSavedCount seeds the saved-games count at startup.
func (s *GameService) LoadSavedCount(ctx context.Context) error {
	if s.store == nil {
		return apperrors.ErrStoreUnconfigured
	}
	n, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count saved games: %w", err)
	}
	s.session.SetSavedGamesCountFromStore(n)
	return nil
}

func (s *GameService) Close() error {
	var firstErr error
	if s.opponent != nil {
		if err := s.opponent.Close(); err != nil {
			firstErr = err
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
