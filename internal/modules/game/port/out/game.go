package out

import (
	"context"

	"rps/internal/modules/game/domain"
)

// SessionStore persists saved games. Implementations enforce Capacity on
// Save and return apperrors.ErrNotFound for unknown ids.
type SessionStore interface {
	Save(ctx context.Context, game domain.SavedGame) (string, error)
	Restore(ctx context.Context, id string) (domain.SavedGame, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Summary, error)
	Count(ctx context.Context) (int, error)
	Capacity() int
	Close() error
}

// Opponent picks the computer's hand for a round.
type Opponent interface {
	Choose(ctx context.Context) (domain.Choice, error)
	Close() error
}
