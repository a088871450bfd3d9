package in

import (
	"context"

	"rps/internal/modules/game/dto"
)

type Usecase interface {
	Snapshot() dto.SessionView
	ConfigureRounds(rounds uint) error
	PlayRound(ctx context.Context, choice string) (dto.RoundOutput, error)
	IsLastRound() bool
	FinishGame() string
	NextGame()
	Abandon()

	Save(ctx context.Context) (dto.SaveOutput, error)
	Restore(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	ListSaved(ctx context.Context) ([]dto.SavedGameOutput, error)
	GetSaved(ctx context.Context, id string) (dto.SavedGameDetail, error)
	LoadSavedCount(ctx context.Context) error

	TakeSavedNotice() string
	TakeDeletedNotice() string
	Close() error
}
