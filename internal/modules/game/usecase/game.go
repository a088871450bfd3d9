package usecase

import (
	"context"

	"rps/internal/modules/game/domain"
	gamedto "rps/internal/modules/game/dto"
	gamein "rps/internal/modules/game/port/in"
	"rps/internal/modules/game/service"
)

type Interactor struct {
	svc *service.GameService
}

func NewInteractor(svc *service.GameService) gamein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Snapshot() gamedto.SessionView {
	s := i.svc.Session()
	r, g := s.Round(), s.Game()
	return gamedto.SessionView{
		GamesWon:       g.GamesWon,
		GamesLost:      g.GamesLost,
		MaxRounds:      s.MaxRounds(),
		WinCondition:   s.WinCondition(),
		CurrentRound:   r.CurrentRound,
		RoundsWon:      r.RoundsWon,
		RoundsLost:     r.RoundsLost,
		TotalDraws:     r.TotalDraws,
		UserChoice:     string(r.UserChoice),
		OpponentChoice: string(r.OpponentChoice),
		Winner:         string(s.Winner()),
		SavedCount:     s.SavedGamesCount(),
		Capacity:       i.svc.Capacity(),
	}
}

func (i *Interactor) ConfigureRounds(rounds uint) error {
	return i.svc.ConfigureRounds(rounds)
}

func (i *Interactor) PlayRound(ctx context.Context, choice string) (gamedto.RoundOutput, error) {
	c, err := domain.ParseChoice(choice)
	if err != nil {
		return gamedto.RoundOutput{}, err
	}
	res, err := i.svc.PlayRound(ctx, c)
	if err != nil {
		return gamedto.RoundOutput{}, err
	}
	return gamedto.RoundOutput{
		UserChoice:     string(res.User),
		OpponentChoice: string(res.Opponent),
		Outcome:        res.Outcome.String(),
		LastRound:      i.svc.Session().IsLastRound(),
	}, nil
}

func (i *Interactor) IsLastRound() bool {
	return i.svc.Session().IsLastRound()
}

func (i *Interactor) FinishGame() string {
	return string(i.svc.FinishGame())
}

func (i *Interactor) NextGame() { i.svc.NextGame() }
func (i *Interactor) Abandon()  { i.svc.Abandon() }

func (i *Interactor) Save(ctx context.Context) (gamedto.SaveOutput, error) {
	id, err := i.svc.Save(ctx)
	if err != nil {
		return gamedto.SaveOutput{}, err
	}
	return gamedto.SaveOutput{ID: id}, nil
}

func (i *Interactor) Restore(ctx context.Context, id string) error {
	return i.svc.Restore(ctx, id)
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) ListSaved(ctx context.Context) ([]gamedto.SavedGameOutput, error) {
	list, err := i.svc.ListSaved(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]gamedto.SavedGameOutput, 0, len(list))
	for _, sum := range list {
		out = append(out, gamedto.SavedGameOutput{
			ID:        sum.ID,
			GamesWon:  sum.GamesWon,
			GamesLost: sum.GamesLost,
			SavedAt:   sum.SavedAt,
		})
	}
	return out, nil
}

func (i *Interactor) GetSaved(ctx context.Context, id string) (gamedto.SavedGameDetail, error) {
	g, err := i.svc.GetSaved(ctx, id)
	if err != nil {
		return gamedto.SavedGameDetail{}, err
	}
	return gamedto.SavedGameDetail{
		ID:             g.ID,
		GamesWon:       g.Game.GamesWon,
		GamesLost:      g.Game.GamesLost,
		MaxRounds:      g.MaxRounds,
		CurrentRound:   g.Round.CurrentRound,
		RoundsWon:      g.Round.RoundsWon,
		RoundsLost:     g.Round.RoundsLost,
		TotalDraws:     g.Round.TotalDraws,
		UserChoice:     string(g.Round.UserChoice),
		OpponentChoice: string(g.Round.OpponentChoice),
		SavedAt:        g.SavedAt,
	}, nil
}

func (i *Interactor) LoadSavedCount(ctx context.Context) error {
	return i.svc.LoadSavedCount(ctx)
}

func (i *Interactor) TakeSavedNotice() string   { return i.svc.Session().TakeSavedID() }
func (i *Interactor) TakeDeletedNotice() string { return i.svc.Session().TakeDeletedID() }

func (i *Interactor) Close() error {
	return i.svc.Close()
}
