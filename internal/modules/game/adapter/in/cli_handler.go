package in

import (
	"context"

	gamedto "rps/internal/modules/game/dto"
	gamein "rps/internal/modules/game/port/in"
)

type CLIHandler struct {
	usecase gamein.Usecase
}

func NewCLIHandler(usecase gamein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]gamedto.SavedGameOutput, error) {
	return h.usecase.ListSaved(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id string) (gamedto.SavedGameDetail, error) {
	return h.usecase.GetSaved(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}
