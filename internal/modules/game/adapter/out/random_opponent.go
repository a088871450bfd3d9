package out

import (
	"context"
	"math/rand/v2"

	"rps/internal/modules/game/domain"
	gameout "rps/internal/modules/game/port/out"
)

// RandomOpponent draws hands uniformly from a seeded PCG source.
type RandomOpponent struct {
	rng *rand.Rand
}

var _ gameout.Opponent = (*RandomOpponent)(nil)

// NewRandomOpponent returns a reproducible opponent for a non-zero seed and
// a randomly seeded one otherwise.
func NewRandomOpponent(seed int64) *RandomOpponent {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return &RandomOpponent{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func (o *RandomOpponent) Choose(ctx context.Context) (domain.Choice, error) {
	if err := ctx.Err(); err != nil {
		return domain.Unset, err
	}
	return domain.Choices[o.rng.IntN(len(domain.Choices))], nil
}

func (o *RandomOpponent) Close() error { return nil }
