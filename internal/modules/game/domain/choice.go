package domain

import (
	"fmt"

	apperrors "rps/internal/platform/errors"
)

// Choice is a hand played in a round. The zero value means no hand yet.
type Choice string

const (
	Unset    Choice = ""
	Rock     Choice = "r"
	Paper    Choice = "p"
	Scissors Choice = "s"
)

// Choices lists the playable hands in a stable order.
var Choices = []Choice{Rock, Paper, Scissors}

// beats maps each hand to the hand it defeats.
var beats = map[Choice]Choice{
	Rock:     Scissors,
	Paper:    Rock,
	Scissors: Paper,
}

func ParseChoice(raw string) (Choice, error) {
	c := Choice(raw)
	if !c.Valid() {
		return Unset, fmt.Errorf("%w: choice %q", apperrors.ErrInvalidInput, raw)
	}
	return c, nil
}

func (c Choice) Valid() bool {
	_, ok := beats[c]
	return ok
}

func (c Choice) Name() string {
	switch c {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return ""
	}
}

type Outcome int

const (
	Draw Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "draw"
	}
}

// Resolve decides a round from the player's point of view.
func Resolve(user, opponent Choice) Outcome {
	switch {
	case user == opponent:
		return Draw
	case beats[user] == opponent:
		return Win
	default:
		return Lose
	}
}
