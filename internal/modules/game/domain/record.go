package domain

import "time"

// SavedGame is the persisted shape of a session.
type SavedGame struct {
	ID        string
	Game      GameStats
	MaxRounds uint
	Round     RoundStats
	SavedAt   time.Time
}

// Summary is one entry of the saved-games listing.
type Summary struct {
	ID        string
	GamesLost uint
	GamesWon  uint
	SavedAt   time.Time
}

func (g SavedGame) Summary() Summary {
	return Summary{ID: g.ID, GamesLost: g.Game.GamesLost, GamesWon: g.Game.GamesWon, SavedAt: g.SavedAt}
}
