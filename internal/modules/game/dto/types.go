package dto

import "time"

// SessionView is a read-only copy of the live session for rendering.
type SessionView struct {
	GamesWon       uint
	GamesLost      uint
	MaxRounds      uint
	WinCondition   uint
	CurrentRound   uint
	RoundsWon      uint
	RoundsLost     uint
	TotalDraws     uint
	UserChoice     string
	OpponentChoice string
	Winner         string
	SavedCount     int
	Capacity       int
}

type RoundOutput struct {
	UserChoice     string
	OpponentChoice string
	Outcome        string
	LastRound      bool
}

type SaveOutput struct {
	ID string
}

type SavedGameOutput struct {
	ID        string
	GamesWon  uint
	GamesLost uint
	SavedAt   time.Time
}

type SavedGameDetail struct {
	ID             string    `yaml:"id"`
	GamesWon       uint      `yaml:"games_won"`
	GamesLost      uint      `yaml:"games_lost"`
	MaxRounds      uint      `yaml:"max_rounds_per_game"`
	CurrentRound   uint      `yaml:"round"`
	RoundsWon      uint      `yaml:"rounds_won"`
	RoundsLost     uint      `yaml:"rounds_lost"`
	TotalDraws     uint      `yaml:"total_draws"`
	UserChoice     string    `yaml:"user_choice"`
	OpponentChoice string    `yaml:"computer_choice"`
	SavedAt        time.Time `yaml:"saved_at"`
}
