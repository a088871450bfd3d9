package domain

import (
	"fmt"

	apperrors "rps/internal/platform/errors"
)

type Winner string

const (
	NoWinner     Winner = ""
	PlayerWins   Winner = "player"
	OpponentWins Winner = "opponent"
)

type RoundStats struct {
	RoundsWon      uint
	RoundsLost     uint
	TotalDraws     uint
	CurrentRound   uint
	UserChoice     Choice
	OpponentChoice Choice
}

type GameStats struct {
	GamesWon  uint
	GamesLost uint
}

// RoundPatch carries a partial update for SetRoundStats. Nil fields are kept.
type RoundPatch struct {
	RoundsWon      *uint
	RoundsLost     *uint
	TotalDraws     *uint
	CurrentRound   *uint
	UserChoice     *Choice
	OpponentChoice *Choice
}

// Session is the single live game of a process. It is not safe for
// concurrent use.
type Session struct {
	round        RoundStats
	game         GameStats
	maxRounds    uint
	winCondition uint
	winner       Winner

	savedID   string
	deletedID string

	saved       []Summary
	savedLoaded bool
	savedCount  int
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Round() RoundStats    { return s.round }
func (s *Session) Game() GameStats      { return s.game }
func (s *Session) MaxRounds() uint      { return s.maxRounds }
func (s *Session) WinCondition() uint   { return s.winCondition }
func (s *Session) Winner() Winner       { return s.winner }
func (s *Session) SavedGamesCount() int { return s.savedCount }

// Configure sets the best-of length for the next games.
func (s *Session) Configure(maxRounds uint) error {
	if !IsValidRounds(maxRounds) {
		return fmt.Errorf("%w: rounds per game %d", apperrors.ErrInvalidInput, maxRounds)
	}
	s.maxRounds = maxRounds
	s.winCondition = WinCondition(maxRounds)
	return nil
}

// ResolveRound plays one round and updates the tallies. Draws never advance
// the round counter. Once either side reaches the win condition the counter
// jumps to the last round.
func (s *Session) ResolveRound(user, opponent Choice) (Outcome, error) {
	if s.maxRounds == 0 {
		return Draw, apperrors.ErrRoundsNotSet
	}
	if s.round.CurrentRound >= s.maxRounds {
		return Draw, apperrors.ErrRoundsExhausted
	}
	if !user.Valid() || !opponent.Valid() {
		return Draw, fmt.Errorf("%w: choices %q vs %q", apperrors.ErrInvalidInput, user, opponent)
	}

	s.round.UserChoice = user
	s.round.OpponentChoice = opponent

	outcome := Resolve(user, opponent)
	switch outcome {
	case Draw:
		s.round.TotalDraws++
	case Win:
		s.round.RoundsWon++
		s.round.CurrentRound++
	case Lose:
		s.round.RoundsLost++
		s.round.CurrentRound++
	}
	s.applyShortcut()
	return outcome, nil
}

func (s *Session) applyShortcut() {
	if s.winCondition == 0 {
		return
	}
	if s.round.RoundsWon == s.winCondition || s.round.RoundsLost == s.winCondition {
		s.round.CurrentRound = s.maxRounds
	}
}

func (s *Session) IsLastRound() bool {
	return s.maxRounds > 0 && s.round.CurrentRound == s.maxRounds
}

// DecideWinner settles the current game and credits the game tallies. It is
// a no-op once a winner is set or while neither side has clinched.
func (s *Session) DecideWinner() Winner {
	if s.winner != NoWinner || s.winCondition == 0 {
		return s.winner
	}
	switch {
	case s.round.RoundsWon == s.winCondition:
		s.winner = PlayerWins
		s.game.GamesWon++
	case s.round.RoundsLost == s.winCondition:
		s.winner = OpponentWins
		s.game.GamesLost++
	}
	return s.winner
}

// ClearRoundStats zeroes the round tallies and the game winner.
func (s *Session) ClearRoundStats() {
	s.round = RoundStats{}
	s.winner = NoWinner
}

// ClearGameStats zeroes game and round tallies. The rounds-per-game
// configuration is kept.
func (s *Session) ClearGameStats() {
	s.game = GameStats{}
	s.ClearRoundStats()
}

func (s *Session) SetRoundStats(p RoundPatch) {
	if p.RoundsWon != nil {
		s.round.RoundsWon = *p.RoundsWon
	}
	if p.RoundsLost != nil {
		s.round.RoundsLost = *p.RoundsLost
	}
	if p.TotalDraws != nil {
		s.round.TotalDraws = *p.TotalDraws
	}
	if p.CurrentRound != nil {
		s.round.CurrentRound = *p.CurrentRound
	}
	if p.UserChoice != nil {
		s.round.UserChoice = *p.UserChoice
	}
	if p.OpponentChoice != nil {
		s.round.OpponentChoice = *p.OpponentChoice
	}
	if s.maxRounds > 0 && s.round.CurrentRound > s.maxRounds {
		s.round.CurrentRound = s.maxRounds
	}
}

// SetGameStats replaces the game tallies and the configuration, deriving
// the win condition again.
func (s *Session) SetGameStats(g GameStats, maxRounds uint) error {
	if err := s.Configure(maxRounds); err != nil {
		return err
	}
	s.game = g
	return nil
}

// Apply loads a stored record into the session.
func (s *Session) Apply(rec SavedGame) error {
	if err := s.SetGameStats(rec.Game, rec.MaxRounds); err != nil {
		return err
	}
	s.winner = NoWinner
	r := rec.Round
	s.SetRoundStats(RoundPatch{
		RoundsWon:      &r.RoundsWon,
		RoundsLost:     &r.RoundsLost,
		TotalDraws:     &r.TotalDraws,
		CurrentRound:   &r.CurrentRound,
		UserChoice:     &r.UserChoice,
		OpponentChoice: &r.OpponentChoice,
	})
	// A record saved after its game was decided already carries the credit.
	switch {
	case s.round.RoundsWon == s.winCondition:
		s.winner = PlayerWins
	case s.round.RoundsLost == s.winCondition:
		s.winner = OpponentWins
	}
	return nil
}

// Snapshot returns the persistable state. ID and SavedAt are left to the store.
func (s *Session) Snapshot() SavedGame {
	return SavedGame{Game: s.game, MaxRounds: s.maxRounds, Round: s.round}
}

func (s *Session) SetSavedID(id string)   { s.savedID = id }
func (s *Session) SetDeletedID(id string) { s.deletedID = id }

// TakeSavedID returns the last saved id once.
func (s *Session) TakeSavedID() string {
	id := s.savedID
	s.savedID = ""
	return id
}

// TakeDeletedID returns the last deleted id once.
func (s *Session) TakeDeletedID() string {
	id := s.deletedID
	s.deletedID = ""
	return id
}

func (s *Session) SavedGames() []Summary {
	out := make([]Summary, len(s.saved))
	copy(out, s.saved)
	return out
}

func (s *Session) SavedGamesLoaded() bool { return s.savedLoaded }

// SetSavedGames replaces the cache with a full listing from the store.
func (s *Session) SetSavedGames(list []Summary) {
	s.saved = make([]Summary, len(list))
	copy(s.saved, list)
	s.savedLoaded = true
	s.UpdateSavedGamesCount()
}

// RecordSaved accounts for a new stored session. Before the cache has been
// loaded only the count moves, so a later listing still hits the store.
func (s *Session) RecordSaved(sum Summary) {
	if s.savedLoaded {
		s.saved = append(s.saved, sum)
		s.UpdateSavedGamesCount()
		return
	}
	s.savedCount++
}

func (s *Session) RecordDeleted(id string) {
	if s.savedLoaded {
		kept := s.saved[:0]
		for _, sum := range s.saved {
			if sum.ID != id {
				kept = append(kept, sum)
			}
		}
		s.saved = kept
		s.UpdateSavedGamesCount()
		return
	}
	if s.savedCount > 0 {
		s.savedCount--
	}
}

// UpdateSavedGamesCount recomputes the count from a loaded cache.
func (s *Session) UpdateSavedGamesCount() {
	if s.savedLoaded {
		s.savedCount = len(s.saved)
	}
}

func (s *Session) SetSavedGamesCountFromStore(n int) {
	if n < 0 {
		n = 0
	}
	s.savedCount = n
}
