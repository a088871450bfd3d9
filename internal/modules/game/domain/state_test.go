package domain

import (
	"errors"
	"testing"

	apperrors "rps/internal/platform/errors"
)

func configured(t *testing.T, n uint) *Session {
	t.Helper()
	s := NewSession()
	if err := s.Configure(n); err != nil {
		t.Fatalf("configure %d: %v", n, err)
	}
	return s
}

func TestWinCondition(t *testing.T) {
	t.Parallel()

	want := map[uint]uint{3: 2, 5: 3, 7: 4, 9: 5}
	for n, wc := range want {
		if got := WinCondition(n); got != wc {
			t.Fatalf("WinCondition(%d) = %d, want %d", n, got, wc)
		}
		if got := configured(t, n).WinCondition(); got != wc {
			t.Fatalf("configured(%d).WinCondition() = %d, want %d", n, got, wc)
		}
	}
}

func TestConfigureRejectsInvalidRounds(t *testing.T) {
	t.Parallel()

	s := NewSession()
	for _, n := range []uint{0, 1, 2, 4, 10} {
		if err := s.Configure(n); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("configure %d: expected invalid input, got %v", n, err)
		}
	}
	if s.MaxRounds() != 0 {
		t.Fatalf("invalid configuration must not stick")
	}
}

func TestResolveRoundWinAdvancesRound(t *testing.T) {
	t.Parallel()

	s := configured(t, 5)
	outcome, err := s.ResolveRound(Rock, Scissors)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome != Win {
		t.Fatalf("outcome = %s, want win", outcome)
	}
	r := s.Round()
	if r.RoundsWon != 1 || r.CurrentRound != 1 || r.RoundsLost != 0 || r.TotalDraws != 0 {
		t.Fatalf("unexpected round stats: %+v", r)
	}
	if r.UserChoice != Rock || r.OpponentChoice != Scissors {
		t.Fatalf("choices not recorded: %+v", r)
	}
}

func TestResolveRoundDrawDoesNotAdvance(t *testing.T) {
	t.Parallel()

	s := configured(t, 3)
	for i := 0; i < 4; i++ {
		if _, err := s.ResolveRound(Paper, Paper); err != nil {
			t.Fatalf("resolve: %v", err)
		}
	}
	r := s.Round()
	if r.TotalDraws != 4 || r.CurrentRound != 0 {
		t.Fatalf("draws must not advance the round: %+v", r)
	}
}

func TestShortcutScenarioA(t *testing.T) {
	t.Parallel()

	s := configured(t, 3)
	if _, err := s.ResolveRound(Rock, Scissors); err != nil {
		t.Fatalf("round 1: %v", err)
	}
	if s.IsLastRound() {
		t.Fatalf("one win must not end a best of three")
	}
	if _, err := s.ResolveRound(Paper, Rock); err != nil {
		t.Fatalf("round 2: %v", err)
	}
	r := s.Round()
	if r.RoundsWon != 2 || r.CurrentRound != 3 {
		t.Fatalf("unexpected round stats: %+v", r)
	}
	if !s.IsLastRound() {
		t.Fatalf("expected last round after clinching")
	}
	if got := s.DecideWinner(); got != PlayerWins {
		t.Fatalf("winner = %q, want player", got)
	}
	if s.Game().GamesWon != 1 {
		t.Fatalf("games won = %d", s.Game().GamesWon)
	}
}

func TestShortcutOnLosses(t *testing.T) {
	t.Parallel()

	s := configured(t, 9)
	for i := 0; i < 5; i++ {
		if _, err := s.ResolveRound(Scissors, Rock); err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
	}
	if s.Round().CurrentRound != 9 {
		t.Fatalf("current round = %d, want 9", s.Round().CurrentRound)
	}
	if got := s.DecideWinner(); got != OpponentWins {
		t.Fatalf("winner = %q, want opponent", got)
	}
	if s.Game().GamesLost != 1 {
		t.Fatalf("games lost = %d", s.Game().GamesLost)
	}
}

func TestCurrentRoundMonotonicAndBounded(t *testing.T) {
	t.Parallel()

	plays := [][2]Choice{
		{Rock, Paper}, {Rock, Rock}, {Rock, Scissors}, {Paper, Scissors},
		{Scissors, Scissors}, {Scissors, Paper}, {Paper, Rock},
	}
	s := configured(t, 7)
	prev := uint(0)
	for _, p := range plays {
		if s.IsLastRound() {
			break
		}
		if _, err := s.ResolveRound(p[0], p[1]); err != nil {
			t.Fatalf("resolve: %v", err)
		}
		cur := s.Round().CurrentRound
		if cur < prev || cur > s.MaxRounds() {
			t.Fatalf("current round went from %d to %d (max %d)", prev, cur, s.MaxRounds())
		}
		prev = cur
	}
}

func TestResolveRoundGuards(t *testing.T) {
	t.Parallel()

	s := NewSession()
	if _, err := s.ResolveRound(Rock, Paper); !errors.Is(err, apperrors.ErrRoundsNotSet) {
		t.Fatalf("expected rounds not set, got %v", err)
	}

	s = configured(t, 3)
	if _, err := s.ResolveRound(Unset, Paper); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	_, _ = s.ResolveRound(Rock, Scissors)
	_, _ = s.ResolveRound(Rock, Scissors)
	if _, err := s.ResolveRound(Rock, Scissors); !errors.Is(err, apperrors.ErrRoundsExhausted) {
		t.Fatalf("expected rounds exhausted, got %v", err)
	}
	if s.Round().RoundsWon != 2 {
		t.Fatalf("exhausted round must not mutate tallies")
	}
}

func TestDecideWinnerIsIdempotent(t *testing.T) {
	t.Parallel()

	s := configured(t, 3)
	_, _ = s.ResolveRound(Rock, Scissors)
	if got := s.DecideWinner(); got != NoWinner {
		t.Fatalf("winner decided too early: %q", got)
	}
	_, _ = s.ResolveRound(Rock, Scissors)
	s.DecideWinner()
	s.DecideWinner()
	if s.Game().GamesWon != 1 {
		t.Fatalf("games won = %d, want 1", s.Game().GamesWon)
	}
}

func TestClearGameStatsIdempotent(t *testing.T) {
	t.Parallel()

	s := configured(t, 3)
	_, _ = s.ResolveRound(Rock, Scissors)
	_, _ = s.ResolveRound(Rock, Scissors)
	s.DecideWinner()

	s.ClearGameStats()
	once := *s
	s.ClearGameStats()

	if s.Round() != (RoundStats{}) || s.Game() != (GameStats{}) || s.Winner() != NoWinner {
		t.Fatalf("state not zeroed: %+v %+v %q", s.Round(), s.Game(), s.Winner())
	}
	if s.Round() != once.Round() || s.Game() != once.Game() || s.Winner() != once.Winner() {
		t.Fatalf("second clear changed state")
	}
	if s.MaxRounds() != 3 || s.WinCondition() != 2 {
		t.Fatalf("configuration must survive a clear")
	}
}

func TestClearRoundStatsKeepsGameStats(t *testing.T) {
	t.Parallel()

	s := configured(t, 3)
	_, _ = s.ResolveRound(Paper, Rock)
	_, _ = s.ResolveRound(Paper, Rock)
	s.DecideWinner()
	s.ClearRoundStats()

	if s.Round() != (RoundStats{}) || s.Winner() != NoWinner {
		t.Fatalf("round stats not cleared: %+v", s.Round())
	}
	if s.Game().GamesWon != 1 {
		t.Fatalf("game stats lost: %+v", s.Game())
	}
}

func TestSetRoundStatsMerges(t *testing.T) {
	t.Parallel()

	s := configured(t, 5)
	_, _ = s.ResolveRound(Rock, Scissors)

	draws := uint(4)
	s.SetRoundStats(RoundPatch{TotalDraws: &draws})
	r := s.Round()
	if r.TotalDraws != 4 || r.RoundsWon != 1 || r.CurrentRound != 1 || r.UserChoice != Rock {
		t.Fatalf("merge touched unrelated fields: %+v", r)
	}

	tooFar := uint(12)
	s.SetRoundStats(RoundPatch{CurrentRound: &tooFar})
	if s.Round().CurrentRound != 5 {
		t.Fatalf("current round must be clamped to max, got %d", s.Round().CurrentRound)
	}
}

func TestSetGameStatsRederivesWinCondition(t *testing.T) {
	t.Parallel()

	s := configured(t, 3)
	if err := s.SetGameStats(GameStats{GamesWon: 2, GamesLost: 1}, 7); err != nil {
		t.Fatalf("set game stats: %v", err)
	}
	if s.MaxRounds() != 7 || s.WinCondition() != 4 {
		t.Fatalf("max=%d wc=%d", s.MaxRounds(), s.WinCondition())
	}
	if s.Game() != (GameStats{GamesWon: 2, GamesLost: 1}) {
		t.Fatalf("game stats = %+v", s.Game())
	}
}

func TestApplyRestoresRecord(t *testing.T) {
	t.Parallel()

	s := NewSession()
	rec := SavedGame{
		ID:        "id",
		Game:      GameStats{GamesWon: 1},
		MaxRounds: 9,
		Round:     RoundStats{RoundsWon: 2, RoundsLost: 1, TotalDraws: 3, CurrentRound: 3, UserChoice: Paper, OpponentChoice: Scissors},
	}
	if err := s.Apply(rec); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.MaxRounds() != 9 || s.WinCondition() != 5 {
		t.Fatalf("configuration not restored")
	}
	if s.Round() != rec.Round || s.Game() != rec.Game {
		t.Fatalf("restored %+v %+v", s.Round(), s.Game())
	}
	snap := s.Snapshot()
	if snap.Round != rec.Round || snap.MaxRounds != 9 || snap.ID != "" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestApplyDecidedRecordIsNotCreditedTwice(t *testing.T) {
	t.Parallel()

	s := NewSession()
	rec := SavedGame{
		Game:      GameStats{GamesLost: 1},
		MaxRounds: 3,
		Round:     RoundStats{RoundsLost: 2, CurrentRound: 3},
	}
	if err := s.Apply(rec); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.Winner() != OpponentWins {
		t.Fatalf("winner = %q, want opponent", s.Winner())
	}
	s.DecideWinner()
	if s.Game().GamesLost != 1 {
		t.Fatalf("games lost = %d, want 1", s.Game().GamesLost)
	}
}

func TestNoticesAreShownOnce(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetSavedID("a")
	s.SetDeletedID("b")
	if s.TakeSavedID() != "a" || s.TakeSavedID() != "" {
		t.Fatalf("saved notice must clear after one read")
	}
	if s.TakeDeletedID() != "b" || s.TakeDeletedID() != "" {
		t.Fatalf("deleted notice must clear after one read")
	}
}

func TestSavedGamesCacheAndCount(t *testing.T) {
	t.Parallel()

	s := NewSession()
	s.SetSavedGamesCountFromStore(2)
	s.RecordSaved(Summary{ID: "c"})
	if s.SavedGamesCount() != 3 || len(s.SavedGames()) != 0 {
		t.Fatalf("unloaded cache must only move the count: %d %v", s.SavedGamesCount(), s.SavedGames())
	}
	s.RecordDeleted("a")
	if s.SavedGamesCount() != 2 {
		t.Fatalf("count = %d, want 2", s.SavedGamesCount())
	}

	s.SetSavedGames([]Summary{{ID: "b"}, {ID: "c"}})
	if !s.SavedGamesLoaded() || s.SavedGamesCount() != 2 {
		t.Fatalf("loaded cache count = %d", s.SavedGamesCount())
	}
	s.RecordSaved(Summary{ID: "d"})
	s.RecordDeleted("b")
	s.RecordDeleted("missing")
	got := s.SavedGames()
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "d" || s.SavedGamesCount() != 2 {
		t.Fatalf("cache = %v count = %d", got, s.SavedGamesCount())
	}
}
