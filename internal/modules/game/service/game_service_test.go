package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rps/internal/modules/game/domain"
	"rps/internal/platform/clock"
	apperrors "rps/internal/platform/errors"
)

type memoryStore struct {
	capacity int
	records  map[string]domain.SavedGame
	order    []string
	next     int
	lists    int
	closed   bool
}

func newMemoryStore(capacity int) *memoryStore {
	return &memoryStore{capacity: capacity, records: map[string]domain.SavedGame{}}
}

func (m *memoryStore) Save(_ context.Context, g domain.SavedGame) (string, error) {
	if len(m.records) >= m.capacity {
		return "", apperrors.ErrCapacityExceeded
	}
	m.next++
	g.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.next)
	m.records[g.ID] = g
	m.order = append(m.order, g.ID)
	return g.ID, nil
}

func (m *memoryStore) Restore(_ context.Context, id string) (domain.SavedGame, error) {
	g, ok := m.records[id]
	if !ok {
		return domain.SavedGame{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, id)
	}
	return g, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, id)
	}
	delete(m.records, id)
	return nil
}

func (m *memoryStore) List(context.Context) ([]domain.Summary, error) {
	m.lists++
	var out []domain.Summary
	for _, id := range m.order {
		if g, ok := m.records[id]; ok {
			out = append(out, g.Summary())
		}
	}
	return out, nil
}

func (m *memoryStore) Count(context.Context) (int, error) { return len(m.records), nil }
func (m *memoryStore) Capacity() int                      { return m.capacity }
func (m *memoryStore) Close() error                       { m.closed = true; return nil }

type scriptedOpponent struct {
	hands  []domain.Choice
	idx    int
	closed bool
}

func (s *scriptedOpponent) Choose(context.Context) (domain.Choice, error) {
	c := s.hands[s.idx%len(s.hands)]
	s.idx++
	return c, nil
}

func (s *scriptedOpponent) Close() error { s.closed = true; return nil }

var savedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(store *memoryStore, hands ...domain.Choice) *GameService {
	return NewGameService(store, &scriptedOpponent{hands: hands}, clock.Fixed(savedAt), nil)
}

func mustConfigure(t *testing.T, svc *GameService, rounds uint) {
	t.Helper()
	if err := svc.ConfigureRounds(rounds); err != nil {
		t.Fatalf("configure %d rounds: %v", rounds, err)
	}
}

func mustPlay(t *testing.T, svc *GameService, hand domain.Choice) {
	t.Helper()
	if _, err := svc.PlayRound(context.Background(), hand); err != nil {
		t.Fatalf("play %q: %v", hand, err)
	}
}

func mustSave(t *testing.T, svc *GameService) string {
	t.Helper()
	id, err := svc.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return id
}

func mustList(t *testing.T, svc *GameService) {
	t.Helper()
	if _, err := svc.ListSaved(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestPlayRoundUsesOpponentHand(t *testing.T) {
	t.Parallel()

	svc := newService(newMemoryStore(5), domain.Scissors)
	if err := svc.ConfigureRounds(3); err != nil {
		t.Fatalf("configure: %v", err)
	}
	res, err := svc.PlayRound(context.Background(), domain.Rock)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if res.Outcome != domain.Win || res.Opponent != domain.Scissors {
		t.Fatalf("result = %+v", res)
	}
	r := svc.Session().Round()
	if r.RoundsWon != 1 || r.CurrentRound != 1 {
		t.Fatalf("round stats = %+v", r)
	}
}

func TestPlayRoundRejectsUnknownHand(t *testing.T) {
	t.Parallel()

	svc := newService(newMemoryStore(5), domain.Rock)
	mustConfigure(t, svc, 3)
	if _, err := svc.PlayRound(context.Background(), domain.Choice("x")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(5)
	svc := newService(store, domain.Scissors, domain.Rock)
	mustConfigure(t, svc, 7)
	mustPlay(t, svc, domain.Rock)
	mustPlay(t, svc, domain.Rock)

	id, err := svc.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := svc.Session().TakeSavedID(); got != id {
		t.Fatalf("saved notice = %q, want %q", got, id)
	}
	if svc.Session().SavedGamesCount() != 1 {
		t.Fatalf("saved count = %d", svc.Session().SavedGamesCount())
	}
	if !store.records[id].SavedAt.Equal(savedAt) {
		t.Fatalf("saved at = %v", store.records[id].SavedAt)
	}

	other := newService(store, domain.Paper)
	if err := other.Restore(context.Background(), id); err != nil {
		t.Fatalf("restore: %v", err)
	}
	sess := other.Session()
	if sess.MaxRounds() != 7 || sess.WinCondition() != 4 {
		t.Fatalf("configuration = %d/%d", sess.MaxRounds(), sess.WinCondition())
	}
	if sess.Round() != svc.Session().Round() {
		t.Fatalf("round stats = %+v, want %+v", sess.Round(), svc.Session().Round())
	}
}

func TestSaveAtCapacity(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(5)
	svc := newService(store, domain.Rock)
	mustConfigure(t, svc, 3)
	for i := 0; i < 5; i++ {
		if _, err := svc.Save(context.Background()); err != nil {
			t.Fatalf("save %d: %v", i+1, err)
		}
	}
	_ = svc.Session().TakeSavedID()

	if _, err := svc.Save(context.Background()); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Fatalf("expected capacity exceeded, got %v", err)
	}
	if len(store.records) != 5 || svc.Session().SavedGamesCount() != 5 {
		t.Fatalf("store=%d count=%d", len(store.records), svc.Session().SavedGamesCount())
	}
	if svc.Session().TakeSavedID() != "" {
		t.Fatalf("failed save must not leave a notice")
	}
}

func TestDeleteMissingLeavesCacheAlone(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(5)
	svc := newService(store, domain.Rock)
	mustConfigure(t, svc, 3)
	mustSave(t, svc)
	if _, err := svc.ListSaved(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}

	missing := "ffffffff-ffff-ffff-ffff-ffffffffffff"
	if err := svc.Delete(context.Background(), missing); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(svc.Session().SavedGames()) != 1 || svc.Session().SavedGamesCount() != 1 {
		t.Fatalf("cache changed after failed delete")
	}
	if svc.Session().TakeDeletedID() != "" {
		t.Fatalf("failed delete must not leave a notice")
	}
}

func TestDeleteRemovesFromCache(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(5)
	svc := newService(store, domain.Rock)
	mustConfigure(t, svc, 3)
	first := mustSave(t, svc)
	second := mustSave(t, svc)
	mustList(t, svc)

	if err := svc.Delete(context.Background(), first); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list := svc.Session().SavedGames()
	if len(list) != 1 || list[0].ID != second {
		t.Fatalf("cache = %v", list)
	}
	if svc.Session().TakeDeletedID() != first {
		t.Fatalf("deleted notice missing")
	}
}

func TestListSavedRefreshesOnlyWhenEmpty(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(5)
	svc := newService(store, domain.Rock)
	mustConfigure(t, svc, 3)

	if list, err := svc.ListSaved(context.Background()); err != nil || len(list) != 0 {
		t.Fatalf("empty list = %v, %v", list, err)
	}
	id := mustSave(t, svc)
	mustList(t, svc)
	mustList(t, svc)
	if store.lists != 1 {
		t.Fatalf("store listed %d times, want 1", store.lists)
	}

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	mustList(t, svc)
	if store.lists != 2 {
		t.Fatalf("store listed %d times, want 2", store.lists)
	}
}

func TestLoadSavedCountAndClose(t *testing.T) {
	t.Parallel()

	store := newMemoryStore(5)
	store.records["x"] = domain.SavedGame{ID: "x"}
	store.records["y"] = domain.SavedGame{ID: "y"}
	opp := &scriptedOpponent{hands: []domain.Choice{domain.Rock}}
	svc := NewGameService(store, opp, nil, nil)

	if err := svc.LoadSavedCount(context.Background()); err != nil {
		t.Fatalf("load count: %v", err)
	}
	if svc.Session().SavedGamesCount() != 2 {
		t.Fatalf("count = %d", svc.Session().SavedGamesCount())
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !store.closed || !opp.closed {
		t.Fatalf("close must release store and opponent")
	}
}
