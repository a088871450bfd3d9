package out

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	apperrors "rps/internal/platform/errors"
)

// Set RPS_TEST_PG_DSN to a disposable database to run these.
func openPostgresStore(t *testing.T, capacity int) *PostgresSessionStore {
	t.Helper()
	dsn := os.Getenv("RPS_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("RPS_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	store, err := NewPostgresSessionStore(ctx, dsn, capacity, nil)
	if err != nil {
		t.Fatalf("open postgres store: %v", err)
	}
	if _, err := store.pool.Exec(ctx, `DELETE FROM game_data`); err != nil {
		t.Fatalf("reset: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewPostgresSessionStoreRequiresDSN(t *testing.T) {
	t.Parallel()

	if _, err := NewPostgresSessionStore(context.Background(), " ", 5, nil); err == nil {
		t.Fatalf("expected dsn error")
	}
}

func TestPostgresSessionStoreLifecycle(t *testing.T) {
	store := openPostgresStore(t, 2)
	ctx := context.Background()
	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	id, err := store.Save(ctx, sampleGame(at))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Restore(ctx, id)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got.Round != sampleGame(at).Round || got.MaxRounds != 5 || !got.SavedAt.Equal(at) {
		t.Fatalf("restored %+v", got)
	}

	if _, err := store.Save(ctx, sampleGame(at)); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if _, err := store.Save(ctx, sampleGame(at)); !errors.Is(err, apperrors.ErrCapacityExceeded) {
		t.Fatalf("expected capacity exceeded, got %v", err)
	}

	list, err := store.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list = %v, %v", list, err)
	}
	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, id); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if n, err := store.Count(ctx); err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}
}
