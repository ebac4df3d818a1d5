package rates

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"spendsight/internal/core"
	"spendsight/internal/currency"
	"spendsight/internal/log"
	"spendsight/internal/upstream/memory"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Level: slog.LevelError})
}

type fakeArchive struct {
	saved  []currency.Snapshot
	latest currency.Snapshot
	has    bool
	err    error
}

func (f *fakeArchive) SaveSnapshot(_ context.Context, snap currency.Snapshot) error {
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeArchive) LatestSnapshot(context.Context) (currency.Snapshot, bool, error) {
	return f.latest, f.has, f.err
}

func TestSnapshotFetchesAndCaches(t *testing.T) {
	store := memory.NewSeeded()
	svc := NewService(store, testLogger())

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Table["EUR"] != 0.9 {
		t.Errorf("EUR rate = %v, want 0.9", snap.Table["EUR"])
	}

	// backend failure after a successful fetch keeps serving the cache
	store.FailWith("currencies", errors.New("down"))
	snap, err = svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot with cache: %v", err)
	}
	if len(snap.Table) == 0 {
		t.Fatal("cached snapshot lost")
	}
}

func TestSnapshotRefetchesWhenStale(t *testing.T) {
	store := memory.NewSeeded()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := NewService(store, testLogger(),
		WithMaxAge(30*time.Minute),
		WithClock(func() time.Time { return now }))

	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	store.SeedCurrencies(core.CurrencyInfo{Code: "USD", Symbol: "$", ExchangeRate: 1.0},
		core.CurrencyInfo{Code: "EUR", Symbol: "€", ExchangeRate: 0.8})
	now = now.Add(time.Hour)

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot after staleness: %v", err)
	}
	if snap.Table["EUR"] != 0.8 {
		t.Errorf("EUR rate = %v, want refreshed 0.8", snap.Table["EUR"])
	}
}

func TestSnapshotFallsBackToArchive(t *testing.T) {
	store := memory.New()
	store.FailWith("currencies", errors.New("down"))
	archived := currency.NewSnapshot([]core.CurrencyInfo{
		{Code: "USD", Symbol: "$", ExchangeRate: 1.0},
	}, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	arch := &fakeArchive{latest: archived, has: true}
	svc := NewService(store, testLogger(), WithArchive(arch))

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Table["USD"] != 1.0 {
		t.Errorf("USD rate = %v, want archived 1.0", snap.Table["USD"])
	}
}

func TestSnapshotDegradesToEmpty(t *testing.T) {
	store := memory.New()
	store.FailWith("currencies", errors.New("down"))
	svc := NewService(store, testLogger())

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot must not fail: %v", err)
	}
	if len(snap.Table) != 0 {
		t.Errorf("expected empty snapshot, got %d rates", len(snap.Table))
	}
}

func TestRefreshArchives(t *testing.T) {
	store := memory.NewSeeded()
	arch := &fakeArchive{}
	svc := NewService(store, testLogger(), WithArchive(arch))

	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(arch.saved) != 1 {
		t.Fatalf("archive holds %d snapshots, want 1", len(arch.saved))
	}
}
