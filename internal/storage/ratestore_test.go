package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"spendsight/internal/core"
	"spendsight/internal/currency"
)

func testStore(t *testing.T) *RateStore {
	t.Helper()
	store, err := NewRateStore(filepath.Join(t.TempDir(), "rates.db"))
	if err != nil {
		t.Fatalf("NewRateStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func snapAt(ts time.Time) currency.Snapshot {
	return currency.NewSnapshot([]core.CurrencyInfo{
		{Code: "USD", Symbol: "$", ExchangeRate: 1.0},
		{Code: "EUR", Symbol: "€", ExchangeRate: 0.9},
	}, ts)
}

func TestRateStoreRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	fetched := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	if err := store.SaveSnapshot(ctx, snapAt(fetched)); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, ok, err := store.LatestSnapshot(ctx)
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if !ok {
		t.Fatal("LatestSnapshot found nothing")
	}
	if !got.FetchedAt.Equal(fetched) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, fetched)
	}
	if got.Table["EUR"] != 0.9 {
		t.Errorf("EUR rate = %v, want 0.9", got.Table["EUR"])
	}
	if got.Symbols["USD"] != "$" {
		t.Errorf("USD symbol = %q, want $", got.Symbols["USD"])
	}
}

func TestRateStoreEmptyArchive(t *testing.T) {
	store := testStore(t)

	_, ok, err := store.LatestSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if ok {
		t.Fatal("empty archive reported a snapshot")
	}
}

func TestRateStoreRefusesEmptySnapshot(t *testing.T) {
	store := testStore(t)

	if err := store.SaveSnapshot(context.Background(), currency.Snapshot{}); err == nil {
		t.Fatal("expected error saving empty snapshot")
	}
}

func TestRateStoreLatestWinsAndPrune(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if err := store.SaveSnapshot(ctx, snapAt(base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveSnapshot %d: %v", i, err)
		}
	}

	got, ok, err := store.LatestSnapshot(ctx)
	if err != nil || !ok {
		t.Fatalf("LatestSnapshot: ok=%v err=%v", ok, err)
	}
	want := base.Add(3 * time.Hour)
	if !got.FetchedAt.Equal(want) {
		t.Errorf("FetchedAt = %v, want %v", got.FetchedAt, want)
	}

	pruned, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if pruned != 2 {
		t.Errorf("Prune removed %d snapshots, want 2", pruned)
	}

	// the newest snapshot survives pruning
	got, ok, err = store.LatestSnapshot(ctx)
	if err != nil || !ok {
		t.Fatalf("LatestSnapshot after prune: ok=%v err=%v", ok, err)
	}
	if !got.FetchedAt.Equal(want) {
		t.Errorf("FetchedAt after prune = %v, want %v", got.FetchedAt, want)
	}
}
