// Package storage persists exchange-rate snapshots to SQLite so the
// service can convert with the last known rates while the currency
// endpoint is unreachable, including across restarts.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"spendsight/internal/currency"
)

// RateStore is the SQLite-backed snapshot archive.
type RateStore struct {
	db *sql.DB
}

func NewRateStore(dbPath string) (*RateStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &RateStore{db: db}, nil
}

func (s *RateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot archives one snapshot atomically. Empty snapshots are
// refused so a failed fetch can never shadow a good archive.
func (s *RateStore) SaveSnapshot(ctx context.Context, snap currency.Snapshot) error {
	if len(snap.Table) == 0 {
		return errors.New("refusing to save empty rate snapshot")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO rate_snapshots (fetched_at) VALUES (?)`,
		snap.FetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	for code, rate := range snap.Table {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rate_entries (snapshot_id, code, symbol, rate) VALUES (?, ?, ?, ?)`,
			id, code, snap.Symbols[code], rate); err != nil {
			return fmt.Errorf("insert rate entry %s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot loads the most recently fetched snapshot. The second
// return is false when the archive is empty.
func (s *RateStore) LatestSnapshot(ctx context.Context) (currency.Snapshot, bool, error) {
	var (
		id        int64
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fetched_at FROM rate_snapshots ORDER BY fetched_at DESC, id DESC LIMIT 1`).
		Scan(&id, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return currency.Snapshot{}, false, nil
	}
	if err != nil {
		return currency.Snapshot{}, false, fmt.Errorf("query latest snapshot: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return currency.Snapshot{}, false, fmt.Errorf("parse snapshot timestamp: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT code, symbol, rate FROM rate_entries WHERE snapshot_id = ?`, id)
	if err != nil {
		return currency.Snapshot{}, false, fmt.Errorf("query rate entries: %w", err)
	}
	defer rows.Close()

	snap := currency.Snapshot{
		Table:     currency.RateTable{},
		Symbols:   map[string]string{},
		FetchedAt: ts,
	}
	for rows.Next() {
		var (
			code, symbol string
			rate         float64
		)
		if err := rows.Scan(&code, &symbol, &rate); err != nil {
			return currency.Snapshot{}, false, fmt.Errorf("scan rate entry: %w", err)
		}
		snap.Table[code] = rate
		if symbol != "" {
			snap.Symbols[code] = symbol
		}
	}
	if err := rows.Err(); err != nil {
		return currency.Snapshot{}, false, fmt.Errorf("iterate rate entries: %w", err)
	}
	return snap, true, nil
}

// Prune keeps the newest n snapshots and deletes the rest.
func (s *RateStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM rate_snapshots WHERE id NOT IN (
			SELECT id FROM rate_snapshots ORDER BY fetched_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	// sqlite only cascades with foreign_keys on, so sweep explicitly
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM rate_entries WHERE snapshot_id NOT IN (SELECT id FROM rate_snapshots)`); err != nil {
		return 0, fmt.Errorf("prune rate entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
