package db

import (
	"context"
	"fmt"
	"time"

	"github.com/probekit/agentperf/internal/perf"
)

// SQLite datetime format (matches datetime('now'))
const timeFormat = "2006-01-02 15:04:05"

// StoredResult is one persisted probe result row.
type StoredResult struct {
	ID int64 `json:"id"`
	perf.Result
	ExecutedAt time.Time `json:"executedAt"`
}

// Store reads and writes probe result history. It satisfies the
// scheduler's ResultWriter interface.
type Store struct {
	db *DB
}

// NewStore creates a Store over database.
func NewStore(database *DB) *Store {
	return &Store{db: database}
}

// WriteResult appends one probe result.
func (s *Store) WriteResult(ctx context.Context, result *perf.Result, executedAt time.Time) error {
	_, err := s.db.DB().ExecContext(ctx, `
		INSERT INTO probe_results (name, status, failure_message, agent_uuids, time_taken_ms, executed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, result.Name, string(result.Status), result.FailureMessage, result.AgentUUIDs,
		result.TimeTakenInMillis, executedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert probe result: %w", err)
	}
	return nil
}

// RecentResults returns the most recent results, newest first.
func (s *Store) RecentResults(ctx context.Context, limit int) ([]StoredResult, error) {
	rows, err := s.db.DB().QueryContext(ctx, `
		SELECT id, name, status, failure_message, agent_uuids, time_taken_ms, executed_at
		FROM probe_results
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query probe results: %w", err)
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var r StoredResult
		var status, executedAt string
		if err := rows.Scan(&r.ID, &r.Name, &status, &r.FailureMessage, &r.AgentUUIDs, &r.TimeTakenInMillis, &executedAt); err != nil {
			return nil, fmt.Errorf("scan probe result: %w", err)
		}
		r.Status = perf.Status(status)
		if t, err := time.Parse(timeFormat, executedAt); err == nil {
			r.ExecutedAt = t
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// FailureCount returns how many runs failed within the trailing window.
func (s *Store) FailureCount(ctx context.Context, window time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-window).Format(timeFormat)
	var count int
	err := s.db.DB().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM probe_results
		WHERE status = ? AND executed_at > ?
	`, string(perf.StatusFailed), cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count failures: %w", err)
	}
	return count, nil
}
