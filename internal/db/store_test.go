package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/probekit/agentperf/internal/perf"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "agentperf.db")
	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	database, err := Connect(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(database.Close)

	return NewStore(database)
}

func TestWriteAndReadResults(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := &perf.Result{
		Name:              "register-agent",
		Status:            perf.StatusCompleted,
		AgentUUIDs:        "[uuid-1]",
		TimeTakenInMillis: 12,
	}
	second := &perf.Result{
		Name:              "erase-agent",
		Status:            perf.StatusFailed,
		FailureMessage:    "no registered agents",
		AgentUUIDs:        "[]",
		TimeTakenInMillis: 3,
	}

	now := time.Now()
	if err := store.WriteResult(ctx, first, now.Add(-time.Minute)); err != nil {
		t.Fatalf("write first result: %v", err)
	}
	if err := store.WriteResult(ctx, second, now); err != nil {
		t.Fatalf("write second result: %v", err)
	}

	results, err := store.RecentResults(ctx, 10)
	if err != nil {
		t.Fatalf("recent results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Newest first
	if results[0].Name != "erase-agent" {
		t.Errorf("expected newest result first, got %q", results[0].Name)
	}
	if results[0].Status != perf.StatusFailed {
		t.Errorf("expected status %q, got %q", perf.StatusFailed, results[0].Status)
	}
	if results[0].FailureMessage != "no registered agents" {
		t.Errorf("unexpected failure message %q", results[0].FailureMessage)
	}
	if results[1].AgentUUIDs != "[uuid-1]" {
		t.Errorf("expected agentUuids %q, got %q", "[uuid-1]", results[1].AgentUUIDs)
	}
	if results[1].TimeTakenInMillis != 12 {
		t.Errorf("expected 12ms, got %d", results[1].TimeTakenInMillis)
	}
}

func TestRecentResultsLimit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result := &perf.Result{Name: "register-agent", Status: perf.StatusCompleted, AgentUUIDs: "[]"}
		if err := store.WriteResult(ctx, result, time.Now()); err != nil {
			t.Fatalf("write result: %v", err)
		}
	}

	results, err := store.RecentResults(ctx, 3)
	if err != nil {
		t.Fatalf("recent results: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestFailureCount(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	failed := &perf.Result{Name: "a", Status: perf.StatusFailed, FailureMessage: "boom", AgentUUIDs: "[]"}
	completed := &perf.Result{Name: "b", Status: perf.StatusCompleted, AgentUUIDs: "[x]"}

	if err := store.WriteResult(ctx, failed, time.Now()); err != nil {
		t.Fatalf("write failed result: %v", err)
	}
	if err := store.WriteResult(ctx, completed, time.Now()); err != nil {
		t.Fatalf("write completed result: %v", err)
	}
	// Old failure outside the window
	if err := store.WriteResult(ctx, failed, time.Now().Add(-2*time.Hour)); err != nil {
		t.Fatalf("write old result: %v", err)
	}

	count, err := store.FailureCount(ctx, time.Hour)
	if err != nil {
		t.Fatalf("failure count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 recent failure, got %d", count)
	}
}

func TestMigrationsRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "agentperf.db")

	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	// Idempotent
	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("re-run migrations: %v", err)
	}
	if err := RollbackMigrations(dbPath); err != nil {
		t.Fatalf("rollback migrations: %v", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		t.Fatalf("run migrations after rollback: %v", err)
	}
}
