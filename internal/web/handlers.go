package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/scheduler"
)

// inFlightEntry is one tracked command as reported by the API.
type inFlightEntry struct {
	Name      string `json:"name"`
	RunningMs int64  `json:"runningMs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"registered_agents": s.registry.Count(),
		"in_flight":         s.tracker.Len(),
	}
	if s.store != nil {
		if failures, err := s.store.FailureCount(r.Context(), time.Hour); err == nil {
			response["recent_failures"] = failures
		} else {
			slog.Debug("failure count query failed", "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) handleInFlight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inFlightEntries(s.tracker.Snapshot()))
}

func (s *Server) handleDrain(w http.ResponseWriter, r *http.Request) {
	drained := s.tracker.Drain()
	names := make([]string, len(drained))
	for i, cmd := range drained {
		names[i] = cmd.Name()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"drained": len(drained),
		"names":   names,
	})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "result history not configured", http.StatusNotImplemented)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := s.store.RecentResults(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func (s *Server) handleRunProbe(w http.ResponseWriter, r *http.Request) {
	if s.trigger == nil {
		http.Error(w, "manual runs not configured", http.StatusNotImplemented)
		return
	}

	result, err := s.trigger.TriggerImmediate(r.Context(), r.PathValue("name"))
	if err != nil {
		if errors.Is(err, scheduler.ErrUnknownProbe) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func inFlightEntries(commands []*perf.Command) []inFlightEntry {
	entries := make([]inFlightEntry, len(commands))
	for i, cmd := range commands {
		entries[i] = inFlightEntry{
			Name:      cmd.Name(),
			RunningMs: time.Since(cmd.StartedAt()).Milliseconds(),
		}
	}
	return entries
}
