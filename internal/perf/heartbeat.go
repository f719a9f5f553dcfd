package perf

import "time"

// Heartbeat measures the wall-clock duration of one command run.
// AgeInMillis is meaningful only after both Start and End have been
// called.
type Heartbeat struct {
	start time.Time
	end   time.Time
}

// Start records the start instant.
func (h *Heartbeat) Start() {
	h.start = time.Now()
}

// End records the end instant.
func (h *Heartbeat) End() {
	h.end = time.Now()
}

// StartedAt returns the recorded start instant.
func (h *Heartbeat) StartedAt() time.Time {
	return h.start
}

// AgeInMillis returns the elapsed milliseconds between Start and End.
func (h *Heartbeat) AgeInMillis() int64 {
	return h.end.Sub(h.start).Milliseconds()
}
