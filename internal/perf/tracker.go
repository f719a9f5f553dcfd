package perf

import "sync"

// Tracker is a concurrency-safe FIFO collection of commands that have
// started but not been consumed by an observer. Commands insert
// themselves on start and never remove themselves; an external observer
// decides whether to Snapshot (observe) or Take/Drain (consume)
// entries.
type Tracker struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	capacity int
	items    []*Command
}

// NewTracker creates an unbounded Tracker.
func NewTracker() *Tracker {
	return NewTrackerWithCapacity(0)
}

// NewTrackerWithCapacity creates a Tracker that holds at most capacity
// entries; Put blocks while the tracker is full. A capacity of zero
// means unbounded.
func NewTrackerWithCapacity(capacity int) *Tracker {
	t := &Tracker{capacity: capacity}
	t.notFull = sync.NewCond(&t.mu)
	t.notEmpty = sync.NewCond(&t.mu)
	return t
}

// Put appends a command. Blocks only when a bounded tracker is full.
func (t *Tracker) Put(c *Command) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for t.capacity > 0 && len(t.items) >= t.capacity {
		t.notFull.Wait()
	}
	t.items = append(t.items, c)
	t.notEmpty.Signal()
}

// Take removes and returns the oldest tracked command, blocking until
// one is available.
func (t *Tracker) Take() *Command {
	t.mu.Lock()
	defer t.mu.Unlock()
	for len(t.items) == 0 {
		t.notEmpty.Wait()
	}
	c := t.items[0]
	t.items = t.items[1:]
	t.notFull.Signal()
	return c
}

// Snapshot returns the tracked commands in insertion order without
// consuming them.
func (t *Tracker) Snapshot() []*Command {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Command, len(t.items))
	copy(out, t.items)
	return out
}

// Drain removes and returns all tracked commands in insertion order.
func (t *Tracker) Drain() []*Command {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.items
	t.items = nil
	t.notFull.Broadcast()
	return out
}

// Len returns the number of tracked commands.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}
