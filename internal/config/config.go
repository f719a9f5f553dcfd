package config

import "time"

// SchedulerConfig holds configuration for the probe scheduler.
type SchedulerConfig struct {
	Interval      time.Duration
	MaxConcurrent int
	SeedAgents    int // synthetic agents registered at startup
}

// WebConfig holds configuration for the status server.
type WebConfig struct {
	Port      int
	AuthToken string
}
