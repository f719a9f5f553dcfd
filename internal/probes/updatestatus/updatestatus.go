// Package updatestatus provides the agent status-toggle probe.
package updatestatus

import (
	"context"

	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/registry"
)

// Name is the probe name.
const Name = "update-agent-status"

// Probe toggles an arbitrary agent between disabled and idle, timing
// the registry's status-update path.
type Probe struct {
	registry *registry.Registry
}

// New creates the probe.
func New(reg *registry.Registry) *Probe {
	return &Probe{registry: reg}
}

// Name returns the probe name.
func (p *Probe) Name() string {
	return Name
}

// Execute flips the status of an arbitrary agent and returns its UUID.
func (p *Probe) Execute(ctx context.Context) (string, error) {
	agent, ok := perf.AnyRegisteredAgent(p.registry)
	if !ok {
		return "", perf.ErrNoRegisteredAgents
	}
	next := registry.StatusDisabled
	if agent.Status == registry.StatusDisabled {
		next = registry.StatusIdle
	}
	if err := p.registry.UpdateStatus(agent.UUID, next); err != nil {
		return "", err
	}
	return agent.UUID, nil
}
