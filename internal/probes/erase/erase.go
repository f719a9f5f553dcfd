// Package erase provides the agent-removal probe.
package erase

import (
	"context"

	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/registry"
)

// Name is the probe name.
const Name = "erase-agent"

// Probe removes an arbitrary registered agent, timing the registry's
// deletion path. Paired with the register probe it keeps the fleet
// size roughly stable across scheduler cycles.
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

// Execute erases an arbitrary agent and returns its UUID.
func (p *Probe) Execute(ctx context.Context) (string, error) {
	agent, ok := perf.AnyRegisteredAgent(p.registry)
	if !ok {
		return "", perf.ErrNoRegisteredAgents
	}
	if err := p.registry.Erase(agent.UUID); err != nil {
		return "", err
	}
	return agent.UUID, nil
}
