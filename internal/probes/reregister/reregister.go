// Package reregister provides the agent re-registration probe.
package reregister

import (
	"context"
	"time"

	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/registry"
)

// Name is the probe name.
const Name = "reregister-agent"

// Probe erases an arbitrary registered agent and registers it again
// under the same UUID, exercising the erase-then-admit path an agent
// restart takes.
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

// Execute re-registers an arbitrary agent and returns its UUID.
func (p *Probe) Execute(ctx context.Context) (string, error) {
	agent, ok := perf.AnyRegisteredAgent(p.registry)
	if !ok {
		return "", perf.ErrNoRegisteredAgents
	}
	if err := p.registry.Erase(agent.UUID); err != nil {
		return "", err
	}
	agent.Status = registry.StatusIdle
	agent.RegisteredAt = time.Now()
	p.registry.Register(agent)
	return agent.UUID, nil
}
