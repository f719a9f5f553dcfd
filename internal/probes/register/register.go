// Package register provides the agent-registration probe.
package register

import (
	"context"

	"github.com/probekit/agentperf/internal/registry"
)

// Name is the probe name.
const Name = "register-agent"

// Probe registers a fresh synthetic agent and reports its UUID. It
// measures the cost of admitting a new agent into the registry.
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

// Execute registers a new agent and returns its UUID.
func (p *Probe) Execute(ctx context.Context) (string, error) {
	agent := p.registry.Register(registry.AgentInstance{})
	return agent.UUID, nil
}
