package erase

import (
	"context"
	"errors"
	"testing"

	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/registry"
)

func TestExecuteEmptyRegistry(t *testing.T) {
	p := New(registry.New())

	_, err := p.Execute(context.Background())
	if !errors.Is(err, perf.ErrNoRegisteredAgents) {
		t.Errorf("expected ErrNoRegisteredAgents, got %v", err)
	}
}

func TestExecuteErasesAgent(t *testing.T) {
	reg := registry.New()
	agent := reg.Register(registry.AgentInstance{})
	p := New(reg)

	uuid, err := p.Execute(context.Background())
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if uuid != agent.UUID {
		t.Errorf("expected UUID %q, got %q", agent.UUID, uuid)
	}
	if reg.Count() != 0 {
		t.Errorf("expected empty registry, got %d agents", reg.Count())
	}
}
