package reregister

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

func TestExecuteReregistersSameUUID(t *testing.T) {
	reg := registry.New()
	agent := reg.Register(registry.AgentInstance{})
	p := New(reg)

	uuid, err := p.Execute(context.Background())
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if uuid != agent.UUID {
		t.Errorf("expected UUID %q back, got %q", agent.UUID, uuid)
	}
	if reg.Count() != 1 {
		t.Errorf("expected 1 agent after re-registration, got %d", reg.Count())
	}
	refreshed, ok := reg.FindAgent(uuid)
	if !ok {
		t.Fatal("agent missing after re-registration")
	}
	if refreshed.Status != registry.StatusIdle {
		t.Errorf("expected idle status, got %q", refreshed.Status)
	}
	if !refreshed.RegisteredAt.After(agent.RegisteredAt) && !refreshed.RegisteredAt.Equal(agent.RegisteredAt) {
		t.Error("expected registration timestamp refreshed")
	}
}
