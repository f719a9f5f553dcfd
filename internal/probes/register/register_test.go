package register

import (
	"context"
	"testing"

	"github.com/probekit/agentperf/internal/registry"
)

func TestExecuteRegistersAgent(t *testing.T) {
	reg := registry.New()
	p := New(reg)

	uuid, err := p.Execute(context.Background())
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if uuid == "" {
		t.Fatal("expected a UUID")
	}
	if _, ok := reg.FindAgent(uuid); !ok {
		t.Errorf("agent %s not registered", uuid)
	}
	if reg.Count() != 1 {
		t.Errorf("expected 1 agent, got %d", reg.Count())
	}
}

func TestName(t *testing.T) {
	if got := New(registry.New()).Name(); got != Name {
		t.Errorf("expected %q, got %q", Name, got)
	}
}
