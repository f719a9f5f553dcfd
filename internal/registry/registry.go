// Package registry tracks the fleet of registered build agents.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a registered agent.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusBuilding Status = "building"
	StatusDisabled Status = "disabled"
	StatusMissing  Status = "missing"
)

// AgentInstance describes one registered agent.
type AgentInstance struct {
	UUID         string    `json:"uuid"`
	Hostname     string    `json:"hostname"`
	IPAddress    string    `json:"ipAddress"`
	Status       Status    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Service is the read-only view of the registry that probe
// infrastructure consumes.
type Service interface {
	FindRegisteredAgents() []AgentInstance
}

// ErrAgentNotFound is returned when an operation names a UUID that is
// not currently registered.
var ErrAgentNotFound = errors.New("agent not found")

// Registry is an in-memory, concurrency-safe agent registry.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]AgentInstance
	order  []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		agents: make(map[string]AgentInstance),
	}
}

// Register adds an agent. A missing UUID is generated, a missing
// hostname is derived from the UUID, and the status defaults to idle.
// Registering an existing UUID replaces its entry in place.
func (r *Registry) Register(agent AgentInstance) AgentInstance {
	if agent.UUID == "" {
		agent.UUID = uuid.NewString()
	}
	if agent.Hostname == "" {
		agent.Hostname = fmt.Sprintf("agent-%.8s", agent.UUID)
	}
	if agent.IPAddress == "" {
		agent.IPAddress = "127.0.0.1"
	}
	if agent.Status == "" {
		agent.Status = StatusIdle
	}
	if agent.RegisteredAt.IsZero() {
		agent.RegisteredAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.agents[agent.UUID]; !exists {
		r.order = append(r.order, agent.UUID)
	}
	r.agents[agent.UUID] = agent
	return agent
}

// Erase removes an agent by UUID.
func (r *Registry) Erase(agentUUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agents[agentUUID]; !ok {
		return fmt.Errorf("erase agent %s: %w", agentUUID, ErrAgentNotFound)
	}
	delete(r.agents, agentUUID)
	for i, id := range r.order {
		if id == agentUUID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateStatus sets the status of a registered agent.
func (r *Registry) UpdateStatus(agentUUID string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent, ok := r.agents[agentUUID]
	if !ok {
		return fmt.Errorf("update status of agent %s: %w", agentUUID, ErrAgentNotFound)
	}
	agent.Status = status
	r.agents[agentUUID] = agent
	return nil
}

// Refresh marks an agent as freshly registered: its status returns to
// idle and its registration timestamp is reset.
func (r *Registry) Refresh(agentUUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	agent, ok := r.agents[agentUUID]
	if !ok {
		return fmt.Errorf("refresh agent %s: %w", agentUUID, ErrAgentNotFound)
	}
	agent.Status = StatusIdle
	agent.RegisteredAt = time.Now()
	r.agents[agentUUID] = agent
	return nil
}

// FindAgent looks up one agent by UUID.
func (r *Registry) FindAgent(agentUUID string) (AgentInstance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agent, ok := r.agents[agentUUID]
	return agent, ok
}

// FindRegisteredAgents returns all registered agents in registration order.
func (r *Registry) FindRegisteredAgents() []AgentInstance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	agents := make([]AgentInstance, 0, len(r.order))
	for _, id := range r.order {
		agents = append(agents, r.agents[id])
	}
	return agents
}

// Count returns the number of registered agents.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.agents)
}
