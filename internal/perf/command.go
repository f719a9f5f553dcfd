// Package perf runs performance probes against the agent registry with
// uniform timing, in-flight tracking, and error capture.
package perf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/probekit/agentperf/internal/registry"
)

// Probe is the unit of work a Command wraps. Execute returns the UUID
// of the agent it operated on, or "" when it legitimately produced no
// value. Any error or panic is captured by the Command harness.
type Probe interface {
	Name() string
	Execute(ctx context.Context) (string, error)
}

// ErrNoRegisteredAgents is returned by probes that need a live agent
// when the registry is empty.
var ErrNoRegisteredAgents = errors.New("no registered agents")

// Command wraps one Probe invocation with timing, tracker insertion,
// error capture, and completion logging. A Command is built fresh per
// invocation and must not be reused: Run mutates the owned Heartbeat
// and Result.
type Command struct {
	name      string
	probe     Probe
	tracker   *Tracker
	logger    *slog.Logger
	heartbeat Heartbeat
	result    *Result
}

// NewCommand wraps probe for a single run. All commands share the
// tracker so observers see every in-flight probe in one place.
func NewCommand(probe Probe, tracker *Tracker, logger *slog.Logger) *Command {
	return &Command{
		name:    probe.Name(),
		probe:   probe,
		tracker: tracker,
		logger:  logger,
		result:  &Result{Name: probe.Name()},
	}
}

// Name returns the wrapped probe's name.
func (c *Command) Name() string {
	return c.name
}

// Result returns the record owned by this command. It is still being
// written until Run returns.
func (c *Command) Result() *Result {
	return c.result
}

// StartedAt returns when Run started the heartbeat. Zero before Run.
func (c *Command) StartedAt() time.Time {
	return c.heartbeat.StartedAt()
}

// Run executes the probe. It never fails: probe errors are recorded in
// the Result and logged, and the return value is "" in that case.
// Every run ends the heartbeat, fills in the Result, and emits one
// completion log line.
func (c *Command) Run(ctx context.Context) string {
	value, err := c.execute(ctx)
	completed := err == nil
	if err != nil {
		c.result.FailureMessage = err.Error()
		c.logger.Error("Error while executing command", "command", c.name, "error", err)
	}

	c.heartbeat.End()
	status := StatusCompleted
	if !completed {
		status = StatusFailed
	}
	ageInMillis := c.heartbeat.AgeInMillis()
	c.result.Status = status
	c.result.AgentUUIDs = "[" + value + "]"
	c.result.TimeTakenInMillis = ageInMillis
	c.logger.Info(fmt.Sprintf("Completed %s command for agent %s with status %s and time taken %d msec.",
		c.name, value, status, ageInMillis))
	return value
}

// execute is the protected region: the heartbeat starts, the command
// enters the tracker, and the probe runs. Panics from the probe (or a
// bounded tracker insert) surface as errors so that nothing escapes
// Run.
func (c *Command) execute(ctx context.Context) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = ""
			err = fmt.Errorf("%v", r)
		}
	}()
	c.heartbeat.Start()
	c.tracker.Put(c)
	value, err = c.probe.Execute(ctx)
	if err != nil {
		return "", err
	}
	return value, nil
}

// AnyRegisteredAgent returns an arbitrary registered agent, or ok=false
// when the registry is empty. Which agent comes back is up to the
// registry's iteration order.
func AnyRegisteredAgent(svc registry.Service) (registry.AgentInstance, bool) {
	agents := svc.FindRegisteredAgents()
	if len(agents) == 0 {
		return registry.AgentInstance{}, false
	}
	return agents[0], true
}
