// Package probes assembles the built-in probe set.
package probes

import (
	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/probes/erase"
	"github.com/probekit/agentperf/internal/probes/register"
	"github.com/probekit/agentperf/internal/probes/reregister"
	"github.com/probekit/agentperf/internal/probes/updatestatus"
	"github.com/probekit/agentperf/internal/registry"
)

// All returns the built-in probes, each bound to reg.
func All(reg *registry.Registry) []perf.Probe {
	return []perf.Probe{
		register.New(reg),
		reregister.New(reg),
		updatestatus.New(reg),
		erase.New(reg),
	}
}
