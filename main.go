package main

import (
	"os"

	"github.com/probekit/agentperf/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
