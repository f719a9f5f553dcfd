package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/probes"
	"github.com/probekit/agentperf/internal/registry"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every probe once and print the results",
	Long: `Run seeds an in-memory agent registry, executes each built-in probe
once through the command harness, and prints the outcome of each run.`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("seed-agents", 5, "Synthetic agents to register before probing")
}

func runOnce(cmd *cobra.Command, args []string) error {
	seed, _ := cmd.Flags().GetInt("seed-agents")

	reg := registry.New()
	for i := 0; i < seed; i++ {
		reg.Register(registry.AgentInstance{})
	}

	tracker := perf.NewTracker()
	started := time.Now()

	all := probes.All(reg)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROBE\tSTATUS\tAGENT\tTIME (MS)")
	for _, p := range all {
		command := perf.NewCommand(p, tracker, slog.Default())
		command.Run(cmd.Context())
		result := command.Result()
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", result.Name, result.Status, result.AgentUUIDs, result.TimeTakenInMillis)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d probes finished in %s (%d still tracked)\n",
		len(all), units.HumanDuration(time.Since(started)), tracker.Len())
	return nil
}
