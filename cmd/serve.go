package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/probekit/agentperf/internal/config"
	"github.com/probekit/agentperf/internal/db"
	"github.com/probekit/agentperf/internal/perf"
	"github.com/probekit/agentperf/internal/probes"
	"github.com/probekit/agentperf/internal/registry"
	"github.com/probekit/agentperf/internal/scheduler"
	"github.com/probekit/agentperf/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the probe scheduler and status API",
	Long: `Serve runs the probe scheduler, persisting every result to the
database, and exposes the status API for observing in-flight probes
and result history.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port for the status API")
	serveCmd.Flags().String("auth-token", "", "Bearer token for the status API (or AUTH_TOKEN env var)")
	serveCmd.Flags().Duration("interval", time.Minute, "Interval between probe cycles")
	serveCmd.Flags().Int("max-concurrent", 4, "Maximum probes running at once")
	serveCmd.Flags().Int("seed-agents", 5, "Synthetic agents to register at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	authToken, _ := cmd.Flags().GetString("auth-token")
	if authToken == "" {
		authToken = os.Getenv("AUTH_TOKEN")
	}
	if authToken == "" {
		return fmt.Errorf("auth token is required (--auth-token or AUTH_TOKEN)")
	}
	interval, _ := cmd.Flags().GetDuration("interval")
	maxConcurrent, _ := cmd.Flags().GetInt("max-concurrent")
	seed, _ := cmd.Flags().GetInt("seed-agents")

	schedCfg := &config.SchedulerConfig{
		Interval:      interval,
		MaxConcurrent: maxConcurrent,
		SeedAgents:    seed,
	}
	webCfg := &config.WebConfig{
		Port:      port,
		AuthToken: authToken,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPath := getDatabasePath(cmd)
	if err := db.RunMigrations(dbPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	database, err := db.Connect(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()
	store := db.NewStore(database)

	reg := registry.New()
	for i := 0; i < schedCfg.SeedAgents; i++ {
		reg.Register(registry.AgentInstance{})
	}

	tracker := perf.NewTracker()
	sched := scheduler.New(probes.All(reg), tracker, schedCfg.Interval, schedCfg.MaxConcurrent, slog.Default())
	sched.SetResultWriter(store)
	go sched.Run(ctx)

	server := web.NewServer(webCfg, tracker, reg, store, sched)
	return server.Run(ctx)
}
