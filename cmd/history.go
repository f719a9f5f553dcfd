package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/probekit/agentperf/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent probe results from the database",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Number of results to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	database, err := db.Connect(cmd.Context(), getDatabasePath(cmd))
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	results, err := db.NewStore(database).RecentResults(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No probe results recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tPROBE\tSTATUS\tTIME (MS)\tDETAIL")
	for _, r := range results {
		detail := r.AgentUUIDs
		if r.FailureMessage != "" {
			detail = r.FailureMessage
		}
		fmt.Fprintf(w, "%s ago\t%s\t%s\t%d\t%s\n",
			units.HumanDuration(time.Since(r.ExecutedAt)), r.Name, r.Status, r.TimeTakenInMillis, detail)
	}
	return w.Flush()
}
