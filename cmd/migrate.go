package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probekit/agentperf/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		down, _ := cmd.Flags().GetBool("down")
		dbPath := getDatabasePath(cmd)

		if down {
			if err := db.RollbackMigrations(dbPath); err != nil {
				return fmt.Errorf("rollback migrations: %w", err)
			}
			fmt.Println("Migrations rolled back.")
			return nil
		}

		if err := db.RunMigrations(dbPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		fmt.Println("Migrations applied.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("down", false, "Roll back all migrations")
}
