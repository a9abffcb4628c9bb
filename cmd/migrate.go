package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/techwayfit/twf-pulse-sub000/internal/config"
	"github.com/techwayfit/twf-pulse-sub000/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [create <name>]",
	Short: "Run pending migrations, or create a new migration pair",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required")
		}
		return database.CreateMigration(args[1])
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.MigrateUp(cfg.DatabaseURL())
}
