package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/database"
)

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the schema of the local store (sqlite) or of the API document store (postgres)",
	}
	migrateCmd.PersistentFlags().String("target", "local", "Database to migrate: local or api")

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration(cmd, "up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration(cmd, "down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion(cmd)
		},
	})

	return migrateCmd
}

func openTarget(cmd *cobra.Command, cfg *config.Config) *database.DB {
	target, _ := cmd.Flags().GetString("target")

	var (
		db  *database.DB
		err error
	)
	switch target {
	case "local":
		db, err = database.OpenSQLite(cfg.Client.LocalStorePath)
	case "api":
		if cfg.Store.Driver != "postgres" {
			log.Fatalf("The API store %q has no schema; set STORE_DRIVER=postgres", cfg.Store.Driver)
		}
		db, err = database.OpenPostgres(cfg.Database)
	default:
		log.Fatalf("Unknown migration target %q", target)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func runMigration(cmd *cobra.Command, direction string) {
	cfg := loadConfig(cmd)
	db := openTarget(cmd, cfg)
	defer db.Close()

	if err := db.Migrate(direction); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Printf("Migration %s completed successfully (%s)\n", direction, db.Driver())
}

func showMigrationVersion(cmd *cobra.Command) {
	cfg := loadConfig(cmd)
	db := openTarget(cmd, cfg)
	defer db.Close()

	version, dirty, err := db.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}
