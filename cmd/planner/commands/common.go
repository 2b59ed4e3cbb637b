package commands

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
	"github.com/taskmaster/planner/internal/infrastructure/config"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
)

// loadConfig loads the configuration and applies the global flags
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg.Client.Offline = true
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.Client.APIURL = apiURL
	}
	return cfg
}

func newLogger(cfg *config.Config) *logger.Logger {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return appLogger
}

// withApp runs fn with a wired planner client and releases it afterwards
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg := loadConfig(cmd)
	appLogger := newLogger(cfg)
	defer appLogger.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to open planner: %v", err)
	}
	defer a.Close()

	return fn(ctx, a)
}

// sourceNote reports where data came from when the API was not used
func sourceNote(cmd *cobra.Command, usingLocal bool) {
	if usingLocal {
		cmd.PrintErrln(mutedStyle.Render("(offline: served from the local store)"))
	}
}
