package commands

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
	"github.com/taskmaster/planner/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the planner mock API",
		Long:  "Serve the planner REST API from a JSON document kept in db.json or PostgreSQL",
		Run: func(cmd *cobra.Command, args []string) {
			runServer(cmd)
		},
	}
	cmd.Flags().Int("port", 0, "Port to listen on (overrides configuration)")
	cmd.Flags().Bool("no-latency", false, "Disable the simulated network latency")
	return cmd
}

func runServer(cmd *cobra.Command) {
	cfg := loadConfig(cmd)
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if noLatency, _ := cmd.Flags().GetBool("no-latency"); noLatency {
		cfg.Server.LatencyMin = 0
		cfg.Server.LatencyMax = 0
	}

	appLogger := newLogger(cfg)
	defer appLogger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, closeStore, err := app.OpenDocument(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to open document store", "error", err)
	}
	defer closeStore()

	srv, err := server.New(cfg, doc, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting planner API",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"store", cfg.Store.Driver,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Errorw("Graceful shutdown failed", "error", err)
		}
	}
}
