package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/cmd/planner/commands"
)

// @title Planner mock API
// @version 1.0
// @description REST API backing the study planner when it runs online

// @host localhost:3000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /login.

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Study planner",
		Long: `Planner keeps tasks, calendar events, notifications and stats for a student.
It talks to the planner API when it is reachable and works from a local store otherwise.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("offline", false, "Never contact the API")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides configuration)")

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewTasksCommand())
	rootCmd.AddCommand(commands.NewEventsCommand())
	rootCmd.AddCommand(commands.NewScheduleCommand())
	rootCmd.AddCommand(commands.NewNotificationsCommand())
	rootCmd.AddCommand(commands.NewRemindCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewTelegramCommand())
	rootCmd.AddCommand(commands.NewAICommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
