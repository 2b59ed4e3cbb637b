package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
	"github.com/taskmaster/planner/internal/application/services"
)

// NewAICommand creates the ai command with subcommands
func NewAICommand() *cobra.Command {
	aiCmd := &cobra.Command{
		Use:   "ai",
		Short: "Study assistant",
	}

	suggestionsCmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Show general productivity tips",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				suggestions, err := a.AI.Suggestions(ctx)
				if err != nil {
					return err
				}
				for _, s := range suggestions {
					fmt.Println(row([]int{14}, mutedStyle.Render(s.Type), s.Text))
				}
				return nil
			})
		},
	}

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Generate recommendations from the task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				tasks, err := a.Tasks.GetAll(ctx)
				if err != nil {
					return err
				}
				recs, err := a.AI.GenerateRecommendations(ctx, a.User(ctx).ID, tasks)
				if err != nil {
					return err
				}
				for _, r := range recs {
					fmt.Println(row([]int{5, 14}, fmt.Sprint(r.ID), mutedStyle.Render(string(r.Type)), r.Text))
				}
				return nil
			})
		},
	}

	askCmd := &cobra.Command{
		Use:   "ask [MESSAGE]",
		Short: "Chat with the assistant",
		Long:  "Send one message, or start an interactive session when no message is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				userID := a.User(ctx).ID
				session := services.NewSessionID()

				if len(args) > 0 {
					reply, err := a.AI.Reply(ctx, userID, strings.Join(args, " "), session)
					if err != nil {
						return err
					}
					fmt.Println(reply)
					return nil
				}

				scanner := bufio.NewScanner(os.Stdin)
				fmt.Print("> ")
				for scanner.Scan() {
					message := strings.TrimSpace(scanner.Text())
					if message == "" {
						fmt.Print("> ")
						continue
					}
					reply, err := a.AI.Reply(ctx, userID, message, session)
					if err != nil {
						fmt.Println(errorStyle.Render(err.Error()))
					} else {
						fmt.Println(headerStyle.Render(reply))
					}
					fmt.Print("> ")
				}
				return scanner.Err()
			})
		},
	}

	aiCmd.AddCommand(suggestionsCmd, recommendCmd, askCmd)
	return aiCmd
}
