package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
	"github.com/taskmaster/planner/internal/domain/entities"
)

// NewTelegramCommand creates the telegram command with subcommands
func NewTelegramCommand() *cobra.Command {
	telegramCmd := &cobra.Command{
		Use:   "telegram",
		Short: "Telegram notification channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				cfg, err := a.Telegram.GetConfig(ctx, a.User(ctx).ID)
				if err != nil {
					return err
				}
				printTelegram(cfg)
				return nil
			})
		},
	}

	connectCmd := &cobra.Command{
		Use:   "connect CODE",
		Short: "Link the chat that sent CODE to the bot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				cfg, err := a.Telegram.Connect(ctx, a.User(ctx).ID, args[0])
				if err != nil {
					return err
				}
				printTelegram(&cfg)
				return nil
			})
		},
	}

	disconnectCmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Unlink the chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Telegram.Disconnect(ctx, a.User(ctx).ID); err != nil {
					return err
				}
				fmt.Println("Telegram disconnected")
				return nil
			})
		},
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Choose which notifications reach the chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := entities.TelegramSettings{}
			settings.Tasks, _ = cmd.Flags().GetBool("tasks")
			settings.Events, _ = cmd.Flags().GetBool("events")
			settings.Important, _ = cmd.Flags().GetBool("important")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				cfg, err := a.Telegram.UpdateSettings(ctx, a.User(ctx).ID, settings)
				if err != nil {
					return err
				}
				printTelegram(&cfg)
				return nil
			})
		},
	}
	settingsCmd.Flags().Bool("tasks", true, "Task reminders")
	settingsCmd.Flags().Bool("events", true, "Calendar events")
	settingsCmd.Flags().Bool("important", false, "Important notifications only")

	telegramCmd.AddCommand(connectCmd, disconnectCmd, settingsCmd)
	return telegramCmd
}

func printTelegram(cfg *entities.TelegramConfig) {
	if cfg == nil || !cfg.Connected {
		fmt.Println(mutedStyle.Render("Telegram is not connected"))
		return
	}
	fmt.Println(headerStyle.Render("Telegram " + cfg.Username))
	fmt.Println(row([]int{10}, "Chat", cfg.ChatID))
	fmt.Println(row([]int{10}, "Tasks", fmt.Sprint(cfg.Settings.Tasks)))
	fmt.Println(row([]int{10}, "Events", fmt.Sprint(cfg.Settings.Events)))
	fmt.Println(row([]int{10}, "Important", fmt.Sprint(cfg.Settings.Important)))
}
