package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
)

// NewNotificationsCommand creates the notifications command with subcommands
func NewNotificationsCommand() *cobra.Command {
	notificationsCmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Short:   "Notifications of the signed-in user",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			unreadOnly, _ := cmd.Flags().GetBool("unread")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				store := a.NotificationStore(ctx)
				if err := store.Fetch(ctx); err != nil {
					return err
				}

				items := store.Notifications()
				if unreadOnly {
					items = store.Unread()
				}
				fmt.Println(headerStyle.Render(fmt.Sprintf("Notifications (%d unread)", store.UnreadCount())))
				for _, n := range items {
					fmt.Println(renderNotification(n))
				}
				return nil
			})
		},
	}
	listCmd.Flags().Bool("unread", false, "Only unread notifications")

	readCmd := &cobra.Command{
		Use:   "read ID",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.NotificationStore(ctx).MarkAsRead(ctx, id)
			})
		},
	}

	readAllCmd := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.NotificationStore(ctx).MarkAllAsRead(ctx); err != nil {
					return err
				}
				fmt.Println("All notifications marked as read")
				return nil
			})
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.NotificationStore(ctx).Delete(ctx, id)
			})
		},
	}

	notificationsCmd.AddCommand(listCmd, readCmd, readAllCmd, rmCmd)
	return notificationsCmd
}
