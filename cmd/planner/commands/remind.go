package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
)

// NewRemindCommand creates the remind command
func NewRemindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Create task reminders",
		Long: `Sweep the tasks and create reminder notifications, emails and chat messages.
With --schedule the sweep repeats on a cron schedule until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, _ := cmd.Flags().GetString("schedule")
			watch, _ := cmd.Flags().GetBool("watch")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if schedule == "" && !watch {
					created, err := a.NotificationStore(ctx).CreateReminders(ctx)
					if err != nil {
						fmt.Println(errorStyle.Render("Reminder sweep failed"))
						return err
					}
					for _, n := range created {
						fmt.Println(renderNotification(n))
					}
					return nil
				}

				scheduler, err := a.Scheduler(ctx, schedule)
				if err != nil {
					return err
				}

				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				fmt.Println(mutedStyle.Render("Reminder scheduler running, press Ctrl+C to stop"))
				scheduler.Start(ctx)
				return nil
			})
		},
	}

	cmd.Flags().String("schedule", "", "Cron schedule for repeated sweeps, e.g. \"0 8 * * *\"")
	cmd.Flags().Bool("watch", false, "Repeat on the configured schedule")
	return cmd
}
