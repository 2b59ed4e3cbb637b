package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/adapters/calendar"
	"github.com/taskmaster/planner/internal/application/app"
)

// NewEventsCommand creates the events command with subcommands
func NewEventsCommand() *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Calendar events",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.EventStore.Fetch(ctx); err != nil {
					return err
				}
				events := a.EventStore.Events()
				if date != "" {
					events = a.EventStore.OnDate(date)
				}

				fmt.Println(headerStyle.Render(row([]int{5, 11, 6, 8}, "ID", "DATE", "TIME", "TYPE", "TITLE")))
				for _, e := range events {
					fmt.Println(row([]int{5, 11, 6, 8}, fmt.Sprint(e.ID), e.Date, e.Time, e.Type, e.Title))
				}
				if len(events) == 0 {
					fmt.Println(mutedStyle.Render("No events"))
				}
				return nil
			})
		},
	}
	listCmd.Flags().String("date", "", "Only events on this day (YYYY-MM-DD)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export calendar events as an iCalendar file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				events, err := a.Events.GetAll(ctx)
				if err != nil {
					return err
				}

				var w io.Writer = os.Stdout
				if out != "" && out != "-" {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", out, err)
					}
					defer f.Close()
					w = f
				}

				n, err := calendar.NewExporter(time.Local).Write(w, events)
				if err != nil {
					return err
				}
				if skipped := len(events) - n; skipped > 0 {
					a.Logger.Warnw("Events without a readable date were skipped", "count", skipped)
				}
				if w != os.Stdout {
					fmt.Printf("Exported %d events to %s\n", n, out)
				}
				return nil
			})
		},
	}
	exportCmd.Flags().String("out", "-", "Output file, - for standard output")

	eventsCmd.AddCommand(listCmd, exportCmd)
	return eventsCmd
}
