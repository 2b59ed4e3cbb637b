package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
	"github.com/taskmaster/planner/internal/domain/entities"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show productivity stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				stats, err := a.Stats.Get(ctx)
				if err != nil {
					return err
				}
				printStats(stats)
				return nil
			})
		},
	}

	recomputeCmd := &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild the counters from the task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				tasks, err := a.Tasks.GetAll(ctx)
				if err != nil {
					return err
				}
				stats, err := a.Stats.Recompute(ctx, tasks)
				if err != nil {
					return err
				}
				printStats(stats)
				return nil
			})
		},
	}

	statsCmd.AddCommand(recomputeCmd)
	return statsCmd
}

func printStats(s entities.Stats) {
	fmt.Println(headerStyle.Render("Stats"))
	fmt.Println(row([]int{18}, "Active tasks", fmt.Sprint(s.ActiveTasks)))
	fmt.Println(row([]int{18}, "Urgent tasks", fmt.Sprint(s.UrgentTasks)))
	fmt.Println(row([]int{18}, "Completed today", fmt.Sprint(s.CompletedToday)))
	fmt.Println(row([]int{18}, "Productivity", fmt.Sprintf("%d%%", s.Productivity)))

	if len(s.ProductivityData) > 0 {
		days := make([]string, len(s.ProductivityData))
		for i, v := range s.ProductivityData {
			days[i] = fmt.Sprint(v)
		}
		fmt.Println(row([]int{18}, "Last days", mutedStyle.Render(strings.Join(days, " "))))
	}
}
