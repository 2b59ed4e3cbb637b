package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
	"github.com/taskmaster/planner/internal/domain/entities"
)

// NewScheduleCommand creates the schedule command with subcommands
func NewScheduleCommand() *cobra.Command {
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Weekly class timetable",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, _ := cmd.Flags().GetString("day")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.ScheduleStore.FetchClasses(ctx); err != nil {
					return err
				}
				if err := a.ScheduleStore.FetchSubjects(ctx); err != nil {
					return err
				}

				classes := a.ScheduleStore.Classes()
				if day != "" {
					classes = a.ScheduleStore.ClassesByDay(day)
				}

				fmt.Println(headerStyle.Render(row([]int{5, 11, 14, 10, 12}, "ID", "DAY", "TIME", "TYPE", "LOCATION", "SUBJECT")))
				for _, c := range classes {
					fmt.Println(renderClass(c, a.ScheduleStore.SubjectColor(c.SubjectID)))
				}
				if len(classes) == 0 {
					fmt.Println(mutedStyle.Render("No classes"))
				}
				return nil
			})
		},
	}
	listCmd.Flags().String("day", "", "Only classes on this weekday, e.g. Monday")

	addCmd := &cobra.Command{
		Use:   "add SUBJECT",
		Short: "Add a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class := entities.Class{Subject: args[0]}
			class.Day, _ = cmd.Flags().GetString("day")
			class.Time, _ = cmd.Flags().GetString("time")
			class.Type, _ = cmd.Flags().GetString("type")
			class.Location, _ = cmd.Flags().GetString("location")
			class.SubjectID, _ = cmd.Flags().GetInt("subject-id")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				created, err := a.ScheduleStore.AddClass(ctx, class)
				if err != nil {
					return err
				}
				fmt.Println(renderClass(created, ""))
				return nil
			})
		},
	}
	addCmd.Flags().String("day", "", "Weekday of the class")
	addCmd.Flags().String("time", "", "Time range, e.g. \"09:00 - 10:30\"")
	addCmd.Flags().String("type", "Lecture", "Kind of class (Lecture, Seminar, Lab)")
	addCmd.Flags().String("location", "", "Room or building")
	addCmd.Flags().Int("subject-id", 0, "Category id of the subject")
	addCmd.MarkFlagRequired("day")
	addCmd.MarkFlagRequired("time")

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.ScheduleStore.DeleteClass(ctx, id)
			})
		},
	}

	scheduleCmd.AddCommand(listCmd, addCmd, rmCmd)
	return scheduleCmd
}

func renderClass(c entities.Class, color string) string {
	subject := c.Subject
	if color != "" {
		subject += " " + mutedStyle.Render("("+color+")")
	}
	return row([]int{5, 11, 14, 10, 12}, fmt.Sprint(c.ID), c.Day, c.Time, c.Type, c.Location, subject)
}
