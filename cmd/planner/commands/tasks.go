package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskmaster/planner/internal/application/app"
	"github.com/taskmaster/planner/internal/application/stores"
	"github.com/taskmaster/planner/internal/domain/entities"
)

// NewTasksCommand creates the tasks command with subcommands
func NewTasksCommand() *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := stores.TaskFilter{}
			filter.Category, _ = cmd.Flags().GetString("category")
			filter.Search, _ = cmd.Flags().GetString("search")
			priority, _ := cmd.Flags().GetString("priority")
			filter.Priority = entities.Priority(priority)
			filter.Status, _ = cmd.Flags().GetString("status")

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.TaskStore.Fetch(ctx); err != nil {
					return err
				}
				a.TaskStore.SetFilter(filter)

				tasks := a.TaskStore.Filtered()
				fmt.Println(headerStyle.Render(row([]int{5, 4, 8, 17, 10, 5}, "ID", "", "PRIORITY", "DUE", "CATEGORY", "DONE", "TITLE")))
				for _, t := range tasks {
					fmt.Println(renderTask(t))
				}
				if len(tasks) == 0 {
					fmt.Println(mutedStyle.Render("No tasks"))
				}
				sourceNote(cmd, a.Tasks.UsingLocal())
				return nil
			})
		},
	}
	listCmd.Flags().String("category", "", "Only tasks of this category")
	listCmd.Flags().String("search", "", "Only tasks whose title or description contains this text")
	listCmd.Flags().String("priority", "", "Only tasks of this priority (high, medium, low)")
	listCmd.Flags().String("status", "", "Only active or completed tasks")

	addCmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := entities.Task{Title: args[0]}
			task.Description, _ = cmd.Flags().GetString("description")
			task.DueDate, _ = cmd.Flags().GetString("due")
			task.Time, _ = cmd.Flags().GetString("time")
			task.Category, _ = cmd.Flags().GetString("category")
			priority, _ := cmd.Flags().GetString("priority")
			task.Priority = entities.Priority(priority)

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				created, err := a.TaskStore.Add(ctx, task)
				if err != nil {
					return err
				}
				fmt.Println(renderTask(created))
				sourceNote(cmd, a.Tasks.UsingLocal())
				return nil
			})
		},
	}
	addCmd.Flags().String("description", "", "Task description")
	addCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().String("time", "", "Due time (HH:MM)")
	addCmd.Flags().String("category", "", "Category name")
	addCmd.Flags().String("priority", string(entities.PriorityMedium), "Priority (high, medium, low)")

	doneCmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completeTask(cmd, args[0], true)
		},
	}

	undoCmd := &cobra.Command{
		Use:   "undo ID",
		Short: "Mark a task as not completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completeTask(cmd, args[0], false)
		},
	}

	progressCmd := &cobra.Command{
		Use:   "progress ID PERCENT",
		Short: "Set the progress of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			progress, err := strconv.Atoi(args[1])
			if err != nil || progress < 0 || progress > 100 {
				return fmt.Errorf("progress must be a number between 0 and 100")
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				task, err := a.TaskStore.SetProgress(ctx, id, progress)
				if err != nil {
					return err
				}
				fmt.Println(renderTask(task))
				return nil
			})
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.TaskStore.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Printf("Task %d deleted\n", id)
				return nil
			})
		},
	}

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List task categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				categories, err := a.Categories.GetAll(ctx)
				if err != nil {
					return err
				}
				for _, c := range categories {
					fmt.Println(row([]int{5, 12}, strconv.Itoa(c.ID), c.Name, mutedStyle.Render(c.Description)))
				}
				return nil
			})
		},
	}

	tasksCmd.AddCommand(listCmd, addCmd, doneCmd, undoCmd, progressCmd, rmCmd, categoriesCmd)
	return tasksCmd
}

func completeTask(cmd *cobra.Command, arg string, completed bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		task, err := a.TaskStore.Complete(ctx, id, completed)
		if err != nil {
			return err
		}
		fmt.Println(renderTask(task))
		sourceNote(cmd, a.Tasks.UsingLocal())
		return nil
	})
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
