package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/kmadrilejo/atelier/internal/cli/formatter"
	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Update tasks within a project",
	}

	cmd.AddCommand(newTaskUpdateCmd(app))

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var (
		status   string
		assignee string
		priority string
		due      string
		start    string
		logged   float64
		points   float64
		sprintID string
	)

	cmd := &cobra.Command{
		Use:   "update PROJECT_ID TASK_ID",
		Short: "Apply a partial update to one task",
		Long: `Apply a partial update to one task. Marking a task done may
auto-start its successors; moving it to in_progress records a start
confirmation in the project tracker.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit := contract.TaskEdit{ID: args[1]}

			if cmd.Flags().Changed("status") {
				s := domain.TaskStatus(status)
				edit.Status = &s
			}
			if cmd.Flags().Changed("assignee") {
				edit.AssigneeID = &assignee
			}
			if cmd.Flags().Changed("priority") {
				p := domain.TaskPriority(priority)
				edit.Priority = &p
			}
			if cmd.Flags().Changed("due") {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: use YYYY-MM-DD", due)
				}
				edit.DueDate = &d
			}
			if cmd.Flags().Changed("start") {
				d, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: use YYYY-MM-DD", start)
				}
				edit.StartDate = &d
			}
			if cmd.Flags().Changed("logged-hours") {
				edit.LoggedHours = &logged
			}
			if cmd.Flags().Changed("points") {
				edit.StoryPoints = &points
			}
			if cmd.Flags().Changed("sprint") {
				edit.SprintID = &sprintID
			}

			project, err := app.Projects.Update(context.Background(), args[0], contract.ProjectUpdate{
				Tasks: []contract.TaskEdit{edit},
			})
			if err != nil {
				return err
			}

			task := project.TaskByID(args[1])
			if task == nil {
				return fmt.Errorf("task %s not found in project %s", args[1], args[0])
			}

			fmt.Printf("%s %s\n", formatter.Bold(task.Name), formatter.TaskStatusPill(task.Status))
			if task.DueDate != nil {
				fmt.Printf("  due %s\n", task.DueDate.Format("Jan 2, 2006"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (todo, in_progress, review, done)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee id")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, medium, high, critical)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&logged, "logged-hours", 0, "Logged hours")
	cmd.Flags().Float64Var(&points, "points", 0, "Story points")
	cmd.Flags().StringVar(&sprintID, "sprint", "", "Sprint id (empty to unassign)")

	return cmd
}
