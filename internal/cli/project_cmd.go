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

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect and update projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newMilestoneCompleteCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects yet. Run 'atelier onboard' to create some.")
				return nil
			}

			fmt.Println(formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT_ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := app.Projects.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatProjectShow(project))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var (
		name       string
		status     string
		start      string
		templateID string
		manager    string
		budget     float64
		currency   string
	)

	cmd := &cobra.Command{
		Use:   "update PROJECT_ID",
		Short: "Update project fields, shift the schedule, or reapply a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update contract.ProjectUpdate

			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("status") {
				s := domain.ProjectStatus(status)
				update.Status = &s
			}
			if cmd.Flags().Changed("start") {
				d, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: use YYYY-MM-DD", start)
				}
				update.StartDate = &d
			}
			if cmd.Flags().Changed("template") {
				update.TemplateID = &templateID
			}
			if cmd.Flags().Changed("manager") {
				update.ManagerID = &manager
			}
			if cmd.Flags().Changed("budget") {
				update.Budget = &budget
			}
			if cmd.Flags().Changed("currency") {
				update.Currency = &currency
			}

			project, err := app.Projects.Update(context.Background(), args[0], update)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatProjectShow(project))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&status, "status", "", "New status (planning, in_progress, on_hold, completed, cancelled)")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD); shifts the whole schedule")
	cmd.Flags().StringVar(&templateID, "template", "", "Template id; rebuilds the task plan")
	cmd.Flags().StringVar(&manager, "manager", "", "New manager id")
	cmd.Flags().Float64Var(&budget, "budget", 0, "New budget amount")
	cmd.Flags().StringVar(&currency, "currency", "", "Budget currency code")

	return cmd
}

func newMilestoneCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "milestone-done PROJECT_ID MILESTONE_ID",
		Short: "Mark a milestone as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed := true
			_, err := app.Projects.Update(context.Background(), args[0], contract.ProjectUpdate{
				Milestones: []contract.MilestoneEdit{
					{ID: args[1], Completed: &completed},
				},
			})
			if err != nil {
				return err
			}

			fmt.Println("Milestone completed.")
			return nil
		},
	}
}
