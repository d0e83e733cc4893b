package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/kmadrilejo/atelier/internal/cli/formatter"
	"github.com/kmadrilejo/atelier/internal/contract"
	"github.com/spf13/cobra"
)

func newOnboardCmd(app *App) *cobra.Command {
	var (
		clientID string
		projects []string
	)

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Onboard a client with one or more project setups",
		Long: `Onboard a client by scheduling a batch of projects together.

Each --project flag declares one setup as comma-separated key=value pairs:

  atelier onboard --client acme \
    --project "name=Brand Refresh,template=branding,start=2026-09-01" \
    --project "name=Acme Site,template=website,after=Brand Refresh"

Without --project flags the command runs an interactive wizard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if clientID == "" {
				return fmt.Errorf("--client is required")
			}

			var setups []contract.ProjectSetup
			if len(projects) > 0 {
				for _, raw := range projects {
					setup, err := parseSetupFlag(raw)
					if err != nil {
						return err
					}
					setups = append(setups, setup)
				}
			} else {
				if !app.interactive() {
					return fmt.Errorf("at least one --project is required in non-interactive mode")
				}
				var err error
				setups, err = runOnboardWizard(ctx, app)
				if err != nil {
					return err
				}
				if len(setups) == 0 {
					fmt.Println("No projects configured, nothing to do.")
					return nil
				}
			}

			result, err := app.Onboarding.Onboard(ctx, contract.OnboardRequest{
				ClientID: clientID,
				Setups:   setups,
			})
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatOnboardResult(result.Projects))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Client identifier")
	cmd.Flags().StringArrayVar(&projects, "project", nil, "Project setup as key=value pairs (repeatable)")

	return cmd
}

// parseSetupFlag parses one --project value of comma-separated key=value pairs.
func parseSetupFlag(raw string) (contract.ProjectSetup, error) {
	setup := contract.ProjectSetup{StartDate: time.Now().UTC()}

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return setup, fmt.Errorf("invalid --project entry %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "name":
			setup.Name = value
		case "template":
			setup.TemplateID = value
		case "start":
			d, err := time.Parse("2006-01-02", value)
			if err != nil {
				return setup, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", value)
			}
			setup.StartDate = d
		case "after":
			setup.StartAfterName = value
		case "manager":
			setup.ManagerID = value
		case "budget":
			b, err := strconv.ParseFloat(value, 64)
			if err != nil || b <= 0 {
				return setup, fmt.Errorf("invalid budget %q", value)
			}
			setup.Budget = &b
		case "currency":
			setup.Currency = value
		default:
			return setup, fmt.Errorf("unknown --project key %q", key)
		}
	}

	if setup.Name == "" || setup.TemplateID == "" {
		return setup, fmt.Errorf("--project needs at least name= and template=")
	}
	return setup, nil
}

// runOnboardWizard collects project setups through a sequence of huh forms,
// one per project, until the user declines to add another.
func runOnboardWizard(ctx context.Context, app *App) ([]contract.ProjectSetup, error) {
	templateIDs := app.Templates.List(ctx)
	if len(templateIDs) == 0 {
		return nil, fmt.Errorf("no templates registered")
	}

	options := make([]huh.Option[string], 0, len(templateIDs))
	for _, id := range templateIDs {
		options = append(options, huh.NewOption(id, id))
	}

	var setups []contract.ProjectSetup
	for {
		var (
			name, templateID, start, after, manager, budget string
			addAnother                                      bool
		)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Project Name").
					Value(&name).
					Validate(validateRequired),
				huh.NewSelect[string]().
					Title("Template").
					Options(options...).
					Value(&templateID),
				huh.NewInput().
					Title("Start Date (YYYY-MM-DD, blank for today)").
					Placeholder("2026-09-01").
					Value(&start).
					Validate(validateOptionalDate),
				huh.NewInput().
					Title("Start After (project name in this batch, optional)").
					Value(&after),
				huh.NewInput().
					Title("Manager (optional)").
					Value(&manager),
				huh.NewInput().
					Title("Budget (optional)").
					Value(&budget).
					Validate(validateOptionalFloat),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add another project?").
					Affirmative("Yes").
					Negative("No").
					Value(&addAnother),
			),
		).WithTheme(atelierHuhTheme()).WithShowHelp(false)

		if err := form.Run(); err != nil {
			return nil, err
		}

		setup := contract.ProjectSetup{
			Name:           name,
			TemplateID:     templateID,
			StartDate:      time.Now().UTC(),
			StartAfterName: after,
			ManagerID:      manager,
		}
		if start != "" {
			d, err := time.Parse("2006-01-02", start)
			if err != nil {
				return nil, err
			}
			setup.StartDate = d
		}
		if budget != "" {
			b, err := strconv.ParseFloat(budget, 64)
			if err != nil {
				return nil, err
			}
			setup.Budget = &b
		}
		setups = append(setups, setup)

		if !addAnother {
			return setups, nil
		}
	}
}
