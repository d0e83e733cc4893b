package cli

import (
	"github.com/kmadrilejo/atelier/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Templates  service.TemplateService
	Onboarding service.OnboardingService
	Projects   service.ProjectService
	Insights   service.InsightService

	// IsInteractive reports whether stdin is an interactive terminal;
	// wizard-style commands fall back to flags when it returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "atelier" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "atelier",
		Short: "Client project scheduler and tracker",
	}

	root.AddCommand(
		newTemplateCmd(app),
		newOnboardCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newTrackerCmd(app),
		newPortfolioCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
