package cli

import (
	"context"
	"fmt"

	"github.com/kmadrilejo/atelier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPortfolioCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Show the cross-project portfolio dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Insights.Portfolio(context.Background())
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No projects yet. Run 'atelier onboard' to create some.")
				return nil
			}

			fmt.Println(formatter.FormatPortfolio(entries))
			return nil
		},
	}
}
