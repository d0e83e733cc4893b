package cli

import (
	"context"
	"fmt"

	"github.com/kmadrilejo/atelier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTrackerCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "tracker PROJECT_ID",
		Short: "Show a project's timeline, alerts and sprint statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				if !app.interactive() {
					return fmt.Errorf("--watch needs an interactive terminal")
				}
				return runTrackerTUI(app, args[0])
			}

			view, err := app.Insights.Tracker(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatTracker(view))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep the tracker open and refresh on demand")

	return cmd
}
