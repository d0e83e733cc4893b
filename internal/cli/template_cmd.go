package cli

import (
	"context"
	"fmt"

	"github.com/kmadrilejo/atelier/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage project templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateRegisterCmd(app),
		newTemplateRemoveCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ids := app.Templates.List(ctx)

			if len(ids) == 0 {
				fmt.Println("No templates registered.")
				return nil
			}

			prefixes := make(map[string]string, len(ids))
			for _, id := range ids {
				tpl, err := app.Templates.Get(ctx, id)
				if err != nil {
					return err
				}
				prefixes[id] = tpl.CodePrefix
			}

			fmt.Print(formatter.FormatTemplateList(ids, prefixes))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := app.Templates.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatTemplateShow(args[0], tpl))
			return nil
		},
	}
}

func newTemplateRegisterCmd(app *App) *cobra.Command {
	var (
		file      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a template from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}

			id, err := app.Templates.RegisterFile(context.Background(), file, overwrite)
			if err != nil {
				return err
			}

			fmt.Printf("Registered template %s\n", formatter.Bold(id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to template YAML file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing template with the same id")

	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a registered template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.Unregister(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed template %s\n", formatter.Bold(args[0]))
			return nil
		},
	}
}
