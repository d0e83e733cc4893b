package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kmadrilejo/atelier/internal/cli"
	"github.com/kmadrilejo/atelier/internal/config"
	"github.com/kmadrilejo/atelier/internal/db"
	"github.com/kmadrilejo/atelier/internal/repository"
	"github.com/kmadrilejo/atelier/internal/service"
	"github.com/kmadrilejo/atelier/internal/template"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.NoColor {
		// termenv honors NO_COLOR, which disables all lipgloss styling.
		os.Setenv("NO_COLOR", "1")
	}

	// Seed the library with the builtin templates, then layer any template
	// files found in the configured directories on top.
	library := template.NewLibrary(template.BuiltinTemplates())
	for _, dir := range cfg.TemplateDirs {
		if err := loadTemplateDir(library, dir); err != nil {
			return err
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	notificationRepo := repository.NewSQLiteNotificationRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Templates:  service.NewTemplateService(library, observer),
		Onboarding: service.NewOnboardingService(library, projectRepo, uow, nil, observer),
		Projects:   service.NewProjectService(library, projectRepo, uow, observer),
		Insights:   service.NewInsightService(projectRepo, notificationRepo, observer),
	}

	// Detect interactive terminal for wizard and watch entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// loadTemplateDir registers every .yaml/.yml file in dir, overwriting builtins
// with the same id. A missing directory is skipped.
func loadTemplateDir(library *template.Library, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		file, err := template.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		if err := library.Register(file.ID, &file.Template, true); err != nil {
			return err
		}
	}
	return nil
}
