// Package cmd provides the CLI commands for hermes.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aryan-pahwani/hermes/internal/app"
	"github.com/aryan-pahwani/hermes/internal/config"
	"github.com/aryan-pahwani/hermes/internal/logging"
	"github.com/aryan-pahwani/hermes/internal/roster"
	"github.com/aryan-pahwani/hermes/internal/ui"
	"github.com/aryan-pahwani/hermes/pkg/version"
)

var (
	configPath string
	debugMode  bool
	plainMode  bool
	noColor    bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the hermes CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hermes",
		Short: "Fuzzy people search over a community roster",
		Long: `Hermes is a directory search widget over a community member roster.

Queries are matched fuzzily against names, titles, projects, and
self-descriptions; the top matches render immediately and are then
enriched in the background with one-sentence AI descriptions.

Run 'hermes' in a terminal for the interactive widget, or
'hermes search <query>' for one-shot plain output.`,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context())
		},
	}

	cmd.SetVersionTemplate("hermes version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&plainMode, "plain", false, "Force plain text output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if loggingCleanup != nil {
			loggingCleanup()
		}
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	// Local .env files carry the API key during development. A missing
	// file is the normal case.
	_ = godotenv.Load()

	ctx := context.Background()
	return NewRootCmd().ExecuteContext(ctx)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logCfg := logging.DefaultConfig()
	if debugMode {
		logCfg.Level = "debug"
	}
	_, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	loggingCleanup = cleanup
	return nil
}

// runInteractive starts the full-screen search widget.
func runInteractive(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if debugMode {
		cfg.LogLevel = "debug"
	}

	application, loader, err := buildApp(cfg)
	if err != nil {
		return err
	}

	viewCfg := ui.Config{
		Output:     os.Stdout,
		ForcePlain: plainMode || cfg.UI.Plain,
		NoColor:    noColor || cfg.UI.NoColor,
	}

	if !ui.UseTUI(viewCfg) {
		return fmt.Errorf("interactive mode needs a terminal; use 'hermes search <query>' instead")
	}

	widget := ui.NewWidget(viewCfg, func(query string) {
		application.Search(ctx, query)
	})
	application.SetView(widget)

	// A failed load is surfaced once here; the widget still runs and
	// every query degrades to "no results" over the empty store.
	if err := application.Load(ctx, loader); err != nil {
		slog.Error("roster_load_failed", slog.String("error", err.Error()))
	}

	watcher, err := startWatcher(ctx, cfg, loader, application)
	if err != nil {
		slog.Warn("watcher_unavailable", slog.String("error", err.Error()))
	} else if watcher != nil {
		defer func() { _ = watcher.Stop() }()
	}

	return widget.Run()
}

// startWatcher wires roster hot-reload when configured for a local file.
func startWatcher(ctx context.Context, cfg *config.Config, loader *roster.Loader, application *app.App) (*roster.Watcher, error) {
	if !cfg.Roster.Watch || loader.Path() == "" {
		return nil, nil
	}
	watcher, err := roster.NewWatcher(loader, application.Store(), func(records []roster.Record) {
		application.Reindex(ctx, records)
	})
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(ctx); err != nil {
		return nil, err
	}
	return watcher, nil
}
