package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aryan-pahwani/hermes/internal/config"
	"github.com/aryan-pahwani/hermes/internal/ui"
)

// newSearchCmd creates the one-shot search command. It renders ranked
// results as plain text, then waits for enrichment to settle so the
// annotation lines make it into piped output too.
func newSearchCmd() *cobra.Command {
	var noEnrich bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a single query and print results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd.Context(), query, noEnrich)
		},
	}

	cmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "Skip AI enrichment")

	return cmd
}

func runSearch(ctx context.Context, query string, noEnrich bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if noEnrich {
		cfg.Enrichment.Enabled = false
	}

	application, loader, err := buildApp(cfg)
	if err != nil {
		return err
	}

	view := ui.NewPlainView(ui.Config{Output: os.Stdout})
	application.SetView(view)

	if err := application.Load(ctx, loader); err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	done := application.Search(ctx, query)
	<-done
	return nil
}
