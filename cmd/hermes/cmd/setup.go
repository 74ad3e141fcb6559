package cmd

import (
	"fmt"
	"log/slog"

	"github.com/aryan-pahwani/hermes/internal/app"
	"github.com/aryan-pahwani/hermes/internal/config"
	"github.com/aryan-pahwani/hermes/internal/enrich"
	"github.com/aryan-pahwani/hermes/internal/roster"
	"github.com/aryan-pahwani/hermes/internal/search"
	"github.com/aryan-pahwani/hermes/internal/session"
)

// buildApp assembles the search pipeline from configuration. The view
// is attached by the caller, which also decides interactive vs plain.
func buildApp(cfg *config.Config) (*app.App, *roster.Loader, error) {
	loader := newLoader(cfg)

	store := roster.NewEmptyStore()

	ranker := search.NewBleveRanker(search.RankerConfig{
		Weights:   cfg.Weights(),
		Threshold: cfg.Search.Threshold,
		Fuzziness: search.DefaultRankerConfig().Fuzziness,
	})

	resolver := search.NewResolver(store, ranker, search.ResolverConfig{
		MaxResults:     cfg.Search.MaxResults,
		CreatorPhrases: cfg.Search.CreatorPhrases,
		CreatorMarker:  cfg.Search.CreatorMarker,
	})

	annotator, err := buildAnnotator(cfg)
	if err != nil {
		return nil, nil, err
	}
	fetcher := enrich.NewFetcher(annotator, cfg.Enrichment.CacheSize)

	sessions := session.NewManager()

	return app.New(store, ranker, resolver, fetcher, sessions), loader, nil
}

func newLoader(cfg *config.Config) *roster.Loader {
	if cfg.Roster.URL != "" {
		return roster.NewURLLoader(cfg.Roster.URL)
	}
	return roster.NewFileLoader(cfg.Roster.Path)
}

// buildAnnotator picks the enrichment backend. Disabled enrichment and
// a missing API key both degrade to the no-op annotator so search
// keeps working.
func buildAnnotator(cfg *config.Config) (enrich.Annotator, error) {
	if !cfg.Enrichment.Enabled {
		return enrich.NoopAnnotator{}, nil
	}

	apiKey := cfg.APIKey()
	if apiKey == "" {
		slog.Warn("enrichment_disabled_no_api_key",
			slog.String("env", cfg.Enrichment.APIKeyEnv))
		return enrich.NoopAnnotator{}, nil
	}

	clientCfg := enrich.DefaultClientConfig(apiKey)
	clientCfg.BaseURL = cfg.Enrichment.BaseURL
	clientCfg.Model = cfg.Enrichment.Model
	clientCfg.MaxRetries = cfg.Enrichment.MaxRetries
	clientCfg.RetryDelay = cfg.Enrichment.RetryDelay.Std()
	clientCfg.Timeout = cfg.Enrichment.Timeout.Std()

	annotator, err := enrich.NewOpenAIAnnotator(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("build annotator: %w", err)
	}
	return annotator, nil
}
