package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryan-pahwani/hermes/internal/enrich"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.4, cfg.Search.Threshold)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, enrich.DefaultBaseURL, cfg.Enrichment.BaseURL)
	assert.Equal(t, "GROQ_API_KEY", cfg.Enrichment.APIKeyEnv)
	assert.InDelta(t, 1.0, cfg.Weights().Sum(), 1e-9)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hermes.yaml")
	yaml := `
roster:
  path: people.csv
  watch: true
search:
  threshold: 0.3
  max_results: 3
enrichment:
  model: llama-3.3-70b-versatile
  timeout: 10s
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "people.csv", cfg.Roster.Path)
	assert.True(t, cfg.Roster.Watch)
	assert.Equal(t, 0.3, cfg.Search.Threshold)
	assert.Equal(t, 3, cfg.Search.MaxResults)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Enrichment.Model)
	assert.Equal(t, 10*time.Second, cfg.Enrichment.Timeout.Std())
	assert.Equal(t, "debug", cfg.LogLevel)

	// Untouched sections keep their defaults.
	assert.InDelta(t, 0.4, cfg.Search.NameWeight, 1e-9)
	assert.Equal(t, enrich.DefaultBaseURL, cfg.Enrichment.BaseURL)
}

func TestLoad_ExplicitMissingFileIsError(t *testing.T) {
	_, err := Load("/nonexistent/hermes.yaml")
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HERMES_ROSTER_URL", "https://example.com/roster.csv")
	t.Setenv("HERMES_THRESHOLD", "0.25")
	t.Setenv("HERMES_MAX_RESULTS", "2")
	t.Setenv("HERMES_ENRICH_DISABLED", "1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/roster.csv", cfg.Roster.URL)
	assert.Equal(t, 0.25, cfg.Search.Threshold)
	assert.Equal(t, 2, cfg.Search.MaxResults)
	assert.False(t, cfg.Enrichment.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"no roster source", func(c *Config) { c.Roster.Path = ""; c.Roster.URL = "" }, true},
		{"threshold too high", func(c *Config) { c.Search.Threshold = 1.5 }, true},
		{"threshold negative", func(c *Config) { c.Search.Threshold = -0.1 }, true},
		{"zero max results", func(c *Config) { c.Search.MaxResults = 0 }, true},
		{"weights off balance", func(c *Config) { c.Search.NameWeight = 0.9 }, true},
		{"enrichment without model", func(c *Config) { c.Enrichment.Model = "" }, true},
		{"disabled enrichment skips model check", func(c *Config) {
			c.Enrichment.Enabled = false
			c.Enrichment.Model = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	cfg := Default()
	t.Setenv("GROQ_API_KEY", "gsk-test")
	assert.Equal(t, "gsk-test", cfg.APIKey())

	cfg.Enrichment.APIKeyEnv = ""
	assert.Empty(t, cfg.APIKey())
}
