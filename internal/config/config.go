// Package config loads the hermes configuration from YAML with
// environment variable overrides. Precedence, lowest to highest:
//
//  1. Built-in defaults
//  2. Config file (--config, ./hermes.yaml, ~/.config/hermes/config.yaml)
//  3. Environment variables (HERMES_*)
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aryan-pahwani/hermes/internal/enrich"
	"github.com/aryan-pahwani/hermes/internal/search"
)

// Duration decodes YAML values like "10s" or "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = Duration(time.Duration(n))
	return nil
}

// Std converts to the standard library representation.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the complete hermes configuration.
type Config struct {
	Roster     RosterConfig     `yaml:"roster"`
	Search     SearchConfig     `yaml:"search"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	UI         UIConfig         `yaml:"ui"`
	LogLevel   string           `yaml:"log_level"`
}

// RosterConfig configures where the member roster comes from.
// URL takes precedence over Path when both are set.
type RosterConfig struct {
	// URL fetches the roster CSV over HTTP at startup.
	URL string `yaml:"url"`
	// Path reads the roster CSV from the local filesystem.
	Path string `yaml:"path"`
	// Watch reloads and reindexes when the local file changes.
	// Only meaningful with Path.
	Watch bool `yaml:"watch"`
}

// SearchConfig tunes the fuzzy ranker and resolver.
type SearchConfig struct {
	// Threshold is the worst acceptable match distance (0.0-1.0,
	// lower is stricter). Matches scoring above it are dropped.
	Threshold float64 `yaml:"threshold"`

	// MaxResults bounds the result set handed to the view.
	MaxResults int `yaml:"max_results"`

	// Field weights for match scoring. Must sum to 1.0.
	NameWeight    float64 `yaml:"name_weight"`
	TitleWeight   float64 `yaml:"title_weight"`
	ProjectWeight float64 `yaml:"project_weight"`
	WhoamiWeight  float64 `yaml:"whoami_weight"`

	// CreatorPhrases trigger the creator override when the query
	// contains any of them.
	CreatorPhrases []string `yaml:"creator_phrases"`

	// CreatorMarker is matched against record names (case-insensitive
	// substring) to find the creator record.
	CreatorMarker string `yaml:"creator_marker"`
}

// EnrichmentConfig configures the LLM annotation pass.
type EnrichmentConfig struct {
	// Enabled toggles enrichment entirely. Search works without it.
	Enabled bool `yaml:"enabled"`

	// BaseURL is an OpenAI-compatible chat completions endpoint.
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`

	MaxRetries int      `yaml:"max_retries"`
	RetryDelay Duration `yaml:"retry_delay"`
	Timeout    Duration `yaml:"timeout"`
	CacheSize  int      `yaml:"cache_size"`
}

// UIConfig configures the view layer.
type UIConfig struct {
	// Plain forces the non-interactive text view even on a TTY.
	Plain bool `yaml:"plain"`
	// NoColor disables ANSI styling.
	NoColor bool `yaml:"no_color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	weights := search.DefaultWeights()
	rcfg := search.DefaultResolverConfig()
	ecfg := enrich.DefaultClientConfig("")
	return &Config{
		Roster: RosterConfig{
			Path: "roster.csv",
		},
		Search: SearchConfig{
			Threshold:      search.DefaultRankerConfig().Threshold,
			MaxResults:     rcfg.MaxResults,
			NameWeight:     weights.Name,
			TitleWeight:    weights.Title,
			ProjectWeight:  weights.CurrentProject,
			WhoamiWeight:   weights.SelfDescription,
			CreatorPhrases: rcfg.CreatorPhrases,
			CreatorMarker:  rcfg.CreatorMarker,
		},
		Enrichment: EnrichmentConfig{
			Enabled:    true,
			BaseURL:    enrich.DefaultBaseURL,
			Model:      enrich.DefaultModel,
			APIKeyEnv:  "GROQ_API_KEY",
			MaxRetries: ecfg.MaxRetries,
			RetryDelay: Duration(ecfg.RetryDelay),
			Timeout:    Duration(ecfg.Timeout),
			CacheSize:  enrich.DefaultCacheSize,
		},
		LogLevel: "info",
	}
}

// Load builds the effective configuration. path may be empty, in which
// case the standard locations are probed; a missing file is not an
// error, env overrides still apply on top of defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved, explicit := resolvePath(path)
	if resolved != "" {
		data, err := os.ReadFile(resolved)
		if err != nil {
			if explicit {
				return nil, fmt.Errorf("read config %s: %w", resolved, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath picks the config file to read. Returns the path and
// whether it was explicitly requested (missing explicit files are
// errors, missing probed ones are not).
func resolvePath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if _, err := os.Stat("hermes.yaml"); err == nil {
		return "hermes.yaml", false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	candidate := filepath.Join(home, ".config", "hermes", "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate, false
	}
	return "", false
}

// applyEnv layers HERMES_* environment variables over cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("HERMES_ROSTER_URL"); v != "" {
		cfg.Roster.URL = v
	}
	if v := os.Getenv("HERMES_ROSTER_PATH"); v != "" {
		cfg.Roster.Path = v
	}
	if v := os.Getenv("HERMES_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.Threshold = f
		}
	}
	if v := os.Getenv("HERMES_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxResults = n
		}
	}
	if v := os.Getenv("HERMES_ENRICH_BASE_URL"); v != "" {
		cfg.Enrichment.BaseURL = v
	}
	if v := os.Getenv("HERMES_ENRICH_MODEL"); v != "" {
		cfg.Enrichment.Model = v
	}
	if v := os.Getenv("HERMES_ENRICH_DISABLED"); v == "1" || v == "true" {
		cfg.Enrichment.Enabled = false
	}
	if v := os.Getenv("HERMES_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks invariants that would otherwise surface as confusing
// runtime behavior.
func (c *Config) Validate() error {
	if c.Roster.URL == "" && c.Roster.Path == "" {
		return fmt.Errorf("roster: either url or path must be set")
	}
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search: threshold must be in [0.0, 1.0], got %v", c.Search.Threshold)
	}
	if c.Search.MaxResults < 1 {
		return fmt.Errorf("search: max_results must be at least 1, got %d", c.Search.MaxResults)
	}
	sum := c.Search.NameWeight + c.Search.TitleWeight + c.Search.ProjectWeight + c.Search.WhoamiWeight
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("search: field weights must sum to 1.0, got %v", sum)
	}
	if c.Enrichment.Enabled {
		if c.Enrichment.Model == "" {
			return fmt.Errorf("enrichment: model must be set")
		}
		if c.Enrichment.CacheSize < 1 {
			return fmt.Errorf("enrichment: cache_size must be at least 1, got %d", c.Enrichment.CacheSize)
		}
	}
	return nil
}

// Weights converts the flat YAML weight fields to the ranker's form.
func (c *Config) Weights() search.Weights {
	return search.Weights{
		Name:            c.Search.NameWeight,
		Title:           c.Search.TitleWeight,
		CurrentProject:  c.Search.ProjectWeight,
		SelfDescription: c.Search.WhoamiWeight,
	}
}

// APIKey reads the enrichment API key from the configured env var.
func (c *Config) APIKey() string {
	if c.Enrichment.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Enrichment.APIKeyEnv)
}
