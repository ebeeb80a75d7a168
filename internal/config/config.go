package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Wiki    WikiConfig    `yaml:"wiki"`
	Cache   CacheConfig   `yaml:"cache"`
	Recruit RecruitConfig `yaml:"recruit"`
}

type WikiConfig struct {
	BaseURL           string  `yaml:"base_url" env:"DOCTAH_WIKI_BASE_URL"`
	UserAgent         string  `yaml:"user_agent" env:"DOCTAH_WIKI_USER_AGENT"`
	TimeoutSeconds    int     `yaml:"timeout_seconds" env:"DOCTAH_WIKI_TIMEOUT_SECONDS"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"DOCTAH_WIKI_REQUESTS_PER_SECOND"`
}

// CacheConfig controls the catalog snapshot cache. An empty DSN disables
// caching; "sqlite://" and "postgres://" schemes select the backend.
type CacheConfig struct {
	DSN        string `yaml:"dsn" env:"DOCTAH_CACHE_DSN"`
	TTLMinutes int    `yaml:"ttl_minutes" env:"DOCTAH_CACHE_TTL_MINUTES"`
}

type RecruitConfig struct {
	// VocabularyFile optionally replaces the built-in recruit vocabulary.
	VocabularyFile string `yaml:"vocabulary_file" env:"DOCTAH_VOCABULARY_FILE"`
	SuggestLimit   int    `yaml:"suggest_limit" env:"DOCTAH_SUGGEST_LIMIT"`
}

func Default() *Config {
	return &Config{
		Wiki: WikiConfig{
			BaseURL:           "https://prts.wiki",
			UserAgent:         "doctah-mcp/1.0 (https://github.com/TonybotNi/doctah-mcp)",
			TimeoutSeconds:    30,
			RequestsPerSecond: 4,
		},
		Cache: CacheConfig{
			TTLMinutes: 30,
		},
		Recruit: RecruitConfig{
			SuggestLimit: 10,
		},
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist, then applies environment overrides. Zero-valued fields take
// their defaults either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("loading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if strings.TrimSpace(cfg.Wiki.BaseURL) == "" {
		cfg.Wiki.BaseURL = def.Wiki.BaseURL
	}
	if strings.TrimSpace(cfg.Wiki.UserAgent) == "" {
		cfg.Wiki.UserAgent = def.Wiki.UserAgent
	}
	if cfg.Wiki.TimeoutSeconds <= 0 {
		cfg.Wiki.TimeoutSeconds = def.Wiki.TimeoutSeconds
	}
	if cfg.Wiki.RequestsPerSecond <= 0 {
		cfg.Wiki.RequestsPerSecond = def.Wiki.RequestsPerSecond
	}
	if cfg.Cache.TTLMinutes <= 0 {
		cfg.Cache.TTLMinutes = def.Cache.TTLMinutes
	}
	if cfg.Recruit.SuggestLimit <= 0 {
		cfg.Recruit.SuggestLimit = def.Recruit.SuggestLimit
	}
}

func validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.Wiki.BaseURL, "http://") && !strings.HasPrefix(cfg.Wiki.BaseURL, "https://") {
		return fmt.Errorf("wiki base_url must be an http(s) URL: %s", cfg.Wiki.BaseURL)
	}
	if dsn := strings.TrimSpace(cfg.Cache.DSN); dsn != "" {
		if !strings.HasPrefix(dsn, "sqlite://") && !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
			return fmt.Errorf("unsupported cache DSN scheme: %s", dsn)
		}
	}
	return nil
}

// Timeout returns the wiki request timeout as a duration.
func (w WikiConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// TTL returns the cache freshness window as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}
