package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Drafts   DraftsConfig   `yaml:"drafts"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// UpstreamConfig describes the logistics backend this service talks to.
type UpstreamConfig struct {
	BaseURL        string            `yaml:"base_url"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"` // Ignored by YAML parser
	HTTPProxy      string            `yaml:"http_proxy"`
	Timezone       string            `yaml:"timezone"`
}

// FeedsConfig holds pagination behaviour shared by the today and history feeds.
type FeedsConfig struct {
	PageSize           int           `yaml:"page_size"`
	LoadMoreIntervalMS int           `yaml:"load_more_interval_ms"`
	LoadMoreInterval   time.Duration `yaml:"-"`
}

// DraftsConfig holds the price-draft store configuration.
type DraftsConfig struct {
	FlushDebounceMS int           `yaml:"flush_debounce_ms"`
	FlushDebounce   time.Duration `yaml:"-"`
	TTLMinutes      int           `yaml:"ttl_minutes"`
	TTL             time.Duration `yaml:"-"`
}

// DatabaseConfig holds the token database connection configuration.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "postgres"
	DSN    string `yaml:"dsn"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Upstream.TimeoutSeconds <= 0 {
		cfg.Upstream.TimeoutSeconds = 30
	}
	cfg.Upstream.Timeout = time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second

	if cfg.Feeds.PageSize <= 0 {
		cfg.Feeds.PageSize = 10
	}
	if cfg.Feeds.LoadMoreIntervalMS <= 0 {
		cfg.Feeds.LoadMoreIntervalMS = 900
	}
	cfg.Feeds.LoadMoreInterval = time.Duration(cfg.Feeds.LoadMoreIntervalMS) * time.Millisecond

	if cfg.Drafts.FlushDebounceMS <= 0 {
		cfg.Drafts.FlushDebounceMS = 120
	}
	cfg.Drafts.FlushDebounce = time.Duration(cfg.Drafts.FlushDebounceMS) * time.Millisecond

	if cfg.Drafts.TTLMinutes <= 0 {
		cfg.Drafts.TTLMinutes = 12 * 60
	}
	cfg.Drafts.TTL = time.Duration(cfg.Drafts.TTLMinutes) * time.Minute

	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Database.Driver == "" {
		log.Printf("database.driver is not set; defaulting to sqlite")
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "vendord.db"
	}

	return &cfg, nil
}
