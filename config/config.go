package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the factlens service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Aggregate AggregateConfig `mapstructure:"aggregate"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	BodyLimit   string   `mapstructure:"body_limit"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// FetchConfig controls outbound page and feed downloads.
type FetchConfig struct {
	Fetcher      string            `mapstructure:"fetcher"` // http or chromedp
	Timeout      time.Duration     `mapstructure:"timeout"`
	FeedTimeout  time.Duration     `mapstructure:"feed_timeout"`
	UserAgent    string            `mapstructure:"user_agent"`
	MaxBodyBytes int64             `mapstructure:"max_body_bytes"`
	RatePerHost  float64           `mapstructure:"rate_per_host"`
	Burst        int               `mapstructure:"burst"`
	Retries      int               `mapstructure:"retries"`
	Backoff      time.Duration     `mapstructure:"backoff"`
	CrawlPolicy  CrawlPolicyConfig `mapstructure:"crawl_policy"`
}

func (f FetchConfig) Validate() error {
	switch f.Fetcher {
	case "http", "chromedp":
	default:
		return fmt.Errorf("fetch.fetcher must be http or chromedp, got %q", f.Fetcher)
	}
	if f.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be > 0")
	}
	if f.FeedTimeout <= 0 {
		return fmt.Errorf("fetch.feed_timeout must be > 0")
	}
	if f.RatePerHost < 0 {
		return fmt.Errorf("fetch.rate_per_host cannot be negative")
	}
	if f.Retries < 0 {
		return fmt.Errorf("fetch.retries cannot be negative")
	}
	return f.CrawlPolicy.Validate()
}

// AggregateConfig controls the trending/search fan-out.
type AggregateConfig struct {
	MaxConcurrency int           `mapstructure:"max_concurrency"`
	SourcesFile    string        `mapstructure:"sources_file"`
	ExtractImages  bool          `mapstructure:"extract_images"`
	RefreshCron    string        `mapstructure:"refresh_cron"`
	CollectTimeout time.Duration `mapstructure:"collect_timeout"` // bounds one shared trending collection
}

func (a AggregateConfig) Validate() error {
	if a.MaxConcurrency <= 0 {
		return fmt.Errorf("aggregate.max_concurrency must be > 0")
	}
	return nil
}

// CacheConfig selects where aggregated article lists are cached.
type CacheConfig struct {
	Driver string        `mapstructure:"driver"` // memory, redis or none
	TTL    time.Duration `mapstructure:"ttl"`
	Redis  RedisConfig   `mapstructure:"redis"`
}

func (c CacheConfig) Validate() error {
	switch c.Driver {
	case "none":
		return nil
	case "memory":
	case "redis":
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cache.driver must be memory, redis or none, got %q", c.Driver)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}
	return nil
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("cache.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("cache.redis.port required")
	}
	return nil
}

func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

// ScoringConfig optionally replaces the credibility phrase tables.
// Empty tables keep the built-in defaults.
type ScoringConfig struct {
	CitationPhrases map[string]int `mapstructure:"citation_phrases"`
	FactualPhrases  map[string]int `mapstructure:"factual_phrases"`
}

// Normalize lowercases phrases and drops blank or non-positive entries.
func (s ScoringConfig) Normalize() ScoringConfig {
	s.CitationPhrases = normalizePhrases(s.CitationPhrases)
	s.FactualPhrases = normalizePhrases(s.FactualPhrases)
	return s
}

func normalizePhrases(in map[string]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for phrase, weight := range in {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase == "" || weight <= 0 {
			continue
		}
		out[phrase] = weight
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.body_limit", "10M")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("fetch.fetcher", "http")
	v.SetDefault("fetch.timeout", 10*time.Second)
	v.SetDefault("fetch.feed_timeout", 5*time.Second)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.max_body_bytes", int64(10<<20))
	v.SetDefault("fetch.rate_per_host", 2.0)
	v.SetDefault("fetch.burst", 4)
	v.SetDefault("fetch.retries", 0)
	v.SetDefault("fetch.backoff", 300*time.Millisecond)
	v.SetDefault("aggregate.max_concurrency", 16)
	v.SetDefault("aggregate.extract_images", true)
	v.SetDefault("aggregate.collect_timeout", time.Minute)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.redis.port", "6379")
	v.SetDefault("cache.redis.timeout", 5*time.Second)
}

// DefaultUserAgent is a browser-like agent; several news sites block unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	cfg.Fetch.CrawlPolicy = cfg.Fetch.CrawlPolicy.Normalize()
	return &cfg
}

// LoadConfig loads config from file and FACTLENS_* environment variables.
// A missing config file is not an error when path is empty; defaults apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	setDefaults(v)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if exe, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exe)
			v.AddConfigPath(exeDir)
			v.AddConfigPath(filepath.Join(exeDir, "..", "config"))
		}
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("FACTLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Fetch.CrawlPolicy = cfg.Fetch.CrawlPolicy.Normalize()
	cfg.Scoring = cfg.Scoring.Normalize()

	if err := cfg.Fetch.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Aggregate.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
