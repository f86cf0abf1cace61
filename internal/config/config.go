package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Cache     CacheConfig     `yaml:"cache"`
	Store     StoreConfig     `yaml:"store"`
	LLM       LLMConfig       `yaml:"llm"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Debug        bool          `yaml:"debug"`
}

// DiscoveryConfig bounds one discovery run.
type DiscoveryConfig struct {
	RunTimeout         time.Duration `yaml:"run_timeout"`
	FastFetchTimeout   time.Duration `yaml:"fast_fetch_timeout"`
	FastConcurrency    int           `yaml:"fast_concurrency"`
	TargetResults      int           `yaml:"target_results"`
	MaxResults         int           `yaml:"max_results"`
	PolitenessDelay    time.Duration `yaml:"politeness_delay"`
	MaxSourcesPerGroup int           `yaml:"max_sources_per_group"`
	MaxGroups          int           `yaml:"max_groups"`

	// AllowSyntheticFallback serves placeholder records when the whole
	// pipeline fails. Meant for development; synthetic records are
	// tagged and never cached.
	AllowSyntheticFallback bool `yaml:"allow_synthetic_fallback"`
}

// FetchConfig tunes the HTTP fetcher shared by all tiers.
type FetchConfig struct {
	Timeout         time.Duration            `yaml:"timeout"`
	MaxRetries      int                      `yaml:"max_retries"`
	ClassDelays     map[string]time.Duration `yaml:"class_delays"`
	AggressiveDelay time.Duration            `yaml:"aggressive_delay"`
	BrowserEnabled  bool                     `yaml:"browser_enabled"`
	UserAgents      []string                 `yaml:"user_agents"`
}

type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

type StoreConfig struct {
	Enabled     bool   `yaml:"enabled"`
	DatabaseURL string `yaml:"database_url"`
}

type LLMConfig struct {
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := defaultConfig()

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			Debug:        false,
		},
		Discovery: DiscoveryConfig{
			RunTimeout:             30 * time.Second,
			FastFetchTimeout:       5 * time.Second,
			FastConcurrency:        10,
			TargetResults:          20,
			MaxResults:             20,
			PolitenessDelay:        1 * time.Second,
			MaxSourcesPerGroup:     3,
			MaxGroups:              3,
			AllowSyntheticFallback: false,
		},
		Fetch: FetchConfig{
			Timeout:    20 * time.Second,
			MaxRetries: 3,
			ClassDelays: map[string]time.Duration{
				"government": 3000 * time.Millisecond,
				"gig":        2000 * time.Millisecond,
				"ats":        2500 * time.Millisecond,
				"niche":      2000 * time.Millisecond,
				"regional":   2000 * time.Millisecond,
				"company":    2000 * time.Millisecond,
			},
			AggressiveDelay: 10 * time.Second,
			BrowserEnabled:  false,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
				"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:89.0) Gecko/20100101 Firefox/89.0",
			},
		},
		Cache: CacheConfig{
			Enabled:  false,
			RedisURL: "redis://localhost:6379/0",
			TTL:      15 * time.Minute,
		},
		Store: StoreConfig{
			Enabled: false,
		},
		LLM: LLMConfig{
			Model:   "gpt-3.5-turbo",
			Timeout: 60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 60,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			MaxAge:         600,
		},
	}
}

func (c *Config) loadFromEnv() {
	// Server
	if v := os.Getenv("SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DEBUG"); v == "true" {
		c.Server.Debug = true
	}

	// Discovery
	if v := os.Getenv("DISCOVERY_SYNTHETIC_FALLBACK"); v == "true" {
		c.Discovery.AllowSyntheticFallback = true
	}
	if v := os.Getenv("DISCOVERY_RUN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Discovery.RunTimeout = d
		}
	}

	// Fetch
	if v := os.Getenv("FETCH_BROWSER_ENABLED"); v == "true" {
		c.Fetch.BrowserEnabled = true
	}

	// Cache
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Cache.RedisURL = v
		c.Cache.Enabled = true
	}

	// Store
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Store.DatabaseURL = v
		c.Store.Enabled = true
	}

	// LLM
	if v := os.Getenv("CHATGPT_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
}
