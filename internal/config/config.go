package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"CryptoSentinel/internal/portfolio"
)

// DefaultPath is where the YAML config is looked up when no path is given.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Portfolio struct {
		Provider           string  `yaml:"provider" envconfig:"PORTFOLIO_PROVIDER"`
		CoinTrackerAPIKey  string  `yaml:"cointracker_api_key" envconfig:"COINTRACKER_API_KEY"`
		CoinTrackerURL     string  `yaml:"cointracker_url" envconfig:"COINTRACKER_BASE_URL"`
		CoinbaseAPIKey     string  `yaml:"coinbase_api_key" envconfig:"COINBASE_API_KEY"`
		CoinbaseAPISecret  string  `yaml:"coinbase_api_secret" envconfig:"COINBASE_API_SECRET"`
		CoinbasePassphrase string  `yaml:"coinbase_passphrase" envconfig:"COINBASE_API_PASSPHRASE"`
		CoinbaseURL        string  `yaml:"coinbase_url" envconfig:"COINBASE_BASE_URL"`
		HoldingsFile       string  `yaml:"holdings_file" envconfig:"HOLDINGS_FILE"`
		MinValue           float64 `yaml:"min_value" envconfig:"MIN_PORTFOLIO_VALUE"`
	} `yaml:"portfolio"`
	MarketData struct {
		Providers       []string      `yaml:"providers" envconfig:"MARKET_DATA_PROVIDERS"`
		CoinGeckoAPIKey string        `yaml:"coingecko_api_key" envconfig:"COINGECKO_API_KEY"`
		CoinGeckoURL    string        `yaml:"coingecko_url" envconfig:"COINGECKO_BASE_URL"`
		LookbackDays    int           `yaml:"lookback_days" envconfig:"LOOKBACK_DAYS"`
		MinPoints       int           `yaml:"min_points" envconfig:"MIN_POINTS"`
		RequestDelay    time.Duration `yaml:"request_delay" envconfig:"REQUEST_DELAY"`
		Timeout         time.Duration `yaml:"timeout" envconfig:"REQUEST_TIMEOUT"`
		Workers         int           `yaml:"workers" envconfig:"ANALYSIS_WORKERS"`
	} `yaml:"market_data"`
	Cache struct {
		Backend       string        `yaml:"backend" envconfig:"CACHE_BACKEND"`
		RedisAddr     string        `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
		RedisPassword string        `yaml:"redis_password" envconfig:"REDIS_PASSWORD"`
		RedisDB       int           `yaml:"redis_db" envconfig:"REDIS_DB"`
		TTL           time.Duration `yaml:"ttl" envconfig:"CACHE_TTL"`
	} `yaml:"cache"`
	Database struct {
		Driver string `yaml:"driver" envconfig:"DATABASE_DRIVER"`
		DSN    string `yaml:"dsn" envconfig:"DATABASE_DSN"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
		TopN     int    `yaml:"top_n" envconfig:"TELEGRAM_TOP_N"`
	} `yaml:"telegram"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron" envconfig:"WATCH_CRON"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
		Format string `yaml:"format" envconfig:"LOG_FORMAT"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Portfolio.Provider = "cointracker"
	cfg.Portfolio.HoldingsFile = "data/holdings.json"
	cfg.Portfolio.MinValue = 100
	cfg.MarketData.Providers = []string{"coingecko", "yahoo"}
	cfg.MarketData.LookbackDays = 90
	cfg.MarketData.MinPoints = 50
	cfg.MarketData.RequestDelay = 500 * time.Millisecond
	cfg.MarketData.Timeout = 30 * time.Second
	cfg.MarketData.Workers = 1
	cfg.Cache.Backend = "memory"
	cfg.Cache.RedisAddr = "localhost:6379"
	cfg.Cache.TTL = time.Hour
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "data/crypto_sentinel.db"
	cfg.Telegram.TopN = 5
	cfg.Schedule.WatchCron = "0 0 9 * * *"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// Load layers the YAML file at path, the .env files (default ".env") and the
// process environment over the defaults. Missing files are tolerated.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}

var (
	portfolioProviders = map[string]bool{"cointracker": true, "coinbase": true, "file": true, "manual": true}
	marketProviders    = map[string]bool{"coingecko": true, "yahoo": true, "mock": true}
	cacheBackends      = map[string]bool{"memory": true, "redis": true}
	databaseDrivers    = map[string]bool{"sqlite": true, "postgres": true, "none": true}
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !portfolioProviders[c.Portfolio.Provider] {
		return fmt.Errorf("portfolio.provider %q is not supported", c.Portfolio.Provider)
	}
	switch c.Portfolio.Provider {
	case "cointracker":
		if c.Portfolio.CoinTrackerAPIKey == "" {
			return fmt.Errorf("COINTRACKER_API_KEY not set: %w", portfolio.ErrNoCredentials)
		}
	case "coinbase":
		if c.Portfolio.CoinbaseAPIKey == "" || c.Portfolio.CoinbaseAPISecret == "" {
			return fmt.Errorf("COINBASE_API_KEY and COINBASE_API_SECRET must be set: %w", portfolio.ErrNoCredentials)
		}
	case "file":
		if c.Portfolio.HoldingsFile == "" {
			return fmt.Errorf("portfolio.holdings_file is required")
		}
	}
	if c.Portfolio.MinValue < 0 {
		return fmt.Errorf("portfolio.min_value must not be negative")
	}

	if len(c.MarketData.Providers) == 0 {
		return fmt.Errorf("market_data.providers must not be empty")
	}
	for _, p := range c.MarketData.Providers {
		if !marketProviders[p] {
			return fmt.Errorf("market_data provider %q is not supported", p)
		}
	}
	if c.MarketData.MinPoints < 2 {
		return fmt.Errorf("market_data.min_points must be at least 2")
	}
	if c.MarketData.LookbackDays < c.MarketData.MinPoints {
		return fmt.Errorf("market_data.lookback_days (%d) must be at least min_points (%d)",
			c.MarketData.LookbackDays, c.MarketData.MinPoints)
	}
	if c.MarketData.Workers < 1 {
		return fmt.Errorf("market_data.workers must be positive")
	}

	if !cacheBackends[c.Cache.Backend] {
		return fmt.Errorf("cache.backend %q is not supported", c.Cache.Backend)
	}
	if !databaseDrivers[c.Database.Driver] {
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	return nil
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
