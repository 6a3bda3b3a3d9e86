package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"CryptoSentinel/internal/cache"
	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/config"
	"CryptoSentinel/internal/logger"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/portfolio"
	"CryptoSentinel/internal/recorder"
	"CryptoSentinel/internal/scheduler"
)

// options are the global command line flags.
type options struct {
	configPath string
	mock       bool
	logLevel   string
}

// app wires the configured collaborators for one command.
type app struct {
	cfg      *config.Config
	runner   *scheduler.Runner
	notifier *notifier.TelegramNotifier
	closers  []func() error
}

// loadConfig loads and validates configuration. provider overrides the configured
// portfolio provider when not empty.
func loadConfig(opts *options, provider string) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if provider != "" {
		cfg.Portfolio.Provider = provider
	}
	if opts.mock {
		cfg.MarketData.Providers = []string{"mock"}
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config, withNotifier bool) *app {
	a := &app{cfg: cfg}

	col := collector.NewCollector(buildFetcher(cfg), a.buildCache(ctx), cfg.MarketData.LookbackDays)
	col.MinPoints = cfg.MarketData.MinPoints

	runner := scheduler.NewRunner(col)
	runner.Out = os.Stdout
	runner.Workers = cfg.MarketData.Workers
	runner.TopN = cfg.Telegram.TopN
	runner.Recorder = a.buildRecorder()

	if withNotifier && cfg.TelegramEnabled() {
		a.notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		runner.Notifier = a.notifier
	}
	a.runner = runner
	return a
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Warnf("close: %v", err)
		}
	}
}

func buildFetcher(cfg *config.Config) collector.Fetcher {
	md := cfg.MarketData
	fetchers := make([]collector.Fetcher, 0, len(md.Providers))
	for _, p := range md.Providers {
		switch p {
		case "coingecko":
			fetchers = append(fetchers, collector.NewCoinGeckoFetcher(md.CoinGeckoURL, md.CoinGeckoAPIKey, cfg.Proxy, md.Timeout, md.RequestDelay))
		case "yahoo":
			fetchers = append(fetchers, collector.NewYahooFetcher())
		case "mock":
			fetchers = append(fetchers, &collector.MockFetcher{})
		}
	}
	if len(fetchers) == 1 {
		log.Infof("data source: %s", fetchers[0].Name())
		return fetchers[0]
	}
	chain := collector.NewFallbackChain(fetchers...)
	log.Infof("data source: %s", chain.Name())
	return chain
}

func (a *app) buildCache(ctx context.Context) cache.SeriesCache {
	c := a.cfg.Cache
	if c.Backend == "redis" {
		rc, err := cache.NewRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, c.TTL)
		if err == nil {
			a.closers = append(a.closers, rc.Close)
			return rc
		}
		log.Warnf("init redis cache failed, using memory: %v", err)
	}
	return cache.NewMemory()
}

func (a *app) buildRecorder() recorder.Recorder {
	rec, err := recorder.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Warnf("init recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	a.closers = append(a.closers, rec.Close)
	return rec
}

// buildSource creates the configured holdings source. symbols is used by the manual provider.
func buildSource(cfg *config.Config, symbols string) portfolio.Source {
	p := cfg.Portfolio
	minValue := decimal.NewFromFloat(p.MinValue)
	switch p.Provider {
	case "coinbase":
		cb := portfolio.NewCoinbase(p.CoinbaseURL, p.CoinbaseAPIKey, p.CoinbaseAPISecret, p.CoinbasePassphrase, cfg.Proxy, cfg.MarketData.Timeout)
		cb.MinValue = minValue
		return cb
	case "file":
		f := portfolio.NewFile(p.HoldingsFile)
		f.MinValue = minValue
		return f
	case "manual":
		return portfolio.NewManual(symbols)
	default:
		ct := portfolio.NewCoinTracker(p.CoinTrackerURL, p.CoinTrackerAPIKey, cfg.Proxy, cfg.MarketData.Timeout)
		ct.MinValue = minValue
		return ct
	}
}
