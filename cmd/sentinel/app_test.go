package main

import (
	"testing"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/config"
)

func TestBuildFetcher(t *testing.T) {
	cfg := config.Default()
	cfg.MarketData.Providers = []string{"mock"}
	if f := buildFetcher(cfg); f.Name() != "mock" {
		t.Errorf("expected single mock fetcher, got %q", f.Name())
	}

	cfg.MarketData.Providers = []string{"coingecko", "yahoo"}
	f := buildFetcher(cfg)
	if _, ok := f.(*collector.FallbackChain); !ok {
		t.Fatalf("expected fallback chain, got %T", f)
	}
	if f.Name() != "coingecko>yahoo" {
		t.Errorf("expected %q, got %q", "coingecko>yahoo", f.Name())
	}
}

func TestBuildSource(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"cointracker", "cointracker"},
		{"coinbase", "coinbase"},
		{"file", "file"},
		{"manual", "manual"},
	}
	for _, tt := range tests {
		cfg := config.Default()
		cfg.Portfolio.Provider = tt.provider
		if got := buildSource(cfg, "btc").Name(); got != tt.want {
			t.Errorf("provider %s: expected %q, got %q", tt.provider, tt.want, got)
		}
	}
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"analyze", "manual", "watch", "history"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("expected subcommand %q, got %v", name, err)
		}
	}
}
