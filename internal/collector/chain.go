package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"CryptoSentinel/internal/model"
)

// FallbackChain tries each fetcher in order. A fetcher that reports
// ErrRateLimited is skipped for the remainder of the run.
type FallbackChain struct {
	fetchers []Fetcher

	mu      sync.Mutex
	limited map[string]bool
}

// NewFallbackChain creates a chain over the given fetchers, in priority order.
func NewFallbackChain(fetchers ...Fetcher) *FallbackChain {
	return &FallbackChain{fetchers: fetchers, limited: make(map[string]bool)}
}

func (c *FallbackChain) Name() string {
	names := make([]string, len(c.fetchers))
	for i, f := range c.fetchers {
		names[i] = f.Name()
	}
	return strings.Join(names, ">")
}

// Reset clears the rate-limit state at the start of a new run.
func (c *FallbackChain) Reset() {
	c.mu.Lock()
	c.limited = make(map[string]bool)
	c.mu.Unlock()
}

func (c *FallbackChain) FetchHistory(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	var series *model.PriceSeries
	err := c.try(ctx, symbol, func(f Fetcher) error {
		s, err := f.FetchHistory(ctx, symbol, days)
		if err == nil {
			series = s
		}
		return err
	})
	return series, err
}

func (c *FallbackChain) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var price float64
	err := c.try(ctx, symbol, func(f Fetcher) error {
		p, err := f.FetchCurrentPrice(ctx, symbol)
		if err == nil {
			price = p
		}
		return err
	})
	return price, err
}

func (c *FallbackChain) try(ctx context.Context, symbol string, call func(Fetcher) error) error {
	var errs []error
	for _, f := range c.fetchers {
		if c.isLimited(f.Name()) {
			continue
		}
		err := call(f)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, ErrRateLimited) {
			c.markLimited(f.Name())
			log.Warnf("%s rate limited, skipping it for this run", f.Name())
		} else {
			log.WithFields(log.Fields{"provider": f.Name(), "symbol": symbol}).Debugf("fetch failed: %v", err)
		}
		errs = append(errs, fmt.Errorf("%s: %w", f.Name(), err))
	}
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", symbol, ErrAllProvidersFailed)
	}
	return fmt.Errorf("%s: %w: %w", symbol, ErrAllProvidersFailed, errors.Join(errs...))
}

func (c *FallbackChain) isLimited(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limited[name]
}

func (c *FallbackChain) markLimited(name string) {
	c.mu.Lock()
	c.limited[name] = true
	c.mu.Unlock()
}
