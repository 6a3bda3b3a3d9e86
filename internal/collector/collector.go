package collector

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"CryptoSentinel/internal/cache"
	"CryptoSentinel/internal/model"
)

const (
	// DefaultDays is the history window requested per symbol.
	DefaultDays = 90
	// DefaultMinPoints is the shortest series worth analyzing.
	DefaultMinPoints = 2
)

// Collector fetches price history through a read-through cache.
type Collector struct {
	Fetcher   Fetcher
	Cache     cache.SeriesCache
	Days      int
	MinPoints int
}

// NewCollector creates a new Collector. cache may be nil.
func NewCollector(fetcher Fetcher, c cache.SeriesCache, days int) *Collector {
	if days <= 0 {
		days = DefaultDays
	}
	return &Collector{Fetcher: fetcher, Cache: c, Days: days, MinPoints: DefaultMinPoints}
}

// Collect returns the normalized daily price history for symbol.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	key := cache.Key(symbol, c.Days)
	if c.Cache != nil {
		series, ok, err := c.Cache.Get(ctx, key)
		if err != nil {
			log.Warnf("cache read %s failed: %v", key, err)
		} else if ok {
			log.Debugf("cache hit for %s", key)
			return series, nil
		}
	}

	series, err := c.Fetcher.FetchHistory(ctx, symbol, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	series.Points = normalize(series.Points)
	if series.Len() < c.MinPoints {
		return nil, fmt.Errorf("%s has %d points: %w", symbol, series.Len(), ErrInsufficientHistory)
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, key, series); err != nil {
			log.Warnf("cache write %s failed: %v", key, err)
		}
	}
	return series, nil
}

// CurrentPrice returns the latest spot price for symbol.
func (c *Collector) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	price, err := c.Fetcher.FetchCurrentPrice(ctx, symbol)
	if err != nil {
		return 0, fmt.Errorf("fetch current price: %w", err)
	}
	return price, nil
}

// normalize sorts points by time, keeps the last point for a duplicated
// timestamp and drops non-positive prices.
func normalize(points []model.PricePoint) []model.PricePoint {
	points = append([]model.PricePoint(nil), points...)
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	out := make([]model.PricePoint, 0, len(points))
	for _, p := range points {
		if p.Price <= 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Time.Equal(p.Time) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
