package cache

import (
	"context"
	"fmt"

	"CryptoSentinel/internal/model"
)

// SeriesCache stores fetched price series for reuse within a run.
type SeriesCache interface {
	Get(ctx context.Context, key string) (*model.PriceSeries, bool, error)
	Set(ctx context.Context, key string, series *model.PriceSeries) error
}

// Key builds the cache key for a symbol and lookback window.
func Key(symbol string, days int) string {
	return fmt.Sprintf("%s_%d", symbol, days)
}
