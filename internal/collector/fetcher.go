package collector

import (
	"context"
	"errors"

	"CryptoSentinel/internal/model"
)

var (
	// ErrRateLimited marks a provider that refused requests for the rest of the run.
	ErrRateLimited = errors.New("rate limited")
	// ErrNoData is returned when a provider has no data for a symbol.
	ErrNoData = errors.New("no data")
	// ErrAllProvidersFailed is returned when every provider in a chain failed.
	ErrAllProvidersFailed = errors.New("all providers failed")
	// ErrInsufficientHistory is returned when a series is too short to analyze.
	ErrInsufficientHistory = errors.New("insufficient history")
)

// Fetcher defines the interface for fetching price history.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, days int) (*model.PriceSeries, error)
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}
