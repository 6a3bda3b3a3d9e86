package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"

	"CryptoSentinel/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance crypto tickers.
type YahooFetcher struct {
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher() *YahooFetcher {
	return &YahooFetcher{
		SymbolMap: map[string]string{
			"UNI": "UNI7083-USD",
			"TON": "TON11419-USD",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	symbol = strings.ToUpper(symbol)
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol + "-USD"
}

func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	iter := chart.Get(&chart.Params{
		Symbol:   f.yahooSymbol(symbol),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	points := make([]model.PricePoint, 0, days)
	for iter.Next() {
		bar := iter.Bar()
		price, _ := bar.Close.Float64()
		points = append(points, model.PricePoint{
			Time:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Price:  price,
			Volume: float64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo history %s: %w", symbol, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Points:    normalize(points),
		Source:    f.Name(),
		FetchedAt: time.Now(),
	}, nil
}

func (f *YahooFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	q, err := quote.Get(f.yahooSymbol(symbol))
	if err != nil {
		return 0, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice <= 0 {
		return 0, fmt.Errorf("yahoo quote %s: %w", symbol, ErrNoData)
	}
	return q.RegularMarketPrice, nil
}
