package collector

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"CryptoSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series map[string]*model.PriceSeries
	Err    error
	calls  atomic.Int32
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls reports how many history fetches were made.
func (m *MockFetcher) Calls() int { return int(m.calls.Load()) }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, days int) (*model.PriceSeries, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Points:    generateMockPoints(m.basePrice(symbol), days),
		Source:    m.Name(),
		FetchedAt: time.Now(),
	}, nil
}

func (m *MockFetcher) FetchCurrentPrice(_ context.Context, symbol string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if s, ok := m.Series[symbol]; ok && s.Len() > 0 {
		return s.Last().Price, nil
	}
	return m.basePrice(symbol), nil
}

func (m *MockFetcher) basePrice(symbol string) float64 {
	if m.Price > 0 {
		return m.Price
	}
	var h float64
	for _, r := range symbol {
		h += float64(r)
	}
	return 10 + math.Mod(h*7.3, 990)
}

// generateMockPoints builds a gently oscillating daily series ending today.
func generateMockPoints(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.03*math.Sin(float64(i)/6))
		points[i] = model.PricePoint{
			Time:   today.AddDate(0, 0, -(count - 1 - i)),
			Price:  p,
			Volume: 1000000,
		}
	}
	return points
}
