package portfolio

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"CryptoSentinel/internal/model"
)

// Manual is a fixed symbol list with no position data.
type Manual struct {
	Symbols []string
}

// NewManual creates a manual source from a raw comma or space separated list.
func NewManual(raw string) *Manual {
	return &Manual{Symbols: ParseSymbols(raw)}
}

func (m *Manual) Name() string { return "manual" }

// FetchHoldings returns one zero-value holding per symbol, in input order.
func (m *Manual) FetchHoldings(_ context.Context) ([]model.Holding, error) {
	holdings := make([]model.Holding, len(m.Symbols))
	for i, s := range m.Symbols {
		holdings[i] = model.Holding{Symbol: s, Amount: decimal.Zero, ValueUSD: decimal.Zero}
	}
	return holdings, nil
}

// ParseSymbols splits on commas and whitespace, upper-cases and de-duplicates.
func ParseSymbols(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	seen := make(map[string]bool, len(fields))
	symbols := make([]string, 0, len(fields))
	for _, f := range fields {
		s := strings.ToUpper(strings.TrimSpace(f))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		symbols = append(symbols, s)
	}
	return symbols
}
