package portfolio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"CryptoSentinel/internal/model"
)

var (
	// ErrUnauthorized is returned when a provider rejects the credentials.
	ErrUnauthorized = errors.New("invalid api credentials")
	// ErrForbidden is returned when the credentials lack permission.
	ErrForbidden = errors.New("access forbidden")
	// ErrNoCredentials is returned when a provider is selected without credentials.
	ErrNoCredentials = errors.New("no api credentials configured")
)

// DefaultMinValue is the smallest holding value in USD worth analyzing.
var DefaultMinValue = decimal.NewFromInt(100)

// Source fetches the current portfolio holdings.
type Source interface {
	Name() string
	FetchHoldings(ctx context.Context) ([]model.Holding, error)
}

// filterHoldings drops empty positions and those worth less than minValue,
// then orders the rest by value descending.
func filterHoldings(holdings []model.Holding, minValue decimal.Decimal) []model.Holding {
	out := make([]model.Holding, 0, len(holdings))
	for _, h := range holdings {
		if !h.Amount.IsPositive() || h.ValueUSD.LessThan(minValue) {
			continue
		}
		out = append(out, h)
	}
	sortByValue(out)
	return out
}

func sortByValue(holdings []model.Holding) {
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].ValueUSD.GreaterThan(holdings[j].ValueUSD)
	})
}

// checkStatus maps provider HTTP statuses to package errors.
func checkStatus(provider string, resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", provider, ErrUnauthorized)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", provider, ErrForbidden)
	default:
		return fmt.Errorf("%s: status %d, body: %s", provider, resp.StatusCode(), resp.String())
	}
}
