package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"CryptoSentinel/internal/model"
)

// DefaultCoinTrackerURL is the CoinTracker API base.
const DefaultCoinTrackerURL = "https://api.cointracker.io/api/v2"

// CoinTracker reads holdings from the CoinTracker portfolio API.
type CoinTracker struct {
	client   *resty.Client
	apiKey   string
	MinValue decimal.Decimal
}

// NewCoinTracker creates a CoinTracker source.
func NewCoinTracker(baseURL, apiKey, proxyURL string, timeout time.Duration) *CoinTracker {
	if baseURL == "" {
		baseURL = DefaultCoinTrackerURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &CoinTracker{client: client, apiKey: apiKey, MinValue: DefaultMinValue}
}

func (c *CoinTracker) Name() string { return "cointracker" }

// ctHolding covers the field names seen across CoinTracker response versions.
type ctHolding struct {
	CurrencyCode string          `json:"currency_code"`
	Symbol       string          `json:"symbol"`
	Amount       decimal.Decimal `json:"amount"`
	ValueUSD     decimal.Decimal `json:"value_usd"`
	Value        decimal.Decimal `json:"value"`
}

type ctPortfolio struct {
	Holdings []ctHolding `json:"holdings"`
	Data     *struct {
		Holdings []ctHolding `json:"holdings"`
	} `json:"data"`
	Positions  []ctHolding `json:"positions"`
	Currencies []ctHolding `json:"currencies"`
}

func (p *ctPortfolio) list() []ctHolding {
	switch {
	case p.Holdings != nil:
		return p.Holdings
	case p.Data != nil && p.Data.Holdings != nil:
		return p.Data.Holdings
	case p.Positions != nil:
		return p.Positions
	default:
		return p.Currencies
	}
}

func (c *CoinTracker) FetchHoldings(ctx context.Context) ([]model.Holding, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("cointracker: %w", ErrNoCredentials)
	}
	resp, err := c.client.R().SetContext(ctx).Get("/portfolio")
	if err != nil {
		return nil, fmt.Errorf("cointracker request: %w", err)
	}
	if err := checkStatus(c.Name(), resp); err != nil {
		return nil, err
	}

	var p ctPortfolio
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return nil, fmt.Errorf("cointracker decode: %w", err)
	}
	raw := p.list()
	holdings := make([]model.Holding, 0, len(raw))
	for _, h := range raw {
		symbol := h.CurrencyCode
		if symbol == "" {
			symbol = h.Symbol
		}
		value := h.ValueUSD
		if value.IsZero() {
			value = h.Value
		}
		holdings = append(holdings, model.Holding{
			Symbol:   strings.ToUpper(symbol),
			Amount:   h.Amount,
			ValueUSD: value,
		})
	}
	return filterHoldings(holdings, c.MinValue), nil
}
