package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"CryptoSentinel/internal/model"
)

// DefaultCoinGeckoURL is the public CoinGecko API.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// coinIDs maps common ticker symbols to CoinGecko coin ids.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"USDC":  "usd-coin",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"TRX":   "tron",
	"TON":   "the-open-network",
	"LINK":  "chainlink",
	"MATIC": "matic-network",
	"DOT":   "polkadot",
	"AVAX":  "avalanche-2",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"LTC":   "litecoin",
	"BCH":   "bitcoin-cash",
	"ALGO":  "algorand",
}

// CoinGeckoFetcher implements Fetcher using the CoinGecko REST API.
type CoinGeckoFetcher struct {
	client *resty.Client
	delay  time.Duration

	mu       sync.Mutex
	ids      map[string]string
	lastCall time.Time
}

// NewCoinGeckoFetcher creates a fetcher with optional API key and proxy support.
// delay is the minimum spacing between requests.
func NewCoinGeckoFetcher(baseURL, apiKey, proxyURL string, timeout, delay time.Duration) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("x-cg-demo-api-key", apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	ids := make(map[string]string, len(coinIDs))
	for k, v := range coinIDs {
		ids[k] = v
	}
	return &CoinGeckoFetcher{client: client, delay: delay, ids: ids}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the response of /coins/{id}/market_chart.
type marketChart struct {
	Prices       [][]float64 `json:"prices"`
	TotalVolumes [][]float64 `json:"total_volumes"`
}

func (f *CoinGeckoFetcher) FetchHistory(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	id, err := f.coinID(ctx, symbol)
	if err != nil {
		return nil, err
	}
	body, err := f.get(ctx, "/coins/"+id+"/market_chart", map[string]string{
		"vs_currency": "usd",
		"days":        strconv.Itoa(days),
		"interval":    "daily",
	})
	if err != nil {
		return nil, fmt.Errorf("coingecko history %s: %w", symbol, err)
	}
	var chart marketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("coingecko decode history %s: %w", symbol, err)
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("coingecko %s: %w", symbol, ErrNoData)
	}

	volumes := make(map[int64]float64, len(chart.TotalVolumes))
	for _, v := range chart.TotalVolumes {
		if len(v) == 2 {
			volumes[int64(v[0])] = v[1]
		}
	}
	points := make([]model.PricePoint, 0, len(chart.Prices))
	for _, p := range chart.Prices {
		if len(p) != 2 {
			continue
		}
		ms := int64(p[0])
		points = append(points, model.PricePoint{
			Time:   time.UnixMilli(ms).UTC(),
			Price:  p[1],
			Volume: volumes[ms],
		})
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Points:    normalize(points),
		Source:    f.Name(),
		FetchedAt: time.Now(),
	}, nil
}

func (f *CoinGeckoFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	id, err := f.coinID(ctx, symbol)
	if err != nil {
		return 0, err
	}
	body, err := f.get(ctx, "/simple/price", map[string]string{"ids": id, "vs_currencies": "usd"})
	if err != nil {
		return 0, fmt.Errorf("coingecko price %s: %w", symbol, err)
	}
	var prices map[string]map[string]float64
	if err := json.Unmarshal(body, &prices); err != nil {
		return 0, fmt.Errorf("coingecko decode price %s: %w", symbol, err)
	}
	price, ok := prices[id]["usd"]
	if !ok {
		return 0, fmt.Errorf("coingecko price %s: %w", symbol, ErrNoData)
	}
	return price, nil
}

// coinID resolves a ticker symbol, searching CoinGecko for symbols outside the built-in map.
func (f *CoinGeckoFetcher) coinID(ctx context.Context, symbol string) (string, error) {
	symbol = strings.ToUpper(symbol)
	f.mu.Lock()
	id, ok := f.ids[symbol]
	f.mu.Unlock()
	if ok {
		return id, nil
	}

	body, err := f.get(ctx, "/search", map[string]string{"query": symbol})
	if err != nil {
		return "", fmt.Errorf("coingecko search %s: %w", symbol, err)
	}
	var result struct {
		Coins []struct {
			ID     string `json:"id"`
			Symbol string `json:"symbol"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("coingecko decode search %s: %w", symbol, err)
	}
	if len(result.Coins) == 0 {
		return "", fmt.Errorf("coingecko search %s: %w", symbol, ErrNoData)
	}
	id = result.Coins[0].ID
	for _, c := range result.Coins {
		if strings.EqualFold(c.Symbol, symbol) {
			id = c.ID
			break
		}
	}
	log.Debugf("coingecko resolved %s to %s", symbol, id)

	f.mu.Lock()
	f.ids[symbol] = id
	f.mu.Unlock()
	return id, nil
}

func (f *CoinGeckoFetcher) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return resp.Body(), nil
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusNotFound:
		return nil, ErrNoData
	default:
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode(), resp.String())
	}
}

// wait spaces requests by the configured delay.
func (f *CoinGeckoFetcher) wait(ctx context.Context) error {
	f.mu.Lock()
	next := f.lastCall.Add(f.delay)
	now := time.Now()
	if next.Before(now) {
		next = now
	}
	f.lastCall = next
	f.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Until(next)):
		return nil
	}
}
