package portfolio

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"CryptoSentinel/internal/model"
)

// DefaultCoinbaseURL is the Coinbase API base.
const DefaultCoinbaseURL = "https://api.coinbase.com"

const accountsPath = "/v2/accounts"

var fiatCurrencies = map[string]bool{"USD": true, "EUR": true, "GBP": true, "CAD": true}

// Coinbase reads holdings from signed Coinbase account requests.
type Coinbase struct {
	client     *resty.Client
	apiKey     string
	apiSecret  string
	passphrase string
	MinValue   decimal.Decimal
	now        func() time.Time
}

// NewCoinbase creates a Coinbase source.
func NewCoinbase(baseURL, apiKey, apiSecret, passphrase, proxyURL string, timeout time.Duration) *Coinbase {
	if baseURL == "" {
		baseURL = DefaultCoinbaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &Coinbase{
		client:     client,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		passphrase: passphrase,
		MinValue:   DefaultMinValue,
		now:        time.Now,
	}
}

func (c *Coinbase) Name() string { return "coinbase" }

// Sign returns the base64 HMAC-SHA256 of timestamp+method+path+body.
func Sign(secret, timestamp, method, path, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + method + path + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type cbAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type cbAccount struct {
	Currency      json.RawMessage `json:"currency"`
	Balance       cbAmount        `json:"balance"`
	NativeBalance cbAmount        `json:"native_balance"`
}

// code handles both the object and the plain string currency forms.
func (a cbAccount) code() string {
	var obj struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(a.Currency, &obj); err == nil && obj.Code != "" {
		return obj.Code
	}
	var s string
	if err := json.Unmarshal(a.Currency, &s); err == nil {
		return s
	}
	return ""
}

func (c *Coinbase) FetchHoldings(ctx context.Context) ([]model.Holding, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, fmt.Errorf("coinbase: %w", ErrNoCredentials)
	}
	ts := strconv.FormatInt(c.now().Unix(), 10)
	req := c.client.R().
		SetContext(ctx).
		SetHeader("CB-ACCESS-KEY", c.apiKey).
		SetHeader("CB-ACCESS-SIGN", Sign(c.apiSecret, ts, http.MethodGet, accountsPath, "")).
		SetHeader("CB-ACCESS-TIMESTAMP", ts)
	if c.passphrase != "" {
		req.SetHeader("CB-ACCESS-PASSPHRASE", c.passphrase)
	}
	resp, err := req.Get(accountsPath)
	if err != nil {
		return nil, fmt.Errorf("coinbase request: %w", err)
	}
	if err := checkStatus(c.Name(), resp); err != nil {
		return nil, err
	}

	var body struct {
		Data []cbAccount `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("coinbase decode: %w", err)
	}
	holdings := make([]model.Holding, 0, len(body.Data))
	for _, a := range body.Data {
		symbol := strings.ToUpper(a.code())
		if fiatCurrencies[symbol] {
			continue
		}
		holdings = append(holdings, model.Holding{
			Symbol:   symbol,
			Amount:   a.Balance.Amount,
			ValueUSD: a.NativeBalance.Amount,
		})
	}
	return filterHoldings(holdings, c.MinValue), nil
}
