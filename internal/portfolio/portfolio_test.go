package portfolio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"CryptoSentinel/internal/model"
)

func symbols(holdings []model.Holding) []string {
	out := make([]string, len(holdings))
	for i, h := range holdings {
		out[i] = h.Symbol
	}
	return out
}

func TestParseSymbols(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"btc,eth", []string{"BTC", "ETH"}},
		{" sol  ada ,, btc ", []string{"SOL", "ADA", "BTC"}},
		{"BTC,btc,Btc", []string{"BTC"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := ParseSymbols(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSymbols(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestManual_FetchHoldings(t *testing.T) {
	holdings, err := NewManual("eth, btc").FetchHoldings(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := symbols(holdings); !reflect.DeepEqual(got, []string{"ETH", "BTC"}) {
		t.Errorf("expected input order, got %v", got)
	}
	if holdings[0].Value() != 0 {
		t.Errorf("expected zero value, got %v", holdings[0].Value())
	}
}

func TestCoinTracker_Shapes(t *testing.T) {
	bodies := map[string]string{
		"top":        `{"holdings":[{"symbol":"btc","amount":0.5,"value_usd":30000},{"symbol":"doge","amount":10,"value_usd":1}]}`,
		"data":       `{"data":{"holdings":[{"currency_code":"btc","amount":"0.5","value":30000}]}}`,
		"positions":  `{"positions":[{"symbol":"BTC","amount":0.5,"value_usd":30000},{"symbol":"ETH","amount":0,"value_usd":500}]}`,
		"currencies": `{"currencies":[{"symbol":"eth","amount":2,"value_usd":4000},{"symbol":"btc","amount":0.5,"value_usd":30000}]}`,
	}
	want := map[string][]string{
		"top":        {"BTC"},
		"data":       {"BTC"},
		"positions":  {"BTC"},
		"currencies": {"BTC", "ETH"},
	}
	for name, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/portfolio" {
				t.Errorf("%s: expected path /portfolio, got %q", name, r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer key" {
				t.Errorf("%s: expected bearer token, got %q", name, r.Header.Get("Authorization"))
			}
			w.Write([]byte(body))
		}))
		holdings, err := NewCoinTracker(srv.URL, "key", "", 5*time.Second).FetchHoldings(context.Background())
		srv.Close()
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
			continue
		}
		if got := symbols(holdings); !reflect.DeepEqual(got, want[name]) {
			t.Errorf("%s: expected %v, got %v", name, want[name], got)
		}
	}
}

func TestCoinTracker_Errors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := NewCoinTracker(srv.URL, "key", "", 5*time.Second).FetchHoldings(context.Background())
		srv.Close()
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}

	_, err := NewCoinTracker("http://127.0.0.1:0", "", "", time.Second).FetchHoldings(context.Background())
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials, got %v", err)
	}
}

func TestCoinbase_SignedAccounts(t *testing.T) {
	fixed := time.Unix(1700000000, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantSig := Sign("secret", "1700000000", "GET", "/v2/accounts", "")
		if got := r.Header.Get("CB-ACCESS-SIGN"); got != wantSig {
			t.Errorf("expected signature %q, got %q", wantSig, got)
		}
		if got := r.Header.Get("CB-ACCESS-TIMESTAMP"); got != "1700000000" {
			t.Errorf("expected timestamp %q, got %q", "1700000000", got)
		}
		if got := r.Header.Get("CB-ACCESS-KEY"); got != "key" {
			t.Errorf("expected key %q, got %q", "key", got)
		}
		w.Write([]byte(`{"data":[
			{"currency":{"code":"BTC"},"balance":{"amount":"0.1","currency":"BTC"},"native_balance":{"amount":"6000.00","currency":"USD"}},
			{"currency":"ETH","balance":{"amount":"3","currency":"ETH"},"native_balance":{"amount":"9000.00","currency":"USD"}},
			{"currency":{"code":"USD"},"balance":{"amount":"500","currency":"USD"},"native_balance":{"amount":"500","currency":"USD"}},
			{"currency":{"code":"SOL"},"balance":{"amount":"0","currency":"SOL"},"native_balance":{"amount":"0","currency":"USD"}},
			{"currency":{"code":"SHIB"},"balance":{"amount":"1000","currency":"SHIB"},"native_balance":{"amount":"12.5","currency":"USD"}}
		]}`))
	}))
	defer srv.Close()

	cb := NewCoinbase(srv.URL, "key", "secret", "", "", 5*time.Second)
	cb.now = func() time.Time { return fixed }
	holdings, err := cb.FetchHoldings(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := symbols(holdings); !reflect.DeepEqual(got, []string{"ETH", "BTC"}) {
		t.Errorf("expected [ETH BTC], got %v", got)
	}
	if !holdings[1].Amount.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("expected amount 0.1, got %s", holdings[1].Amount)
	}
}

func TestSign_Known(t *testing.T) {
	a := Sign("secret", "1", "GET", "/v2/accounts", "")
	b := Sign("secret", "2", "GET", "/v2/accounts", "")
	if a == b {
		t.Error("expected signature to depend on timestamp")
	}
	if a != Sign("secret", "1", "GET", "/v2/accounts", "") {
		t.Error("expected deterministic signature")
	}
}

func TestFile_RoundTripAndFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.json")
	in := []model.Holding{
		{Symbol: "btc", Amount: decimal.NewFromFloat(0.2), ValueUSD: decimal.NewFromInt(12000)},
		{Symbol: "eth", Amount: decimal.NewFromInt(5), ValueUSD: decimal.NewFromInt(15000)},
		{Symbol: "pepe", Amount: decimal.NewFromInt(100), ValueUSD: decimal.NewFromInt(3)},
	}
	if err := SaveHoldings(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	holdings, err := NewFile(path).FetchHoldings(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := symbols(holdings); !reflect.DeepEqual(got, []string{"ETH", "BTC"}) {
		t.Errorf("expected [ETH BTC], got %v", got)
	}
}

func TestLoadHoldings_Missing(t *testing.T) {
	holdings, err := LoadHoldings(filepath.Join(t.TempDir(), "none.json"))
	if err != nil || len(holdings) != 0 {
		t.Errorf("expected empty holdings, got %v %v", holdings, err)
	}
}
