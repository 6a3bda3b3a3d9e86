package model

import (
	"time"

	"github.com/guregu/null/v5"
	"github.com/shopspring/decimal"
)

// TargetPrices holds the price levels derived for a recommendation.
type TargetPrices struct {
	BuyTarget       null.Float
	SellTarget      null.Float
	StopLoss        null.Float
	RiskRewardRatio null.Float
}

// Recommendation is the final output of the analysis pipeline.
type Recommendation struct {
	Symbol       string
	Signal       Signal
	Score        int
	Confidence   Confidence
	Reasons      []string
	Alerts       []string
	Summary      string
	HoldingValue float64
	CurrentPrice float64
	Targets      TargetPrices
	Indicators   Snapshot
	Signals      Signals
	AnalyzedAt   time.Time
}

// Holding is a single portfolio position.
type Holding struct {
	Symbol   string          `json:"symbol"`
	Amount   decimal.Decimal `json:"amount"`
	ValueUSD decimal.Decimal `json:"value_usd"`
}

// Value returns the USD value as a float.
func (h Holding) Value() float64 {
	v, _ := h.ValueUSD.Float64()
	return v
}
