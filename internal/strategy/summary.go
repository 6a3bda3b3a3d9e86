package strategy

import (
	"fmt"
	"strings"

	"CryptoSentinel/internal/model"
)

// SignalLabels are the display labels of each signal.
var SignalLabels = map[model.Signal]string{
	model.StrongBuy:  "🟢 STRONG BUY",
	model.Buy:        "🟢 BUY",
	model.Hold:       "🟡 HOLD",
	model.Sell:       "🔴 SELL",
	model.StrongSell: "🔴 STRONG SELL",
}

// Summarize builds the one-line recommendation summary.
func Summarize(symbol string, signal model.Signal, score int, sig model.Signals) string {
	var trends []string
	switch sig.Trend.ShortTerm {
	case model.TrendBullish:
		trends = append(trends, "short-term uptrend")
	case model.TrendBearish:
		trends = append(trends, "short-term downtrend")
	}
	switch sig.Trend.LongTerm {
	case model.TrendBullish:
		trends = append(trends, "long-term uptrend")
	case model.TrendBearish:
		trends = append(trends, "long-term downtrend")
	}
	trendText := "neutral trend"
	if len(trends) > 0 {
		trendText = strings.Join(trends, ", ")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (Score: %+d) - %s is showing %s", SignalLabels[signal], score, symbol, trendText))
	if sig.Momentum.RSI == model.Oversold || sig.Momentum.RSI == model.Overbought {
		b.WriteString(fmt.Sprintf(" with %s RSI", sig.Momentum.RSI))
	}
	switch sig.Volatility.Level {
	case model.VolatilityHigh:
		b.WriteString(". High volatility - trade with caution")
	case model.VolatilityLow:
		b.WriteString(". Low volatility - potential breakout coming")
	}
	return b.String()
}
