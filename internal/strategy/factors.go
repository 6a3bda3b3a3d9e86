package strategy

import (
	"fmt"
	"strings"

	"CryptoSentinel/internal/model"
)

// Factor weights.
const (
	WeightShortTrend  = 10
	WeightMediumTrend = 15
	WeightLongTrend   = 20
	WeightRSI         = 25
	WeightMACD        = 15
	WeightCrossover   = 10
	WeightStochastic  = 10
	WeightBollinger   = 15
)

// factor is the contribution of one group of indicators to the score.
type factor struct {
	Points  int
	Reasons []string
	Alerts  []string
}

func (f *factor) add(points int, reason string) {
	f.Points += points
	if reason != "" {
		f.Reasons = append(f.Reasons, reason)
	}
}

// scoreTrend scores short, medium and long term trend alignment.
func scoreTrend(trend model.TrendSignals) factor {
	var f factor
	switch trend.ShortTerm {
	case model.TrendBullish:
		f.add(WeightShortTrend, "✓ Short-term trend is bullish (EMA crossover)")
	case model.TrendBearish:
		f.add(-WeightShortTrend, "✗ Short-term trend is bearish (EMA crossover)")
	}
	switch trend.MediumTerm {
	case model.TrendBullish:
		f.add(WeightMediumTrend, "✓ Price is above 20-day SMA (medium-term uptrend)")
	case model.TrendBearish:
		f.add(-WeightMediumTrend, "✗ Price is below 20-day SMA (medium-term downtrend)")
	}
	switch trend.LongTerm {
	case model.TrendBullish:
		f.add(WeightLongTrend, "✓ Long-term trend is bullish (SMA 20 > SMA 50)")
	case model.TrendBearish:
		f.add(-WeightLongTrend, "✗ Long-term trend is bearish (SMA 20 < SMA 50)")
	}
	return f
}

// scoreMomentum scores RSI extremes, MACD direction, MACD crossovers and Stochastic extremes.
func scoreMomentum(m model.MomentumSignals, snap *model.Snapshot, symbol string) factor {
	var f factor

	if snap.RSI.Valid {
		switch m.RSI {
		case model.Oversold:
			f.add(WeightRSI, fmt.Sprintf("✓ RSI indicates oversold conditions (%.1f)", snap.RSI.Float64))
			f.Alerts = append(f.Alerts, fmt.Sprintf("🔔 %s: RSI oversold - potential buying opportunity", symbol))
		case model.Overbought:
			f.add(-WeightRSI, fmt.Sprintf("✗ RSI indicates overbought conditions (%.1f)", snap.RSI.Float64))
			f.Alerts = append(f.Alerts, fmt.Sprintf("⚠️  %s: RSI overbought - consider taking profits", symbol))
		}
	}

	switch m.MACD {
	case model.TrendBullish:
		f.add(WeightMACD, "✓ MACD is bullish")
	case model.TrendBearish:
		f.add(-WeightMACD, "✗ MACD is bearish")
	}

	for _, c := range m.Conditions {
		lower := strings.ToLower(c)
		switch {
		case strings.Contains(lower, "bullish crossover"):
			f.Alerts = append(f.Alerts, fmt.Sprintf("🚀 %s: %s", symbol, c))
			f.add(WeightCrossover, "")
		case strings.Contains(lower, "bearish crossover"):
			f.Alerts = append(f.Alerts, fmt.Sprintf("📉 %s: %s", symbol, c))
			f.add(-WeightCrossover, "")
		}
	}

	switch m.Stochastic {
	case model.Oversold:
		f.add(WeightStochastic, "")
	case model.Overbought:
		f.add(-WeightStochastic, "")
	}
	return f
}

// scoreVolatility scores Bollinger Band touches and flags low volatility.
func scoreVolatility(v model.VolatilitySignals, symbol string) factor {
	var f factor
	switch v.BandPosition {
	case model.BandLower:
		f.add(WeightBollinger, "✓ Price at lower Bollinger Band (potential reversal)")
		f.Alerts = append(f.Alerts, fmt.Sprintf("💡 %s: Price touching lower Bollinger Band", symbol))
	case model.BandUpper:
		f.add(-WeightBollinger, "✗ Price at upper Bollinger Band (potential pullback)")
		f.Alerts = append(f.Alerts, fmt.Sprintf("⚠️  %s: Price touching upper Bollinger Band", symbol))
	}

	for _, c := range v.Conditions {
		if strings.Contains(strings.ToLower(c), "low volatility") {
			f.Alerts = append(f.Alerts, fmt.Sprintf("⚡ %s: %s", symbol, c))
			f.Reasons = append(f.Reasons, "⚡ Low volatility detected - watch for breakout")
		}
	}
	return f
}
