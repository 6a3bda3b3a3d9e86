package strategy

import (
	"time"

	"CryptoSentinel/internal/calculator"
	"CryptoSentinel/internal/classifier"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/target"
)

// Tiers maps minimum scores to signals, highest first.
var Tiers = []struct {
	MinScore int
	Signal   model.Signal
}{
	{50, model.StrongBuy},
	{20, model.Buy},
	{-19, model.Hold},
	{-49, model.Sell},
}

// DefaultSignal is the signal for scores at or below -50.
const DefaultSignal = model.StrongSell

// ClassifyScore maps a total score to a signal.
func ClassifyScore(score int) model.Signal {
	for _, t := range Tiers {
		if score >= t.MinScore {
			return t.Signal
		}
	}
	return DefaultSignal
}

// ClassifyConfidence maps the number of reasons to a confidence level.
func ClassifyConfidence(reasons int) model.Confidence {
	switch {
	case reasons >= 6:
		return model.ConfidenceHigh
	case reasons >= 4:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

// Score adds up every factor. No factor short-circuits another.
func Score(sig model.Signals, snap *model.Snapshot, symbol string) (int, []string, []string) {
	factors := []factor{
		scoreTrend(sig.Trend),
		scoreMomentum(sig.Momentum, snap, symbol),
		scoreVolatility(sig.Volatility, symbol),
	}
	score := 0
	reasons := []string{}
	alerts := []string{}
	for _, f := range factors {
		score += f.Points
		reasons = append(reasons, f.Reasons...)
		alerts = append(alerts, f.Alerts...)
	}
	return score, reasons, alerts
}

// Analyze runs the full pipeline for one symbol: indicators, signals, score, targets and summary.
// The series must hold at least one point.
func Analyze(symbol string, series *model.PriceSeries, holdingValue float64) *model.Recommendation {
	ind := calculator.Compute(series)
	snap := ind.Snapshot()
	sig := classifier.Classify(ind)

	score, reasons, alerts := Score(sig, snap, symbol)
	signal := ClassifyScore(score)

	return &model.Recommendation{
		Symbol:       symbol,
		Signal:       signal,
		Score:        score,
		Confidence:   ClassifyConfidence(len(reasons)),
		Reasons:      reasons,
		Alerts:       alerts,
		Summary:      Summarize(symbol, signal, score, sig),
		HoldingValue: holdingValue,
		CurrentPrice: snap.Price,
		Targets:      target.Calculate(ind, snap, signal),
		Indicators:   *snap,
		Signals:      sig,
		AnalyzedAt:   time.Now(),
	}
}
