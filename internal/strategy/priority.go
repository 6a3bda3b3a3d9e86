package strategy

import (
	"sort"

	"CryptoSentinel/internal/model"
)

// SignalPriority is the base priority of each signal.
var SignalPriority = map[model.Signal]int{
	model.StrongBuy:  100,
	model.StrongSell: 90,
	model.Buy:        70,
	model.Sell:       60,
	model.Hold:       10,
}

// Priority returns the attention priority of a recommendation.
func Priority(rec *model.Recommendation) int {
	p := SignalPriority[rec.Signal]
	switch {
	case rec.HoldingValue > 10000:
		p += 20
	case rec.HoldingValue > 1000:
		p += 10
	}
	p += 5 * len(rec.Alerts)
	switch rec.Confidence {
	case model.ConfidenceHigh:
		p += 15
	case model.ConfidenceMedium:
		p += 5
	}
	return p
}

// Prioritize returns the recommendations ordered by descending priority.
// Equal priorities keep their input order. The input slice is not modified.
func Prioritize(recs []*model.Recommendation) []*model.Recommendation {
	out := append([]*model.Recommendation(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		return Priority(out[i]) > Priority(out[j])
	})
	return out
}
