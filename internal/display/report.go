package display

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"CryptoSentinel/internal/model"
)

// Disclaimer closes every report.
const Disclaimer = "⚠️  Disclaimer: This is for informational purposes only. Not financial advice."

// ActionOrder is the order signal groups are listed in the action summary.
var ActionOrder = []model.Signal{model.StrongBuy, model.Buy, model.Sell, model.StrongSell, model.Hold}

// TargetLine is one labelled price level of a recommendation.
type TargetLine struct {
	Label string
	Value string
	Kind  string // "gain", "loss" or "neutral"
}

// TargetLines returns the levels worth showing for the recommendation's signal.
func TargetLines(rec *model.Recommendation) []TargetLine {
	t := rec.Targets
	var lines []TargetLine
	switch {
	case rec.Signal.IsBullish():
		entry := rec.CurrentPrice
		if t.BuyTarget.Valid {
			entry = t.BuyTarget.Float64
			lines = append(lines, TargetLine{"Buy Target", Money(entry), "gain"})
		}
		if t.SellTarget.Valid && entry > 0 {
			pct := (t.SellTarget.Float64 - entry) / entry * 100
			lines = append(lines, TargetLine{"Sell Target", fmt.Sprintf("%s (%+.1f%%)", Money(t.SellTarget.Float64), pct), "gain"})
		}
		if t.StopLoss.Valid && entry > 0 {
			pct := (t.StopLoss.Float64 - entry) / entry * 100
			lines = append(lines, TargetLine{"Stop Loss", fmt.Sprintf("%s (%.1f%%)", Money(t.StopLoss.Float64), pct), "loss"})
		}
		if t.RiskRewardRatio.Valid && t.RiskRewardRatio.Float64 > 0 {
			kind := "loss"
			switch rr := t.RiskRewardRatio.Float64; {
			case rr >= 2:
				kind = "gain"
			case rr >= 1:
				kind = "neutral"
			}
			lines = append(lines, TargetLine{"Risk/Reward", fmt.Sprintf("%.2f:1", t.RiskRewardRatio.Float64), kind})
		}
	case rec.Signal.IsBearish():
		if t.SellTarget.Valid {
			lines = append(lines, TargetLine{"Sell Target", Money(t.SellTarget.Float64), "loss"})
		}
		if t.BuyTarget.Valid && rec.CurrentPrice > 0 {
			pct := (rec.CurrentPrice - t.BuyTarget.Float64) / rec.CurrentPrice * 100
			lines = append(lines, TargetLine{"Re-entry", fmt.Sprintf("%s (-%.1f%%)", Money(t.BuyTarget.Float64), pct), "gain"})
		}
		if t.StopLoss.Valid {
			lines = append(lines, TargetLine{"Stop Loss", Money(t.StopLoss.Float64), "loss"})
		}
	default:
		if t.BuyTarget.Valid {
			lines = append(lines, TargetLine{"Support", Money(t.BuyTarget.Float64), "neutral"})
		}
		if t.SellTarget.Valid {
			lines = append(lines, TargetLine{"Resistance", Money(t.SellTarget.Float64), "neutral"})
		}
	}
	return lines
}

// ActionGroups maps each signal to the symbols that received it, in input order.
func ActionGroups(recs []*model.Recommendation) map[model.Signal][]string {
	groups := make(map[model.Signal][]string)
	for _, r := range recs {
		groups[r.Signal] = append(groups[r.Signal], r.Symbol)
	}
	return groups
}

// AllAlerts flattens the alerts of every recommendation.
func AllAlerts(recs []*model.Recommendation) []string {
	var alerts []string
	for _, r := range recs {
		alerts = append(alerts, r.Alerts...)
	}
	return alerts
}

// SignalName renders a signal as upper-case words, e.g. "STRONG BUY".
func SignalName(s model.Signal) string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}

// Money formats a USD amount with thousands separators. Prices below one
// dollar keep six decimals.
func Money(v float64) string {
	places := int32(2)
	if v != 0 && v < 1 && v > -1 {
		places = 6
	}
	s := decimal.NewFromFloat(v).StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}
