package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"CryptoSentinel/internal/display"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/strategy"
)

// DefaultTopN is how many recommendations a Telegram report carries.
const DefaultTopN = 5

// FormatReport formats prioritized recommendations into a Telegram HTML message.
// Only the first topN recommendations are detailed; topN <= 0 means all.
func FormatReport(recs []*model.Recommendation, topN int, at time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>CryptoSentinel</b> | %s\n\n", at.Format("2006-01-02 15:04")))
	if len(recs) == 0 {
		b.WriteString("No recommendations this run.")
		return b.String()
	}

	if alerts := display.AllAlerts(recs); len(alerts) > 0 {
		b.WriteString("🚨 <b>Alerts</b>\n")
		for _, a := range alerts {
			b.WriteString(html.EscapeString(a) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("📋 <b>Actions</b>\n")
	groups := display.ActionGroups(recs)
	for _, s := range display.ActionOrder {
		if symbols := groups[s]; len(symbols) > 0 {
			b.WriteString(fmt.Sprintf("%s: %s\n", display.SignalName(s), strings.Join(symbols, ", ")))
		}
	}
	b.WriteString("\n")

	shown := recs
	if topN > 0 && len(shown) > topN {
		shown = shown[:topN]
	}
	for _, r := range shown {
		b.WriteString(FormatRecommendation(r))
		b.WriteString("\n")
	}
	if len(shown) < len(recs) {
		b.WriteString(fmt.Sprintf("<i>+%d more</i>\n\n", len(recs)-len(shown)))
	}

	b.WriteString("<i>" + html.EscapeString(display.Disclaimer) + "</i>")
	return b.String()
}

// FormatRecommendation formats a single recommendation block.
func FormatRecommendation(r *model.Recommendation) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b> %s | %s\n", html.EscapeString(r.Symbol), display.Money(r.CurrentPrice), strategy.SignalLabels[r.Signal]))
	b.WriteString(fmt.Sprintf("Score: %+d | Confidence: %s\n", r.Score, r.Confidence))
	if r.HoldingValue > 0 {
		b.WriteString(fmt.Sprintf("Holding: %s\n", display.Money(r.HoldingValue)))
	}
	for _, l := range display.TargetLines(r) {
		b.WriteString(fmt.Sprintf("  %s: %s\n", l.Label, l.Value))
	}
	for _, reason := range r.Reasons {
		b.WriteString("  • " + html.EscapeString(reason) + "\n")
	}
	return b.String()
}

// FormatTop formats a short ranking, used by the /top command.
func FormatTop(recs []*model.Recommendation, n int) string {
	if len(recs) == 0 {
		return "No analysis has run yet."
	}
	if n > 0 && len(recs) > n {
		recs = recs[:n]
	}
	var b strings.Builder
	b.WriteString("🏆 <b>Top recommendations</b>\n")
	for i, r := range recs {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> %s (%+d, %s)\n",
			i+1, html.EscapeString(r.Symbol), display.SignalName(r.Signal), r.Score, r.Confidence))
	}
	return b.String()
}
