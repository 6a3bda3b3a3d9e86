package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/strategy"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#3B82F6"))

	blockStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1)

	bullishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	bearishStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

func signalStyle(s model.Signal) lipgloss.Style {
	switch {
	case s.IsBullish():
		return bullishStyle
	case s.IsBearish():
		return bearishStyle
	default:
		return neutralStyle
	}
}

func kindStyle(kind string) lipgloss.Style {
	switch kind {
	case "gain":
		return bullishStyle
	case "loss":
		return bearishStyle
	default:
		return neutralStyle
	}
}

func alertStyle(alert string) lipgloss.Style {
	switch {
	case strings.Contains(alert, "🚀"), strings.Contains(alert, "💡"):
		return bullishStyle
	case strings.Contains(alert, "⚠️"), strings.Contains(alert, "📉"):
		return bearishStyle
	default:
		return neutralStyle
	}
}

// Render writes the full console report for already prioritized recommendations.
func Render(w io.Writer, recs []*model.Recommendation, at time.Time) {
	fmt.Fprintln(w, titleStyle.Render("Crypto Technical Analysis | "+at.Format("2006-01-02 15:04")))
	fmt.Fprintln(w)

	if alerts := AllAlerts(recs); len(alerts) > 0 {
		fmt.Fprintln(w, headerStyle.Render("🚨 Alert Summary"))
		for _, a := range alerts {
			fmt.Fprintln(w, alertStyle(a).Render(a))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, headerStyle.Render("📋 Action Summary"))
	groups := ActionGroups(recs)
	for _, s := range ActionOrder {
		symbols := groups[s]
		if len(symbols) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s  %d  %s\n",
			signalStyle(s).Render(fmt.Sprintf("%-12s", SignalName(s))), len(symbols), strings.Join(symbols, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render("📈 Technical Analysis Recommendations"))
	for _, r := range recs {
		fmt.Fprintln(w, blockStyle.Render(Block(r)))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Analysis complete! Found %d recommendations.\n", len(recs))
	fmt.Fprintln(w, neutralStyle.Render(Disclaimer))
}

// Block renders a single recommendation.
func Block(r *model.Recommendation) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s - %s", r.Symbol, Money(r.CurrentPrice))))
	b.WriteString("\n")
	if r.HoldingValue > 0 {
		b.WriteString(fmt.Sprintf("Holdings Value: %s\n", Money(r.HoldingValue)))
	}
	b.WriteString(signalStyle(r.Signal).Render(r.Summary))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Signal: %s | Score: %+d | Confidence: %s | Priority: %d\n",
		SignalName(r.Signal), r.Score, strings.ToUpper(string(r.Confidence)), strategy.Priority(r)))

	if lines := TargetLines(r); len(lines) > 0 {
		b.WriteString("\n🎯 TARGET PRICES:\n")
		for _, l := range lines {
			b.WriteString(fmt.Sprintf("  %-12s %s\n", l.Label+":", kindStyle(l.Kind).Render(l.Value)))
		}
	}
	if len(r.Alerts) > 0 {
		b.WriteString("\n🔔 ALERTS:\n")
		for _, a := range r.Alerts {
			b.WriteString("  " + a + "\n")
		}
	}
	if len(r.Reasons) > 0 {
		b.WriteString("\nAnalysis:\n")
		for _, reason := range r.Reasons {
			b.WriteString("  " + mutedStyle.Render(reason) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
