package strategy

import (
	"testing"

	"CryptoSentinel/internal/model"
)

func TestPriority(t *testing.T) {
	tests := []struct {
		rec  model.Recommendation
		want int
	}{
		{model.Recommendation{Signal: model.Hold, Confidence: model.ConfidenceLow}, 10},
		{model.Recommendation{Signal: model.StrongBuy, HoldingValue: 10001, Confidence: model.ConfidenceHigh, Alerts: []string{"a", "b"}}, 145},
		{model.Recommendation{Signal: model.StrongSell, HoldingValue: 10000, Confidence: model.ConfidenceMedium}, 105},
		{model.Recommendation{Signal: model.Buy, HoldingValue: 1000, Alerts: []string{"a"}}, 75},
		{model.Recommendation{Signal: model.Sell, HoldingValue: 1000.5}, 70},
	}
	for _, tt := range tests {
		rec := tt.rec
		if got := Priority(&rec); got != tt.want {
			t.Errorf("%s/%.1f: expected %d, got %d", rec.Signal, rec.HoldingValue, tt.want, got)
		}
	}
}

func TestPrioritize_HoldingValue(t *testing.T) {
	small := &model.Recommendation{Symbol: "SMALL", Signal: model.Buy, HoldingValue: 500}
	large := &model.Recommendation{Symbol: "LARGE", Signal: model.Buy, HoldingValue: 15000}
	got := Prioritize([]*model.Recommendation{small, large})
	if got[0].Symbol != "LARGE" {
		t.Errorf("expected LARGE first, got %s", got[0].Symbol)
	}
}

func TestPrioritize_StableAndSorted(t *testing.T) {
	in := []*model.Recommendation{
		{Symbol: "A", Signal: model.Hold},
		{Symbol: "B", Signal: model.Sell},
		{Symbol: "C", Signal: model.Hold},
		{Symbol: "D", Signal: model.StrongBuy},
		{Symbol: "E", Signal: model.Sell},
	}
	got := Prioritize(in)
	want := []string{"D", "B", "E", "A", "C"}
	for i, rec := range got {
		if rec.Symbol != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], rec.Symbol)
		}
	}
	if in[0].Symbol != "A" || in[3].Symbol != "D" {
		t.Error("input slice was reordered")
	}
}
