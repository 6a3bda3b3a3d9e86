package classifier

import (
	"strings"
	"testing"

	"github.com/guregu/null/v5"

	"CryptoSentinel/internal/model"
)

func snapshot(price float64) *model.Snapshot {
	return &model.Snapshot{IndicatorPoint: model.IndicatorPoint{PricePoint: model.PricePoint{Price: price}}}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name                 string
		ema12, ema26         null.Float
		sma20, sma50         null.Float
		short, medium, long model.Trend
	}{
		{"bullish", null.FloatFrom(11), null.FloatFrom(10), null.FloatFrom(95), null.FloatFrom(90), model.TrendBullish, model.TrendBullish, model.TrendBullish},
		{"bearish", null.FloatFrom(9), null.FloatFrom(10), null.FloatFrom(105), null.FloatFrom(110), model.TrendBearish, model.TrendBearish, model.TrendBearish},
		{"equal", null.FloatFrom(10), null.FloatFrom(10), null.FloatFrom(100), null.FloatFrom(100), model.TrendNeutral, model.TrendNeutral, model.TrendNeutral},
		{"unavailable", null.Float{}, null.FloatFrom(10), null.Float{}, null.FloatFrom(90), model.TrendNeutral, model.TrendNeutral, model.TrendNeutral},
	}
	for _, tt := range tests {
		snap := snapshot(100)
		snap.EMA12, snap.EMA26, snap.SMA20, snap.SMA50 = tt.ema12, tt.ema26, tt.sma20, tt.sma50
		got := ClassifyTrend(snap)
		if got.ShortTerm != tt.short || got.MediumTerm != tt.medium || got.LongTerm != tt.long {
			t.Errorf("%s: expected %s/%s/%s, got %s/%s/%s", tt.name, tt.short, tt.medium, tt.long, got.ShortTerm, got.MediumTerm, got.LongTerm)
		}
	}
}

func TestClassifyMomentum_RSI(t *testing.T) {
	tests := []struct {
		rsi       float64
		want      model.Oscillator
		condition string
	}{
		{29.94, model.Oversold, "RSI is oversold (29.9)"},
		{30, model.OscillatorNeutral, ""},
		{70, model.OscillatorNeutral, ""},
		{70.06, model.Overbought, "RSI is overbought (70.1)"},
	}
	for _, tt := range tests {
		snap := snapshot(100)
		snap.RSI = null.FloatFrom(tt.rsi)
		got := ClassifyMomentum(snap, nil)
		if got.RSI != tt.want {
			t.Errorf("rsi %.2f: expected %q, got %q", tt.rsi, tt.want, got.RSI)
		}
		if tt.condition == "" && len(got.Conditions) != 0 {
			t.Errorf("rsi %.2f: expected no condition, got %v", tt.rsi, got.Conditions)
		}
		if tt.condition != "" && (len(got.Conditions) != 1 || got.Conditions[0] != tt.condition) {
			t.Errorf("rsi %.2f: expected %q, got %v", tt.rsi, tt.condition, got.Conditions)
		}
	}
}

func TestClassifyMomentum_Stochastic(t *testing.T) {
	tests := []struct {
		k    float64
		want model.Oscillator
	}{
		{19.9, model.Oversold},
		{20, model.OscillatorNeutral},
		{80, model.OscillatorNeutral},
		{80.1, model.Overbought},
	}
	for _, tt := range tests {
		snap := snapshot(100)
		snap.StochK = null.FloatFrom(tt.k)
		if got := ClassifyMomentum(snap, nil).Stochastic; got != tt.want {
			t.Errorf("%%K %.1f: expected %q, got %q", tt.k, tt.want, got)
		}
	}
}

func TestClassifyMomentum_Crossover(t *testing.T) {
	tests := []struct {
		name      string
		prev, now float64
		direction model.Trend
		condition string
	}{
		{"bullish", -1, 1, model.TrendBullish, "MACD bullish crossover detected"},
		{"bearish", 1, -1, model.TrendBearish, "MACD bearish crossover detected"},
		{"from zero up", 0, 1, model.TrendBullish, "MACD bullish crossover detected"},
		{"from zero down", 0, -1, model.TrendBearish, "MACD bearish crossover detected"},
		{"stays above", 1, 2, model.TrendBullish, ""},
		{"stays below", -2, -1, model.TrendBearish, ""},
	}
	for _, tt := range tests {
		prev := &model.IndicatorPoint{MACD: null.FloatFrom(10 + tt.prev), MACDSignal: null.FloatFrom(10)}
		snap := snapshot(100)
		snap.MACD, snap.MACDSignal = null.FloatFrom(10+tt.now), null.FloatFrom(10)
		got := ClassifyMomentum(snap, prev)
		if got.MACD != tt.direction {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.direction, got.MACD)
		}
		joined := strings.Join(got.Conditions, "|")
		if joined != tt.condition {
			t.Errorf("%s: expected condition %q, got %q", tt.name, tt.condition, joined)
		}
	}
}

func TestClassifyMomentum_CrossoverNeedsPrevious(t *testing.T) {
	snap := snapshot(100)
	snap.MACD, snap.MACDSignal = null.FloatFrom(1), null.FloatFrom(0)
	prev := &model.IndicatorPoint{MACD: null.FloatFrom(-1)}
	for _, p := range []*model.IndicatorPoint{nil, prev} {
		got := ClassifyMomentum(snap, p)
		if len(got.Conditions) != 0 {
			t.Errorf("expected no crossover without previous values, got %v", got.Conditions)
		}
		if got.MACD != model.TrendBullish {
			t.Errorf("expected bullish MACD, got %q", got.MACD)
		}
	}
}

func TestClassifyVolatility_BandPosition(t *testing.T) {
	tests := []struct {
		price float64
		want  model.BandPosition
	}{
		{110, model.BandUpper},
		{111, model.BandUpper},
		{100, model.BandMiddle},
		{90, model.BandLower},
		{85, model.BandLower},
	}
	for _, tt := range tests {
		snap := snapshot(tt.price)
		snap.BBUpper, snap.BBLower = null.FloatFrom(110), null.FloatFrom(90)
		if got := ClassifyVolatility(snap, nil).BandPosition; got != tt.want {
			t.Errorf("price %.0f: expected %q, got %q", tt.price, tt.want, got)
		}
	}

	snap := snapshot(200)
	snap.BBUpper = null.FloatFrom(110)
	if got := ClassifyVolatility(snap, nil).BandPosition; got != model.BandMiddle {
		t.Errorf("expected middle with one band missing, got %q", got)
	}
}

func TestClassifyVolatility_Level(t *testing.T) {
	history := []float64{0.10, 0.10, 0.10, 0.10}
	tests := []struct {
		width     null.Float
		want      model.VolatilityLevel
		condition bool
	}{
		{null.FloatFrom(0.16), model.VolatilityHigh, false},
		{null.FloatFrom(0.15), model.VolatilityNormal, false},
		{null.FloatFrom(0.05), model.VolatilityNormal, false},
		{null.FloatFrom(0.04), model.VolatilityLow, true},
		{null.Float{}, model.VolatilityNormal, false},
	}
	for _, tt := range tests {
		snap := snapshot(100)
		snap.BBWidth = tt.width
		got := ClassifyVolatility(snap, history)
		if got.Level != tt.want {
			t.Errorf("width %v: expected %q, got %q", tt.width, tt.want, got.Level)
		}
		if has := len(got.Conditions) == 1 && got.Conditions[0] == "Low volatility - potential breakout ahead"; has != tt.condition {
			t.Errorf("width %v: unexpected conditions %v", tt.width, got.Conditions)
		}
	}
}

func TestClassify_EmptySeries(t *testing.T) {
	got := Classify(&model.IndicatorSeries{})
	if got.Trend.ShortTerm != model.TrendNeutral || got.Momentum.RSI != model.OscillatorNeutral || got.Volatility.BandPosition != model.BandMiddle {
		t.Errorf("expected neutral signals, got %+v", got)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{nil, 0},
		{[]float64{3}, 3},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		if got := Median(tt.values); got != tt.want {
			t.Errorf("median %v: expected %.2f, got %.2f", tt.values, tt.want, got)
		}
	}
}
