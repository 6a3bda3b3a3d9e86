package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/guregu/null/v5"
)

func linear(n int, from, to float64) []float64 {
	prices := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range prices {
		prices[i] = from + step*float64(i)
	}
	return prices
}

func constant(n int, v float64) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = v
	}
	return prices
}

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []null.Float{{}, {}, null.FloatFrom(2), null.FloatFrom(3), null.FloatFrom(4)}
	for i := range want {
		if sma[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], sma[i])
		}
	}
}

func TestCalculateSMA_Errors(t *testing.T) {
	if _, err := CalculateSMA([]float64{1, 2}, 3); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := CalculateSMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCalculateEMA_Constant(t *testing.T) {
	ema, err := CalculateEMA(constant(30, 100), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range ema {
		if i < 11 {
			if v.Valid {
				t.Errorf("index %d: expected unavailable, got %.4f", i, v.Float64)
			}
			continue
		}
		if !v.Valid || v.Float64 != 100 {
			t.Errorf("index %d: expected 100, got %v", i, v)
		}
	}
}

func TestCalculateEMA_FollowsTrend(t *testing.T) {
	prices := linear(60, 100, 160)
	fast, _ := CalculateEMA(prices, 12)
	slow, _ := CalculateEMA(prices, 26)
	last := len(prices) - 1
	if !(fast[last].Float64 > slow[last].Float64) {
		t.Errorf("expected EMA12 > EMA26 on rising prices, got %.4f <= %.4f", fast[last].Float64, slow[last].Float64)
	}
	if fast[last].Float64 >= prices[last] {
		t.Errorf("expected EMA12 to lag price %.2f, got %.4f", prices[last], fast[last].Float64)
	}
}

func TestCalculateRSI(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   null.Float
	}{
		{"rising", linear(20, 100, 120), null.FloatFrom(100)},
		{"flat", constant(20, 50), null.Float{}},
		{"alternating", []float64{10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10}, null.FloatFrom(50)},
	}
	for _, tt := range tests {
		rsi, err := CalculateRSI(tt.prices, 14)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if rsi[13].Valid {
			t.Errorf("%s: expected index 13 unavailable, got %.2f", tt.name, rsi[13].Float64)
		}
		if rsi[14].Valid != tt.want.Valid || math.Abs(rsi[14].Float64-tt.want.Float64) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, rsi[14])
		}
	}
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	if _, err := CalculateRSI(linear(14, 1, 14), 14); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestCalculateRSI_Bounded(t *testing.T) {
	prices := make([]float64, 80)
	for i := range prices {
		prices[i] = 100 + 10*math.Sin(float64(i)/3)
	}
	rsi, _ := CalculateRSI(prices, 14)
	for i, v := range rsi {
		if v.Valid && (v.Float64 < 0 || v.Float64 > 100) {
			t.Errorf("index %d: RSI %.2f out of range", i, v.Float64)
		}
	}
}

func TestCalculateStochastic(t *testing.T) {
	st, err := CalculateStochastic(linear(20, 1, 20), 14, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.K[12].Valid {
		t.Errorf("expected %%K unavailable at index 12")
	}
	if !st.K[13].Valid || math.Abs(st.K[13].Float64-100) > 1e-9 {
		t.Errorf("expected %%K 100 at index 13, got %v", st.K[13])
	}
	if st.D[14].Valid {
		t.Errorf("expected %%D unavailable at index 14, got %.2f", st.D[14].Float64)
	}
	if !st.D[15].Valid || math.Abs(st.D[15].Float64-100) > 1e-9 {
		t.Errorf("expected %%D 100 at index 15, got %v", st.D[15])
	}
}

func TestCalculateStochastic_FlatWindow(t *testing.T) {
	st, err := CalculateStochastic(constant(20, 7), 14, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range st.K {
		if st.K[i].Valid || st.D[i].Valid {
			t.Errorf("index %d: expected unavailable for flat window", i)
		}
	}
}

func TestCalculateBollinger_Containment(t *testing.T) {
	prices := make([]float64, 100)
	for i := range prices {
		prices[i] = 200 + 15*math.Sin(float64(i)/4) + float64(i%7)
	}
	bb, err := CalculateBollinger(prices, 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range prices {
		if i < 19 {
			if bb.Upper[i].Valid {
				t.Errorf("index %d: expected unavailable band", i)
			}
			continue
		}
		if !bb.Upper[i].Valid || !bb.Lower[i].Valid || !bb.Middle[i].Valid {
			t.Fatalf("index %d: expected bands", i)
		}
		if !(bb.Lower[i].Float64 <= bb.Middle[i].Float64 && bb.Middle[i].Float64 <= bb.Upper[i].Float64) {
			t.Errorf("index %d: bands out of order %.4f %.4f %.4f", i, bb.Lower[i].Float64, bb.Middle[i].Float64, bb.Upper[i].Float64)
		}
		want := (bb.Upper[i].Float64 - bb.Lower[i].Float64) / bb.Middle[i].Float64
		if math.Abs(bb.Width[i].Float64-want) > 1e-12 {
			t.Errorf("index %d: expected width %.6f, got %.6f", i, want, bb.Width[i].Float64)
		}
	}
}

func TestCalculateBollinger_MicroPrice(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 1e-6 * (1 + 0.03*math.Sin(float64(i)/2))
	}
	bb, err := CalculateBollinger(prices, 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 19; i < len(prices); i++ {
		if !bb.Upper[i].Valid || !bb.Middle[i].Valid || !bb.Lower[i].Valid || !bb.Width[i].Valid {
			t.Fatalf("index %d: expected bands for a volatile micro-priced series", i)
		}
		if !(bb.Lower[i].Float64 < bb.Middle[i].Float64 && bb.Middle[i].Float64 < bb.Upper[i].Float64) {
			t.Errorf("index %d: bands out of order %.3e %.3e %.3e", i, bb.Lower[i].Float64, bb.Middle[i].Float64, bb.Upper[i].Float64)
		}
		if w := bb.Width[i].Float64; w <= 0.01 || w >= 1 {
			t.Errorf("index %d: unexpected width %.6f", i, w)
		}
	}
}

func TestCalculateBollinger_Flat(t *testing.T) {
	bb, err := CalculateBollinger(constant(30, 100), 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range bb.Width {
		if bb.Upper[i].Valid || bb.Lower[i].Valid || bb.Width[i].Valid {
			t.Errorf("index %d: expected flat window unavailable", i)
		}
	}
}

func TestCalculateATR(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + float64(i%2)
	}
	atr, err := CalculateATR(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atr[13].Valid {
		t.Errorf("expected ATR unavailable at index 13")
	}
	if !atr[14].Valid || atr[14].Float64 <= 0 {
		t.Errorf("expected positive ATR at index 14, got %v", atr[14])
	}
	if last := atr[len(atr)-1]; math.Abs(last.Float64-1) > 0.1 {
		t.Errorf("expected ATR near 1, got %.4f", last.Float64)
	}
}

func TestCalculateMACD_Availability(t *testing.T) {
	m, err := CalculateMACD(linear(60, 100, 160), 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Line[24].Valid || !m.Line[25].Valid {
		t.Errorf("expected MACD line to start at index 25")
	}
	if m.Signal[32].Valid || !m.Signal[33].Valid {
		t.Errorf("expected signal line to start at index 33")
	}
	last := len(m.Line) - 1
	if !(m.Line[last].Float64 > m.Signal[last].Float64) {
		t.Errorf("expected MACD above signal on rising prices")
	}
	if diff := m.Line[last].Float64 - m.Signal[last].Float64 - m.Histogram[last].Float64; math.Abs(diff) > 1e-12 {
		t.Errorf("histogram mismatch by %g", diff)
	}
}

func TestCenteredExtremes(t *testing.T) {
	values := []float64{5, 3, 1, 3, 5, 4, 6}
	lows := CenteredMin(values, 5)
	highs := CenteredMax(values, 5)
	for _, i := range []int{0, 1, 5, 6} {
		if lows[i].Valid || highs[i].Valid {
			t.Errorf("index %d: expected unavailable at window edge", i)
		}
	}
	if lows[2].Float64 != 1 || highs[2].Float64 != 5 {
		t.Errorf("index 2: expected min 1 max 5, got %v %v", lows[2], highs[2])
	}
	if lows[4].Float64 != 1 || highs[4].Float64 != 6 {
		t.Errorf("index 4: expected min 1 max 6, got %v %v", lows[4], highs[4])
	}
}
