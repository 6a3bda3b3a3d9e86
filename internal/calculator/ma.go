package calculator

import (
	"errors"

	"github.com/guregu/null/v5"
	"github.com/markcheno/go-talib"
)

var (
	// ErrInsufficientData is returned when a series is shorter than an indicator window.
	ErrInsufficientData = errors.New("not enough data")

	errPeriod = errors.New("period must be positive")
)

// CalculateSMA computes the simple moving average over the given period for every point.
// Values before index period-1 are unavailable.
func CalculateSMA(prices []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	if len(prices) < period {
		return nil, ErrInsufficientData
	}
	sma := talib.Sma(prices, period)
	out := make([]null.Float, len(prices))
	for i := period - 1; i < len(prices); i++ {
		out[i] = null.FloatFrom(sma[i])
	}
	return out, nil
}

// CalculateEMA computes the exponential moving average with smoothing factor 2/(period+1),
// seeded with the first price. Values before index period-1 are unavailable.
func CalculateEMA(prices []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	if len(prices) < period {
		return nil, ErrInsufficientData
	}
	ema := smooth(prices, 2.0/float64(period+1))
	out := make([]null.Float, len(prices))
	for i := period - 1; i < len(prices); i++ {
		out[i] = null.FloatFrom(ema[i])
	}
	return out, nil
}

// smooth applies recursive exponential smoothing seeded with the first value.
func smooth(values []float64, alpha float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = out[i-1] + alpha*(values[i]-out[i-1])
	}
	return out
}

// meanOf returns the arithmetic mean of valid values in the window, and false if any is missing.
func meanOf(window []null.Float) (float64, bool) {
	if len(window) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range window {
		if !v.Valid {
			return 0, false
		}
		sum += v.Float64
	}
	return sum / float64(len(window)), true
}
