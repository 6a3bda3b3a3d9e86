package calculator

import (
	"github.com/guregu/null/v5"
	"github.com/markcheno/go-talib"
)

// Bollinger holds the band columns and the relative band width.
type Bollinger struct {
	Upper  []null.Float
	Middle []null.Float
	Lower  []null.Float
	Width  []null.Float
}

// minBandDeviation is the relative deviation below which a window counts as flat.
const minBandDeviation = 1e-9

// CalculateBollinger computes SMA(period) bands at ±dev population standard deviations.
// Width is (upper-lower)/middle. Flat windows leave every band column unavailable.
// Prices are scaled by the first price before banding so the deviation keeps its
// precision for sub-cent assets.
func CalculateBollinger(prices []float64, period int, dev float64) (*Bollinger, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	if len(prices) < period {
		return nil, ErrInsufficientData
	}
	ref := prices[0]
	if ref <= 0 {
		ref = 1
	}
	scaled := make([]float64, len(prices))
	for i, p := range prices {
		scaled[i] = p / ref
	}
	upper, middle, lower := talib.BBands(scaled, period, dev, dev, talib.SMA)

	n := len(prices)
	bb := &Bollinger{
		Upper:  make([]null.Float, n),
		Middle: make([]null.Float, n),
		Lower:  make([]null.Float, n),
		Width:  make([]null.Float, n),
	}
	for i := period - 1; i < n; i++ {
		mid := middle[i]
		if mid <= 0 || (upper[i]-mid) <= mid*minBandDeviation {
			continue
		}
		u, m, l := upper[i]*ref, mid*ref, lower[i]*ref
		bb.Upper[i] = null.FloatFrom(u)
		bb.Middle[i] = null.FloatFrom(m)
		bb.Lower[i] = null.FloatFrom(l)
		bb.Width[i] = null.FloatFrom((u - l) / m)
	}
	return bb, nil
}

// CalculateATR computes Wilder's average true range using the price as high, low and close,
// which reduces the true range to the absolute price change. The first value is at index period.
func CalculateATR(prices []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	if len(prices) <= period {
		return nil, ErrInsufficientData
	}
	atr := talib.Atr(prices, prices, prices, period)
	out := make([]null.Float, len(prices))
	for i := period; i < len(prices); i++ {
		out[i] = null.FloatFrom(atr[i])
	}
	return out, nil
}
