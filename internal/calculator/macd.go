package calculator

import "github.com/guregu/null/v5"

// MACD holds the three MACD columns.
type MACD struct {
	Line      []null.Float
	Signal    []null.Float
	Histogram []null.Float
}

// CalculateMACD computes EMA(fast) - EMA(slow), its EMA(signal) signal line and the histogram.
// The signal line is seeded at the first available MACD value.
func CalculateMACD(prices []float64, fast, slow, signal int) (*MACD, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, errPeriod
	}
	if len(prices) < slow {
		return nil, ErrInsufficientData
	}
	fastEMA, err := CalculateEMA(prices, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := CalculateEMA(prices, slow)
	if err != nil {
		return nil, err
	}

	n := len(prices)
	m := &MACD{
		Line:      make([]null.Float, n),
		Signal:    make([]null.Float, n),
		Histogram: make([]null.Float, n),
	}
	start := -1
	for i := 0; i < n; i++ {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			m.Line[i] = null.FloatFrom(fastEMA[i].Float64 - slowEMA[i].Float64)
			if start < 0 {
				start = i
			}
		}
	}
	if start < 0 {
		return m, nil
	}

	line := make([]float64, n-start)
	for i := start; i < n; i++ {
		line[i-start] = m.Line[i].Float64
	}
	sig := smooth(line, 2.0/float64(signal+1))
	for j := signal - 1; j < len(sig); j++ {
		i := start + j
		m.Signal[i] = null.FloatFrom(sig[j])
		m.Histogram[i] = null.FloatFrom(m.Line[i].Float64 - sig[j])
	}
	return m, nil
}
