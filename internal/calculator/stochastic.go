package calculator

import "github.com/guregu/null/v5"

// Stochastic holds %K and %D columns.
type Stochastic struct {
	K []null.Float
	D []null.Float
}

// CalculateStochastic computes %K over the trailing window using the price as high, low and close,
// and %D as the smoothing-period mean of %K. A window with no range leaves %K unavailable.
func CalculateStochastic(prices []float64, period, smoothing int) (*Stochastic, error) {
	if period <= 0 || smoothing <= 0 {
		return nil, errPeriod
	}
	if len(prices) < period {
		return nil, ErrInsufficientData
	}
	lows := RollingMin(prices, period)
	highs := RollingMax(prices, period)

	st := &Stochastic{
		K: make([]null.Float, len(prices)),
		D: make([]null.Float, len(prices)),
	}
	for i, p := range prices {
		if !lows[i].Valid || !highs[i].Valid {
			continue
		}
		span := highs[i].Float64 - lows[i].Float64
		if span == 0 {
			continue
		}
		st.K[i] = null.FloatFrom(100 * (p - lows[i].Float64) / span)
	}
	for i := smoothing - 1; i < len(prices); i++ {
		if d, ok := meanOf(st.K[i-smoothing+1 : i+1]); ok {
			st.D[i] = null.FloatFrom(d)
		}
	}
	return st, nil
}
