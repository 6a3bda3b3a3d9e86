package calculator

import "github.com/guregu/null/v5"

// CalculateRSI computes the Wilder-smoothed RSI over the given period for every point.
// The first value is available at index period. A window without any price movement
// has no defined RSI and stays unavailable.
func CalculateRSI(prices []float64, period int) ([]null.Float, error) {
	if period <= 0 {
		return nil, errPeriod
	}
	if len(prices) < period+1 {
		return nil, ErrInsufficientData
	}
	out := make([]null.Float, len(prices))

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) null.Float {
	if avgGain == 0 && avgLoss == 0 {
		return null.Float{}
	}
	if avgLoss == 0 {
		return null.FloatFrom(100)
	}
	rs := avgGain / avgLoss
	return null.FloatFrom(100.0 - 100.0/(1.0+rs))
}
