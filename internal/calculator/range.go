package calculator

import (
	"math"

	"github.com/guregu/null/v5"
)

// RollingMin returns the minimum of each trailing window. Values before index window-1 are unavailable.
func RollingMin(values []float64, window int) []null.Float {
	return rolling(values, window, window-1, math.Min)
}

// RollingMax returns the maximum of each trailing window. Values before index window-1 are unavailable.
func RollingMax(values []float64, window int) []null.Float {
	return rolling(values, window, window-1, math.Max)
}

// CenteredMin returns the minimum of each window centered on the point.
// Points without a full window on both sides are unavailable.
func CenteredMin(values []float64, window int) []null.Float {
	return rolling(values, window, window/2, math.Min)
}

// CenteredMax returns the maximum of each window centered on the point.
// Points without a full window on both sides are unavailable.
func CenteredMax(values []float64, window int) []null.Float {
	return rolling(values, window, window/2, math.Max)
}

// rolling scans windows of the given size; lag is how many points of each window precede the point.
func rolling(values []float64, window, lag int, pick func(a, b float64) float64) []null.Float {
	out := make([]null.Float, len(values))
	if window <= 0 {
		return out
	}
	for i := range values {
		start := i - lag
		end := start + window
		if start < 0 || end > len(values) {
			continue
		}
		v := values[start]
		for j := start + 1; j < end; j++ {
			v = pick(v, values[j])
		}
		out[i] = null.FloatFrom(v)
	}
	return out
}
