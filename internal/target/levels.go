package target

import (
	"github.com/guregu/null/v5"

	"CryptoSentinel/internal/calculator"
)

// Level detection windows.
const (
	MinLevelPoints = 20
	LevelLookback  = 30
	LevelWindow    = 5
)

// FindSupport returns the highest local minimum of the recent window strictly below current.
func FindSupport(prices []float64, current float64) null.Float {
	var level null.Float
	for _, c := range candidates(prices, calculator.CenteredMin) {
		if c < current && (!level.Valid || c > level.Float64) {
			level = null.FloatFrom(c)
		}
	}
	return level
}

// FindResistance returns the lowest local maximum of the recent window strictly above current.
func FindResistance(prices []float64, current float64) null.Float {
	var level null.Float
	for _, c := range candidates(prices, calculator.CenteredMax) {
		if c > current && (!level.Valid || c < level.Float64) {
			level = null.FloatFrom(c)
		}
	}
	return level
}

// candidates returns the recent prices that equal their centered rolling extreme.
func candidates(prices []float64, extremes func([]float64, int) []null.Float) []float64 {
	if len(prices) < MinLevelPoints {
		return nil
	}
	recent := prices
	if len(recent) > LevelLookback {
		recent = recent[len(recent)-LevelLookback:]
	}
	ext := extremes(recent, LevelWindow)
	var out []float64
	for i, p := range recent {
		if ext[i].Valid && p == ext[i].Float64 {
			out = append(out, p)
		}
	}
	return out
}
