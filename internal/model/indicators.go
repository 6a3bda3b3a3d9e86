package model

import "github.com/guregu/null/v5"

// IndicatorPoint holds the indicator values computed at one point of a series.
// Invalid values mean the indicator is unavailable at that point.
type IndicatorPoint struct {
	PricePoint

	RSI        null.Float
	StochK     null.Float
	StochD     null.Float
	SMA20      null.Float
	SMA50      null.Float
	EMA12      null.Float
	EMA26      null.Float
	MACD       null.Float
	MACDSignal null.Float
	MACDHist   null.Float
	BBUpper    null.Float
	BBMiddle   null.Float
	BBLower    null.Float
	BBWidth    null.Float
	ATR        null.Float
}

// IndicatorSeries is a price series extended with per-point indicator values.
type IndicatorSeries struct {
	Symbol string
	Points []IndicatorPoint
}

// Len returns the number of points.
func (s *IndicatorSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Prices returns the price column.
func (s *IndicatorSeries) Prices() []float64 {
	prices := make([]float64, s.Len())
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// Snapshot returns the values at the most recent point, or nil for an empty series.
func (s *IndicatorSeries) Snapshot() *Snapshot {
	if s.Len() == 0 {
		return nil
	}
	p := s.Points[len(s.Points)-1]
	return &Snapshot{IndicatorPoint: p}
}

// Previous returns the values at the point before the most recent one.
func (s *IndicatorSeries) Previous() (IndicatorPoint, bool) {
	if s.Len() < 2 {
		return IndicatorPoint{}, false
	}
	return s.Points[len(s.Points)-2], true
}

// Widths returns all available Bollinger width values.
func (s *IndicatorSeries) Widths() []float64 {
	var widths []float64
	for _, p := range s.Points {
		if p.BBWidth.Valid {
			widths = append(widths, p.BBWidth.Float64)
		}
	}
	return widths
}

// Snapshot is the indicator state at the latest point, consumed by classification,
// scoring and target calculation.
type Snapshot struct {
	IndicatorPoint
}
