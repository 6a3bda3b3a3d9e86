package classifier

import (
	"fmt"
	"sort"

	"github.com/guregu/null/v5"

	"CryptoSentinel/internal/model"
)

// Thresholds for oscillators and volatility.
const (
	RSIOversold          = 30.0
	RSIOverbought        = 70.0
	StochOversold        = 20.0
	StochOverbought      = 80.0
	HighVolatilityFactor = 1.5
	LowVolatilityFactor  = 0.5
)

// Classify derives all signals for the latest point of an indicator series.
func Classify(series *model.IndicatorSeries) model.Signals {
	snap := series.Snapshot()
	if snap == nil {
		return model.Signals{
			Trend:      model.TrendSignals{ShortTerm: model.TrendNeutral, MediumTerm: model.TrendNeutral, LongTerm: model.TrendNeutral},
			Momentum:   model.MomentumSignals{RSI: model.OscillatorNeutral, MACD: model.TrendNeutral, Stochastic: model.OscillatorNeutral},
			Volatility: model.VolatilitySignals{BandPosition: model.BandMiddle, Level: model.VolatilityNormal},
		}
	}
	var prev *model.IndicatorPoint
	if p, ok := series.Previous(); ok {
		prev = &p
	}
	return model.Signals{
		Trend:      ClassifyTrend(snap),
		Momentum:   ClassifyMomentum(snap, prev),
		Volatility: ClassifyVolatility(snap, series.Widths()),
	}
}

// ClassifyTrend compares EMA12/EMA26, price/SMA20 and SMA20/SMA50.
func ClassifyTrend(snap *model.Snapshot) model.TrendSignals {
	return model.TrendSignals{
		ShortTerm:  compare(snap.EMA12, snap.EMA26),
		MediumTerm: compare(null.FloatFrom(snap.Price), snap.SMA20),
		LongTerm:   compare(snap.SMA20, snap.SMA50),
	}
}

// ClassifyMomentum evaluates RSI, MACD and Stochastic. prev is the point before the
// snapshot and may be nil; crossovers need it.
func ClassifyMomentum(snap *model.Snapshot, prev *model.IndicatorPoint) model.MomentumSignals {
	m := model.MomentumSignals{
		RSI:        model.OscillatorNeutral,
		MACD:       model.TrendNeutral,
		Stochastic: model.OscillatorNeutral,
	}

	if snap.RSI.Valid {
		rsi := snap.RSI.Float64
		switch {
		case rsi < RSIOversold:
			m.RSI = model.Oversold
			m.Conditions = append(m.Conditions, fmt.Sprintf("RSI is oversold (%.1f)", rsi))
		case rsi > RSIOverbought:
			m.RSI = model.Overbought
			m.Conditions = append(m.Conditions, fmt.Sprintf("RSI is overbought (%.1f)", rsi))
		}
	}

	if snap.MACD.Valid && snap.MACDSignal.Valid {
		m.MACD = compare(snap.MACD, snap.MACDSignal)
		if prev != nil && prev.MACD.Valid && prev.MACDSignal.Valid {
			before := prev.MACD.Float64 - prev.MACDSignal.Float64
			now := snap.MACD.Float64 - snap.MACDSignal.Float64
			switch {
			case before <= 0 && now > 0:
				m.Conditions = append(m.Conditions, "MACD bullish crossover detected")
			case before >= 0 && now < 0:
				m.Conditions = append(m.Conditions, "MACD bearish crossover detected")
			}
		}
	}

	if snap.StochK.Valid {
		switch k := snap.StochK.Float64; {
		case k < StochOversold:
			m.Stochastic = model.Oversold
		case k > StochOverbought:
			m.Stochastic = model.Overbought
		}
	}
	return m
}

// ClassifyVolatility locates the price within the bands and compares the current
// band width against the median of the width history.
func ClassifyVolatility(snap *model.Snapshot, widths []float64) model.VolatilitySignals {
	v := model.VolatilitySignals{BandPosition: model.BandMiddle, Level: model.VolatilityNormal}

	if snap.BBUpper.Valid && snap.BBLower.Valid {
		switch {
		case snap.Price >= snap.BBUpper.Float64:
			v.BandPosition = model.BandUpper
			v.Conditions = append(v.Conditions, "Price at upper Bollinger Band")
		case snap.Price <= snap.BBLower.Float64:
			v.BandPosition = model.BandLower
			v.Conditions = append(v.Conditions, "Price at lower Bollinger Band")
		}
	}

	if snap.BBWidth.Valid && len(widths) > 0 {
		median := Median(widths)
		switch w := snap.BBWidth.Float64; {
		case w > median*HighVolatilityFactor:
			v.Level = model.VolatilityHigh
		case w < median*LowVolatilityFactor:
			v.Level = model.VolatilityLow
			v.Conditions = append(v.Conditions, "Low volatility - potential breakout ahead")
		}
	}
	return v
}

// Median returns the median of values, or 0 for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// compare returns bullish when a > b, bearish when a < b, and neutral when equal or unavailable.
func compare(a, b null.Float) model.Trend {
	if !a.Valid || !b.Valid {
		return model.TrendNeutral
	}
	switch {
	case a.Float64 > b.Float64:
		return model.TrendBullish
	case a.Float64 < b.Float64:
		return model.TrendBearish
	default:
		return model.TrendNeutral
	}
}
