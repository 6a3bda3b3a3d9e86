package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/guregu/null/v5"
	log "github.com/sirupsen/logrus"

	"CryptoSentinel/internal/model"
)

// Indicator windows.
const (
	RSIPeriod        = 14
	StochasticPeriod = 14
	StochasticSmooth = 3
	SMAShort         = 20
	SMALong          = 50
	EMAFast          = 12
	EMASlow          = 26
	MACDSignal       = 9
	BollingerPeriod  = 20
	BollingerDev     = 2.0
	ATRPeriod        = 14
)

// indicator computes one or more columns and names the fields they fill.
type indicator struct {
	name    string
	compute func(prices []float64) ([][]null.Float, error)
	fields  func(p *model.IndicatorPoint) []*null.Float
}

var indicators = []indicator{
	{
		name: "rsi",
		compute: func(prices []float64) ([][]null.Float, error) {
			rsi, err := CalculateRSI(prices, RSIPeriod)
			return [][]null.Float{rsi}, err
		},
		fields: func(p *model.IndicatorPoint) []*null.Float { return []*null.Float{&p.RSI} },
	},
	{
		name: "stochastic",
		compute: func(prices []float64) ([][]null.Float, error) {
			st, err := CalculateStochastic(prices, StochasticPeriod, StochasticSmooth)
			if err != nil {
				return nil, err
			}
			return [][]null.Float{st.K, st.D}, nil
		},
		fields: func(p *model.IndicatorPoint) []*null.Float { return []*null.Float{&p.StochK, &p.StochD} },
	},
	{
		name: "sma20",
		compute: func(prices []float64) ([][]null.Float, error) {
			sma, err := CalculateSMA(prices, SMAShort)
			return [][]null.Float{sma}, err
		},
		fields: func(p *model.IndicatorPoint) []*null.Float { return []*null.Float{&p.SMA20} },
	},
	{
		name: "sma50",
		compute: func(prices []float64) ([][]null.Float, error) {
			sma, err := CalculateSMA(prices, SMALong)
			return [][]null.Float{sma}, err
		},
		fields: func(p *model.IndicatorPoint) []*null.Float { return []*null.Float{&p.SMA50} },
	},
	{
		name: "ema12",
		compute: func(prices []float64) ([][]null.Float, error) {
			ema, err := CalculateEMA(prices, EMAFast)
			return [][]null.Float{ema}, err
		},
		fields: func(p *model.IndicatorPoint) []*null.Float { return []*null.Float{&p.EMA12} },
	},
	{
		name: "ema26",
		compute: func(prices []float64) ([][]null.Float, error) {
			ema, err := CalculateEMA(prices, EMASlow)
			return [][]null.Float{ema}, err
		},
		fields: func(p *model.IndicatorPoint) []*null.Float { return []*null.Float{&p.EMA26} },
	},
	{
		name: "macd",
		compute: func(prices []float64) ([][]null.Float, error) {
			m, err := CalculateMACD(prices, EMAFast, EMASlow, MACDSignal)
			if err != nil {
				return nil, err
			}
			return [][]null.Float{m.Line, m.Signal, m.Histogram}, nil
		},
		fields: func(p *model.IndicatorPoint) []*null.Float {
			return []*null.Float{&p.MACD, &p.MACDSignal, &p.MACDHist}
		},
	},
	{
		name: "bollinger",
		compute: func(prices []float64) ([][]null.Float, error) {
			bb, err := CalculateBollinger(prices, BollingerPeriod, BollingerDev)
			if err != nil {
				return nil, err
			}
			return [][]null.Float{bb.Upper, bb.Middle, bb.Lower, bb.Width}, nil
		},
		fields: func(p *model.IndicatorPoint) []*null.Float {
			return []*null.Float{&p.BBUpper, &p.BBMiddle, &p.BBLower, &p.BBWidth}
		},
	},
	{
		name: "atr",
		compute: func(prices []float64) ([][]null.Float, error) {
			atr, err := CalculateATR(prices, ATRPeriod)
			return [][]null.Float{atr}, err
		},
		fields: func(p *model.IndicatorPoint) []*null.Float { return []*null.Float{&p.ATR} },
	},
}

// Compute builds the indicator series for a price series. It never fails: an indicator
// that lacks data or errors leaves its columns unavailable without affecting the others.
func Compute(series *model.PriceSeries) *model.IndicatorSeries {
	out := &model.IndicatorSeries{
		Symbol: series.Symbol,
		Points: make([]model.IndicatorPoint, series.Len()),
	}
	for i, p := range series.Points {
		out.Points[i].PricePoint = p
	}
	if series.Len() < 2 {
		return out
	}

	prices := series.Prices()
	for _, ind := range indicators {
		cols, err := run(ind, prices)
		if err != nil {
			if errors.Is(err, ErrInsufficientData) {
				log.Debugf("%s %s: %v", series.Symbol, ind.name, err)
			} else {
				log.WithFields(log.Fields{"symbol": series.Symbol, "indicator": ind.name}).
					Warnf("indicator calculation failed: %v", err)
			}
			continue
		}
		for i := range out.Points {
			fields := ind.fields(&out.Points[i])
			for c, f := range fields {
				*f = cols[c][i]
			}
		}
	}
	return out
}

// run computes an indicator, converting panics and malformed output into errors.
func run(ind indicator, prices []float64) (cols [][]null.Float, err error) {
	defer func() {
		if r := recover(); r != nil {
			cols, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	cols, err = ind.compute(prices)
	if err != nil {
		return nil, err
	}
	if len(cols) != len(ind.fields(&model.IndicatorPoint{})) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(ind.fields(&model.IndicatorPoint{})), len(cols))
	}
	for _, c := range cols {
		if len(c) != len(prices) {
			return nil, fmt.Errorf("column length %d, want %d", len(c), len(prices))
		}
		for i, v := range c {
			if v.Valid && (math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0)) {
				c[i] = null.Float{}
			}
		}
	}
	return cols, nil
}
