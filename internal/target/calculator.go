package target

import (
	"github.com/guregu/null/v5"

	"CryptoSentinel/internal/model"
)

// Fallback multipliers applied to the current price when no level is available.
const (
	bullishBuyFallback  = 0.97
	bullishSellFallback = 1.08
	bearishSellFallback = 1.02
	bearishBuyFallback  = 0.90
	neutralBuyFallback  = 0.95
	neutralSellFallback = 1.05
	neutralStopFallback = 0.92

	atrStopMultiplier = 1.5
	atrDefaultRatio   = 0.02
	rebuyRiskRatio    = 0.05
)

// Calculate derives buy, sell and stop levels for the given signal.
func Calculate(series *model.IndicatorSeries, snap *model.Snapshot, signal model.Signal) model.TargetPrices {
	prices := series.Prices()
	switch {
	case signal.IsBullish():
		return bullish(prices, snap)
	case signal.IsBearish():
		return bearish(prices, snap)
	default:
		return neutral(snap)
	}
}

func bullish(prices []float64, snap *model.Snapshot) model.TargetPrices {
	price := snap.Price
	buy := lowerOf(snap.BBLower, FindSupport(prices, price), price*bullishBuyFallback)
	sell := upperOf(snap.BBUpper, FindResistance(prices, price), price*bullishSellFallback)
	stop := buy - atrStopMultiplier*atr(snap)

	rr := 0.0
	if risk := buy - stop; risk > 0 {
		rr = (sell - buy) / risk
	}
	return model.TargetPrices{
		BuyTarget:       null.FloatFrom(buy),
		SellTarget:      null.FloatFrom(sell),
		StopLoss:        null.FloatFrom(stop),
		RiskRewardRatio: null.FloatFrom(rr),
	}
}

func bearish(prices []float64, snap *model.Snapshot) model.TargetPrices {
	price := snap.Price
	var sell float64
	resistance := FindResistance(prices, price)
	switch {
	case resistance.Valid && resistance.Float64 > price:
		sell = resistance.Float64
	case snap.BBUpper.Valid && snap.BBUpper.Float64 > price:
		sell = snap.BBUpper.Float64
	default:
		sell = price * bearishSellFallback
	}
	buy := lowerOf(snap.BBLower, FindSupport(prices, price), price*bearishBuyFallback)
	stop := sell + atrStopMultiplier*atr(snap)

	rr := 0.0
	if risk := buy * rebuyRiskRatio; risk > 0 {
		if r := (sell - buy) / risk; r > 0 {
			rr = r
		}
	}
	return model.TargetPrices{
		BuyTarget:       null.FloatFrom(buy),
		SellTarget:      null.FloatFrom(sell),
		StopLoss:        null.FloatFrom(stop),
		RiskRewardRatio: null.FloatFrom(rr),
	}
}

func neutral(snap *model.Snapshot) model.TargetPrices {
	price := snap.Price
	t := model.TargetPrices{
		BuyTarget:       null.FloatFrom(price * neutralBuyFallback),
		SellTarget:      null.FloatFrom(price * neutralSellFallback),
		StopLoss:        null.FloatFrom(price * neutralStopFallback),
		RiskRewardRatio: null.FloatFrom(1.0),
	}
	if snap.BBLower.Valid {
		t.BuyTarget = snap.BBLower
		t.StopLoss = null.FloatFrom(snap.BBLower.Float64 - atrStopMultiplier*atr(snap))
	}
	if snap.BBUpper.Valid {
		t.SellTarget = snap.BBUpper
	}
	return t
}

// atr returns the snapshot ATR, or 2% of the price when unavailable.
func atr(snap *model.Snapshot) float64 {
	if snap.ATR.Valid {
		return snap.ATR.Float64
	}
	return snap.Price * atrDefaultRatio
}

// lowerOf returns the smaller available level, or fallback when neither is available.
func lowerOf(a, b null.Float, fallback float64) float64 {
	switch {
	case a.Valid && b.Valid:
		return min(a.Float64, b.Float64)
	case a.Valid:
		return a.Float64
	case b.Valid:
		return b.Float64
	default:
		return fallback
	}
}

// upperOf returns the larger available level, or fallback when neither is available.
func upperOf(a, b null.Float, fallback float64) float64 {
	switch {
	case a.Valid && b.Valid:
		return max(a.Float64, b.Float64)
	case a.Valid:
		return a.Float64
	case b.Valid:
		return b.Float64
	default:
		return fallback
	}
}
