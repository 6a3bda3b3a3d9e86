package model

// Trend is the direction of a trend component.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// Oscillator is the state of a bounded momentum oscillator.
type Oscillator string

const (
	Oversold          Oscillator = "oversold"
	Overbought        Oscillator = "overbought"
	OscillatorNeutral Oscillator = "neutral"
)

// BandPosition locates the price relative to the Bollinger Bands.
type BandPosition string

const (
	BandUpper  BandPosition = "upper"
	BandMiddle BandPosition = "middle"
	BandLower  BandPosition = "lower"
)

// VolatilityLevel compares current band width to its history.
type VolatilityLevel string

const (
	VolatilityHigh   VolatilityLevel = "high"
	VolatilityNormal VolatilityLevel = "normal"
	VolatilityLow    VolatilityLevel = "low"
)

// TrendSignals holds the short, medium and long term trend directions.
type TrendSignals struct {
	ShortTerm  Trend
	MediumTerm Trend
	LongTerm   Trend
}

// MomentumSignals holds oscillator states and emitted conditions.
type MomentumSignals struct {
	RSI        Oscillator
	MACD       Trend
	Stochastic Oscillator
	Conditions []string
}

// VolatilitySignals holds the band position, volatility level and emitted conditions.
type VolatilitySignals struct {
	BandPosition BandPosition
	Level        VolatilityLevel
	Conditions   []string
}

// Signals bundles all classifier outputs for one snapshot.
type Signals struct {
	Trend      TrendSignals
	Momentum   MomentumSignals
	Volatility VolatilitySignals
}

// Signal is the discrete trading recommendation.
type Signal string

const (
	StrongBuy  Signal = "strong_buy"
	Buy        Signal = "buy"
	Hold       Signal = "hold"
	Sell       Signal = "sell"
	StrongSell Signal = "strong_sell"
)

// IsBullish reports whether the signal is buy or strong_buy.
func (s Signal) IsBullish() bool { return s == Buy || s == StrongBuy }

// IsBearish reports whether the signal is sell or strong_sell.
func (s Signal) IsBearish() bool { return s == Sell || s == StrongSell }

// Confidence reflects how many factors contributed to the recommendation.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)
