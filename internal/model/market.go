package model

import "time"

// PricePoint is a single daily price observation.
type PricePoint struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds a chronologically ordered price history for one symbol.
type PriceSeries struct {
	Symbol    string       `json:"symbol"`
	Points    []PricePoint `json:"points"`
	Source    string       `json:"source"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// Len returns the number of points in the series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Prices returns the price column.
func (s *PriceSeries) Prices() []float64 {
	prices := make([]float64, s.Len())
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// Last returns the most recent point. The series must not be empty.
func (s *PriceSeries) Last() PricePoint {
	return s.Points[len(s.Points)-1]
}
