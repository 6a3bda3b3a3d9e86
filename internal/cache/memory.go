package cache

import (
	"context"
	"sync"

	"CryptoSentinel/internal/model"
)

// Memory is an in-process cache owned by a single run.
type Memory struct {
	mu     sync.RWMutex
	series map[string]*model.PriceSeries
}

// NewMemory creates an empty cache.
func NewMemory() *Memory {
	return &Memory{series: make(map[string]*model.PriceSeries)}
}

func (m *Memory) Get(_ context.Context, key string) (*model.PriceSeries, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.series[key]
	return s, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, series *model.PriceSeries) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[key] = series
	return nil
}

// Len returns the number of cached series.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.series)
}

// Reset drops every entry, starting a new run scope.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series = make(map[string]*model.PriceSeries)
}
