package models

import "go.uber.org/atomic"

// Metrics stores cache statistics
type Metrics struct {
	Hits        *atomic.Int64
	Misses      *atomic.Int64
	Evictions   *atomic.Int64
	Expirations *atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		Hits:        atomic.NewInt64(0),
		Misses:      atomic.NewInt64(0),
		Evictions:   atomic.NewInt64(0),
		Expirations: atomic.NewInt64(0),
	}
}

// HitRate is hits / (hits + misses), or 0 before any lookup has happened.
func (m *Metrics) HitRate() float64 {
	hits := m.Hits.Load()
	total := hits + m.Misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.Hits.Store(0)
	m.Misses.Store(0)
	m.Evictions.Store(0)
	m.Expirations.Store(0)
}
