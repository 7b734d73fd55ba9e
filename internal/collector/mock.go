package collector

import (
	"math"
	"math/rand/v2"
	"time"

	"FinPeek/internal/model"
)

const benchmarkBasePrice = 420.0

// MockGenerator produces synthetic quotes and series used whenever the live
// provider fails. Prices are stable per symbol; only a slow time-based drift
// and the cosmetic noise in series points vary.
type MockGenerator struct {
	Now  func() time.Time
	Rand func() float64
}

// NewMockGenerator returns a generator using the wall clock and the global random source.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{Now: time.Now, Rand: rand.Float64}
}

func symbolHash(symbol string) int32 {
	var h int32
	for _, r := range symbol {
		h = h*31 + int32(r)
	}
	return h
}

// Price returns the deterministic pseudo-price for symbol at the generator's current instant.
func (m *MockGenerator) Price(symbol string) float64 {
	h := int64(symbolHash(symbol))
	if h < 0 {
		h = -h
	}
	base := float64(h%500 + 50)
	drift := 5 * math.Sin(float64(m.Now().UnixMilli())/100000)
	return math.Max(base+drift, 10)
}

// Quote returns a synthetic quote whose price is Price(symbol).
func (m *MockGenerator) Quote(symbol string) model.Quote {
	price := m.Price(symbol)
	change := (m.Rand() - 0.5) * price * 0.05
	return model.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: change / (price - change) * 100,
		Currency:      "USD",
	}
}

// BenchmarkQuote returns a synthetic quote around the fixed benchmark level.
func (m *MockGenerator) BenchmarkQuote(symbol string) model.Quote {
	price := benchmarkBasePrice + (m.Rand()-0.5)*20
	change := (m.Rand() - 0.5) * 4
	return model.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: change / price * 100,
		Currency:      "USD",
		Volume:        (m.Rand()*50 + 10) * 1e6,
	}
}

// Series returns tf.Points() closes oscillating within about 2% of Price(symbol).
func (m *MockGenerator) Series(symbol string, tf model.Timeframe) model.Series {
	return m.wave(m.Price(symbol), tf.Points(), 4, 0.02)
}

// BenchmarkSeries returns a flatter wave around the fixed benchmark level.
func (m *MockGenerator) BenchmarkSeries(tf model.Timeframe) model.Series {
	return m.wave(benchmarkBasePrice, tf.Points(), 3, 0.015)
}

func (m *MockGenerator) wave(base float64, n int, periods, amplitude float64) model.Series {
	points := make(model.Series, n)
	divisor := float64(n) / periods
	for i := 0; i < n; i++ {
		variation := (math.Sin(float64(i)/divisor) + m.Rand() - 0.5) * base * amplitude
		points[i] = base + variation
	}
	return points
}
