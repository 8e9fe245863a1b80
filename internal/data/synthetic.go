package data

import (
	"math/rand"
	"sync"
)

// synthDataProvider implements Provider with a seeded random walk, for
// offline use and tests.
type synthDataProvider struct {
	mu        sync.Mutex // guards rng; one provider serves many goroutines
	rng       *rand.Rand
	startSpot float64
	secondary Provider
}

// NewSyntheticProvider returns a provider generating a plausible daily
// random walk starting near startSpot. A fixed seed makes runs repeatable.
func NewSyntheticProvider(seed int64, startSpot float64) Provider {
	if startSpot <= 0 {
		startSpot = DefaultSpot
	}
	return &synthDataProvider{
		rng:       rand.New(rand.NewSource(seed)),
		startSpot: startSpot,
	}
}

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

func (synthDataProv *synthDataProvider) GetCurrentPrice(ticker string) (float64, error) {
	closes, err := synthDataProv.GetHistoricalCloses(ticker, 30)
	if err != nil || len(closes) == 0 {
		return synthDataProv.startSpot, nil
	}
	return closes[len(closes)-1], nil
}

func (synthDataProv *synthDataProvider) GetHistoricalCloses(ticker string, lookbackDays int) ([]float64, error) {
	// Roughly 5 trading days per 7 calendar days.
	n := lookbackDays * 5 / 7
	if n < 1 {
		n = 1
	}
	price := synthDataProv.startSpot
	closes := make([]float64, 0, n)
	synthDataProv.mu.Lock()
	defer synthDataProv.mu.Unlock()
	for i := 0; i < n; i++ {
		price += synthDataProv.rng.NormFloat64() * 0.01 * price
		if price < 1 {
			price = 1
		}
		closes = append(closes, price)
	}
	return closes, nil
}
