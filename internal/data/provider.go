// Package data supplies the market inputs the pricing core consumes: a live
// spot price and a window of historical daily closes.
//
// Providers chain: each one may carry a secondary provider consulted when it
// cannot answer itself. Retrieval failure is never fatal to a pricing
// request; the helpers below fall back to documented constants and let the
// volatility estimator handle short history.
package data

import (
	"github.com/purduemomentum/options-pricing-project/internal/logger"
)

// DefaultSpot is the spot price assumed when every provider fails.
const DefaultSpot = 100.0

// Provider supplies market data for one underlying.
type Provider interface {
	// Secondary returns the fallback provider, if any.
	Secondary() Provider

	// GetCurrentPrice returns the latest traded price for ticker.
	GetCurrentPrice(ticker string) (float64, error)

	// GetHistoricalCloses returns daily closes for the last lookbackDays
	// calendar days, oldest first. It may return fewer points than the
	// window covers.
	GetHistoricalCloses(ticker string, lookbackDays int) ([]float64, error)
}

// SpotOrFallback fetches the current price, falling back to DefaultSpot on
// any retrieval failure. The failure is logged, not surfaced.
func SpotOrFallback(p Provider, ticker string) float64 {
	spot, err := p.GetCurrentPrice(ticker)
	if err != nil {
		logger.Errorf("spot fetch for %s failed, using fallback %.2f: %v", ticker, DefaultSpot, err)
		return DefaultSpot
	}
	if spot <= 0 {
		logger.Errorf("spot fetch for %s returned %.4f, using fallback %.2f", ticker, spot, DefaultSpot)
		return DefaultSpot
	}
	return spot
}

// HistoryOrEmpty fetches historical closes, returning an empty slice on
// failure so short-history handling stays in one place: the volatility
// estimator's default path.
func HistoryOrEmpty(p Provider, ticker string, lookbackDays int) []float64 {
	closes, err := p.GetHistoricalCloses(ticker, lookbackDays)
	if err != nil {
		logger.Errorf("history fetch for %s failed, estimator will default: %v", ticker, err)
		return nil
	}
	return closes
}
