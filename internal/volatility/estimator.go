// Package volatility turns historical closing prices into the annualized
// volatility figure the pricing models consume.
package volatility

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultSigma is used when there is not enough history to estimate.
	DefaultSigma = 0.3

	// DefaultTradingDays annualizes daily returns.
	DefaultTradingDays = 252

	// DefaultLookbackDays is how much history the shell requests, roughly
	// two calendar years.
	DefaultLookbackDays = 730
)

// Estimator computes annualized historical volatility from daily closes.
// The zero value is not useful; use DefaultEstimator or set every field.
type Estimator struct {
	TradingDays  int     // annualization base
	LookbackDays int     // history window the caller should fetch
	Default      float64 // sigma returned when history is too short
}

// Estimate is the outcome of one estimation, including the diagnostics the
// session reports alongside the price.
type Estimate struct {
	Sigma     float64 `json:"sigma"`
	Samples   int     `json:"samples"`   // number of returns used
	Defaulted bool    `json:"defaulted"` // true when history was insufficient
}

func DefaultEstimator() Estimator {
	return Estimator{
		TradingDays:  DefaultTradingDays,
		LookbackDays: DefaultLookbackDays,
		Default:      DefaultSigma,
	}
}

// Estimate computes sigma from an ordered sequence of daily closes.
//
// Simple daily returns (close[i]-close[i-1])/close[i-1] are annualized with
// the population standard deviation times sqrt(TradingDays). Fewer than two
// closes cannot produce a return, so the configured default is returned with
// Defaulted set; insufficient history is a diagnostic, not an error.
func (e Estimator) Estimate(closes []float64) Estimate {
	if len(closes) < 2 {
		return Estimate{Sigma: e.Default, Defaulted: true}
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}

	sigma := stat.PopStdDev(returns, nil) * math.Sqrt(float64(e.TradingDays))
	return Estimate{Sigma: sigma, Samples: len(returns)}
}
