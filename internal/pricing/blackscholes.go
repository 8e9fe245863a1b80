package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BSResult is a Black-Scholes valuation plus the intermediate terms callers
// want for diagnostics.
type BSResult struct {
	Price float64 `json:"price"`
	D1    float64 `json:"d1"`
	D2    float64 `json:"d2"`
}

// BlackScholes prices a European option in closed form.
//
// With continuous dividend yield delta:
//
//	d1 = (ln(S/K) + (r - delta + sigma^2/2) T) / (sigma sqrt(T))
//	d2 = d1 - sigma sqrt(T)
//	call = e^{-delta T} S N(d1) - e^{-r T} K N(d2)
//	put  = e^{-r T} K N(-d2) - e^{-delta T} S N(-d1)
//
// Returns a DomainError when S, K, T or sigma is non-positive.
func BlackScholes(p Parameters) (BSResult, error) {
	if err := p.validate(); err != nil {
		return BSResult{}, err
	}

	sqrtT := math.Sqrt(p.TimeToExpiry)
	d1 := (math.Log(p.Spot/p.Strike) +
		(p.RiskFree-p.DividendYield+0.5*p.Volatility*p.Volatility)*p.TimeToExpiry) /
		(p.Volatility * sqrtT)
	d2 := d1 - p.Volatility*sqrtT

	discSpot := p.Spot * math.Exp(-p.DividendYield*p.TimeToExpiry)
	discStrike := p.Strike * math.Exp(-p.RiskFree*p.TimeToExpiry)

	norm := distuv.UnitNormal
	var price float64
	if p.Type == Call {
		price = discSpot*norm.CDF(d1) - discStrike*norm.CDF(d2)
	} else {
		price = discStrike*norm.CDF(-d2) - discSpot*norm.CDF(-d1)
	}

	return BSResult{Price: price, D1: d1, D2: d2}, nil
}
