// Package pricing implements the option valuation models: the Black-Scholes
// closed form for European exercise and a Cox-Ross-Rubinstein binomial lattice
// for American exercise.
//
// Both pricers consume the same Parameters value object and are pure
// functions: no state survives a call, and concurrent calls are safe.
package pricing

import "fmt"

// OptionType distinguishes calls from puts.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// ExerciseStyle distinguishes when the holder may exercise.
type ExerciseStyle string

const (
	European ExerciseStyle = "european"
	American ExerciseStyle = "american"
)

// Parameters carries everything a pricing model needs for one valuation.
// Both pricers share it so the field list exists exactly once.
type Parameters struct {
	Spot          float64    // S, current underlying price
	Strike        float64    // K
	TimeToExpiry  float64    // T, in years
	RiskFree      float64    // r, annualized, continuously compounded
	Volatility    float64    // sigma, annualized
	DividendYield float64    // delta, constant continuous yield
	Type          OptionType // call or put
}

// DomainError reports mathematically invalid pricing inputs: non-positive
// spot, strike, expiry or volatility, a bad step count, or a risk-neutral
// probability outside [0,1]. A DomainError is fatal to the request; the
// models never clamp their way past one.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return "pricing: " + e.Reason
}

func domainErrorf(format string, args ...any) error {
	return &DomainError{Reason: fmt.Sprintf(format, args...)}
}

// validate checks the preconditions shared by both models.
func (p Parameters) validate() error {
	switch {
	case p.Spot <= 0:
		return domainErrorf("spot must be positive, got %g", p.Spot)
	case p.Strike <= 0:
		return domainErrorf("strike must be positive, got %g", p.Strike)
	case p.TimeToExpiry <= 0:
		return domainErrorf("time to expiry must be positive, got %g", p.TimeToExpiry)
	case p.Volatility <= 0:
		return domainErrorf("volatility must be positive, got %g", p.Volatility)
	}
	if p.Type != Call && p.Type != Put {
		return domainErrorf("unknown option type %q", p.Type)
	}
	return nil
}

// intrinsic is the immediate exercise payoff at underlying price s.
func intrinsic(s, strike float64, typ OptionType) float64 {
	if typ == Call {
		if s > strike {
			return s - strike
		}
		return 0
	}
	if strike > s {
		return strike - s
	}
	return 0
}
