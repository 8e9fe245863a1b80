// Package session assembles one pricing request and dispatches it to the
// right model: Black-Scholes for European exercise, the binomial lattice for
// American. It does no numerical work of its own.
package session

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/purduemomentum/options-pricing-project/internal/logger"
	"github.com/purduemomentum/options-pricing-project/internal/pricing"
	"github.com/purduemomentum/options-pricing-project/internal/volatility"
)

// DaysPerYear converts days-to-expiry into a year fraction.
const DaysPerYear = 365.0

// MarketInputs describes the contract being priced. Ticker is informational
// only; the models never see it.
type MarketInputs struct {
	Ticker       string                `json:"ticker" validate:"required"`
	Spot         float64               `json:"spot" validate:"gt=0"`
	Strike       float64               `json:"strike" validate:"gt=0"`
	DaysToExpiry int                   `json:"days_to_expiry" validate:"gte=0"`
	Type         pricing.OptionType    `json:"type" validate:"oneof=call put"`
	Style        pricing.ExerciseStyle `json:"style" validate:"oneof=european american"`
}

// RateParameters are process-wide defaults, overridable per request.
type RateParameters struct {
	RiskFree      float64 `json:"risk_free"`
	DividendYield float64 `json:"dividend_yield"`
}

// DefaultRates returns the standing defaults: 5% risk-free, no dividend.
func DefaultRates() RateParameters {
	return RateParameters{RiskFree: 0.05, DividendYield: 0.0}
}

// State tracks the single-shot session lifecycle.
type State string

const (
	StateConfigured State = "configured"
	StatePriced     State = "priced" // terminal
	StateFailed     State = "failed" // terminal
)

// PriceResult is the session output: the value plus every diagnostic the
// selected model produced.
type PriceResult struct {
	RequestID    string              `json:"request_id"`
	Ticker       string              `json:"ticker"`
	Model        string              `json:"model"`
	Value        float64             `json:"value"`
	TimeToExpiry float64             `json:"time_to_expiry"`
	Volatility   volatility.Estimate `json:"volatility"`
	BlackScholes *pricing.BSResult   `json:"black_scholes,omitempty"`
	Tree         *pricing.TreeResult `json:"tree,omitempty"`
	Elapsed      time.Duration       `json:"elapsed_ns"`
}

var validate = validator.New()

// Session holds one assembled pricing request. Sessions are single-shot:
// Evaluate moves the session to a terminal state and further calls fail.
type Session struct {
	inputs MarketInputs
	rates  RateParameters
	vol    volatility.Estimate
	steps  int
	state  State
}

// New configures a session. Steps below 1 fall back to the lattice default.
func New(inputs MarketInputs, rates RateParameters, vol volatility.Estimate, steps int) *Session {
	if steps < 1 {
		steps = pricing.DefaultSteps
	}
	return &Session{
		inputs: inputs,
		rates:  rates,
		vol:    vol,
		steps:  steps,
		state:  StateConfigured,
	}
}

// State reports the session lifecycle state.
func (s *Session) State() State { return s.state }

// Evaluate validates the inputs, converts days-to-expiry into a year
// fraction, and routes to the model matching the exercise style. A
// validation failure or a pricing DomainError moves the session to
// StateFailed and is returned to the caller.
func (s *Session) Evaluate() (PriceResult, error) {
	if s.state != StateConfigured {
		return PriceResult{}, fmt.Errorf("session already %s", s.state)
	}

	if err := validate.Struct(s.inputs); err != nil {
		s.state = StateFailed
		return PriceResult{}, fmt.Errorf("invalid market inputs: %w", err)
	}

	params := pricing.Parameters{
		Spot:          s.inputs.Spot,
		Strike:        s.inputs.Strike,
		TimeToExpiry:  float64(s.inputs.DaysToExpiry) / DaysPerYear,
		RiskFree:      s.rates.RiskFree,
		Volatility:    s.vol.Sigma,
		DividendYield: s.rates.DividendYield,
		Type:          s.inputs.Type,
	}

	res := PriceResult{
		RequestID:    uuid.NewString(),
		Ticker:       s.inputs.Ticker,
		TimeToExpiry: params.TimeToExpiry,
		Volatility:   s.vol,
	}
	if s.vol.Defaulted {
		logger.Infof("%s: insufficient history, priced with default sigma=%.2f",
			s.inputs.Ticker, s.vol.Sigma)
	}

	start := time.Now()
	switch s.inputs.Style {
	case pricing.European:
		bs, err := pricing.BlackScholes(params)
		if err != nil {
			s.state = StateFailed
			return PriceResult{}, err
		}
		res.Model = "black-scholes"
		res.Value = bs.Price
		res.BlackScholes = &bs
	default:
		tree, err := pricing.BinomialTree(params, pricing.American, s.steps)
		if err != nil {
			s.state = StateFailed
			return PriceResult{}, err
		}
		res.Model = "binomial"
		res.Value = tree.Price
		res.Tree = &tree
	}
	res.Elapsed = time.Since(start)

	s.state = StatePriced
	logger.Debugf("%s %s %s priced %.4f in %v",
		res.Ticker, s.inputs.Style, s.inputs.Type, res.Value, res.Elapsed)
	return res, nil
}
