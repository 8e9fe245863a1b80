package pricing

import (
	"errors"
	"math"
	"testing"
)

func atmParams(typ OptionType) Parameters {
	return Parameters{
		Spot:         100,
		Strike:       100,
		TimeToExpiry: 1,
		RiskFree:     0.05,
		Volatility:   0.20,
		Type:         typ,
	}
}

// Textbook scenario: S=K=100, T=1, r=5%, sigma=20% prices a call near 10.45.
func TestBlackScholesATMCall(t *testing.T) {
	res, err := BlackScholes(atmParams(Call))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.Price-10.4506) > 0.01 {
		t.Fatalf("expected ATM call near 10.45, got %f", res.Price)
	}
	if res.D1 <= res.D2 {
		t.Fatalf("expected d1 > d2, got d1=%f d2=%f", res.D1, res.D2)
	}
}

// call - put must equal e^{-dT}S - e^{-rT}K.
func TestBlackScholesPutCallParity(t *testing.T) {
	cases := []Parameters{
		{Spot: 100, Strike: 100, TimeToExpiry: 1, RiskFree: 0.05, Volatility: 0.2},
		{Spot: 120, Strike: 95, TimeToExpiry: 0.4, RiskFree: 0.03, Volatility: 0.35, DividendYield: 0.02},
		{Spot: 80, Strike: 140, TimeToExpiry: 2.5, RiskFree: 0.01, Volatility: 0.6, DividendYield: 0.04},
	}
	for _, p := range cases {
		p.Type = Call
		call, err := BlackScholes(p)
		if err != nil {
			t.Fatalf("call: %v", err)
		}
		p.Type = Put
		put, err := BlackScholes(p)
		if err != nil {
			t.Fatalf("put: %v", err)
		}

		lhs := call.Price - put.Price
		rhs := p.Spot*math.Exp(-p.DividendYield*p.TimeToExpiry) -
			p.Strike*math.Exp(-p.RiskFree*p.TimeToExpiry)
		if math.Abs(lhs-rhs) > 1e-6 {
			t.Fatalf("parity violated for %+v: LHS=%f RHS=%f", p, lhs, rhs)
		}
	}
}

// As sigma approaches zero an in-the-money call collapses to its discounted
// forward intrinsic value.
func TestBlackScholesLowVolIntrinsic(t *testing.T) {
	p := Parameters{
		Spot:          110,
		Strike:        100,
		TimeToExpiry:  1,
		RiskFree:      0.05,
		Volatility:    1e-6,
		DividendYield: 0.02,
		Type:          Call,
	}
	res, err := BlackScholes(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Max(0, p.Spot*math.Exp(-p.DividendYield)-p.Strike*math.Exp(-p.RiskFree))
	if math.Abs(res.Price-want) > 1e-6 {
		t.Fatalf("expected forward intrinsic %f, got %f", want, res.Price)
	}
}

func TestBlackScholesDomainErrors(t *testing.T) {
	bad := []Parameters{
		{Spot: 0, Strike: 100, TimeToExpiry: 1, Volatility: 0.2, Type: Call},
		{Spot: 100, Strike: -5, TimeToExpiry: 1, Volatility: 0.2, Type: Put},
		{Spot: 100, Strike: 100, TimeToExpiry: 0, Volatility: 0.2, Type: Call},
		{Spot: 100, Strike: 100, TimeToExpiry: 1, Volatility: 0, Type: Call},
		{Spot: 100, Strike: 100, TimeToExpiry: 1, Volatility: 0.2, Type: "straddle"},
	}
	for _, p := range bad {
		_, err := BlackScholes(p)
		var domErr *DomainError
		if !errors.As(err, &domErr) {
			t.Fatalf("expected DomainError for %+v, got %v", p, err)
		}
	}
}
