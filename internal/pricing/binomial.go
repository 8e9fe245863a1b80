package pricing

import "math"

// DefaultSteps is the lattice resolution used when the caller does not pick
// one. 100 steps keeps an at-the-money valuation within a few cents of the
// closed form while staying well under a millisecond.
const DefaultSteps = 100

// maxSteps caps the O(steps^2) work a single request may demand.
const maxSteps = 10000

// TreeResult is a binomial valuation plus the lattice parameters that
// produced it.
type TreeResult struct {
	Price  float64 `json:"price"`
	Up     float64 `json:"up"`      // per-step up factor u
	Down   float64 `json:"down"`    // per-step down factor d = 1/u
	ProbUp float64 `json:"prob_up"` // risk-neutral up probability p
	Steps  int     `json:"steps"`
}

// BinomialTree prices an option on a Cox-Ross-Rubinstein lattice with
// backward induction. American style takes max(hold, exercise) at every
// node; European style holds to expiry, which exists mainly so the lattice
// can be checked against the closed form.
//
// Returns a DomainError for invalid Parameters, steps outside [1, 10000],
// or a risk-neutral probability outside [0,1]. The probability case means
// the step size is mismatched to the volatility and rate; it is reported,
// never clamped.
func BinomialTree(p Parameters, style ExerciseStyle, steps int) (TreeResult, error) {
	if err := p.validate(); err != nil {
		return TreeResult{}, err
	}
	if steps < 1 {
		return TreeResult{}, domainErrorf("steps must be at least 1, got %d", steps)
	}
	if steps > maxSteps {
		return TreeResult{}, domainErrorf("steps must be at most %d, got %d", maxSteps, steps)
	}
	if style != European && style != American {
		return TreeResult{}, domainErrorf("unknown exercise style %q", style)
	}

	dt := p.TimeToExpiry / float64(steps)
	u := math.Exp(p.Volatility * math.Sqrt(dt))
	d := 1 / u
	growth := math.Exp((p.RiskFree - p.DividendYield) * dt)
	prob := (growth - d) / (u - d)
	if prob < 0 || prob > 1 {
		return TreeResult{}, domainErrorf(
			"risk-neutral probability %g outside [0,1]: dt=%g too large for sigma=%g",
			prob, dt, p.Volatility)
	}

	// Ragged triangular lattice: priceTree[i][j] is the underlying after i
	// steps and j down-moves, so row i has i+1 nodes.
	priceTree := make([][]float64, steps+1)
	for i := range priceTree {
		priceTree[i] = make([]float64, i+1)
	}
	priceTree[0][0] = p.Spot
	for i := 1; i <= steps; i++ {
		priceTree[i][0] = priceTree[i-1][0] * u
		for j := 1; j <= i; j++ {
			priceTree[i][j] = priceTree[i-1][j-1] * d
		}
	}

	optionTree := make([][]float64, steps+1)
	for i := range optionTree {
		optionTree[i] = make([]float64, i+1)
	}
	for j := 0; j <= steps; j++ {
		optionTree[steps][j] = intrinsic(priceTree[steps][j], p.Strike, p.Type)
	}

	discount := math.Exp(-p.RiskFree * dt)
	for i := steps - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			hold := discount * (prob*optionTree[i+1][j] + (1-prob)*optionTree[i+1][j+1])
			if style == American {
				if exercise := intrinsic(priceTree[i][j], p.Strike, p.Type); exercise > hold {
					hold = exercise
				}
			}
			optionTree[i][j] = hold
		}
	}

	return TreeResult{
		Price:  optionTree[0][0],
		Up:     u,
		Down:   d,
		ProbUp: prob,
		Steps:  steps,
	}, nil
}
