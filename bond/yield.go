package bond

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meenmo/creditlib/config"
)

// ErrNotConverged is returned when the yield solver exhausts its iteration
// budget without meeting tolerance. Callers may retry with a different seed
// or a widened tolerance; a best-effort yield is never returned silently.
var ErrNotConverged = errors.New("yield solver did not converge")

// YieldInput holds the parameters needed to solve yield to maturity from an
// observed market price.
type YieldInput struct {
	Terms         Terms
	ValuationDate time.Time
	// MarketPrice is the observed dirty price in currency units.
	MarketPrice float64
	// CompoundingFrequency defaults to the coupon frequency when zero.
	CompoundingFrequency int
	// Tolerance and MaxIterations default to the active config when zero.
	Tolerance     float64
	MaxIterations int
}

// YieldResult is the output of SolveYield.
type YieldResult struct {
	// Yield is the solved yield to maturity as a decimal.
	Yield float64
	// Iterations is the number of Newton-Raphson steps taken.
	Iterations int
}

// SolveYield finds the yield y such that ComputePrice(y) equals the observed
// market price.
//
// Newton-Raphson seeded at the stated coupon rate, with the derivative
// estimated by a forward finite difference.
func SolveYield(in YieldInput) (YieldResult, error) {
	if err := in.Terms.validate(); err != nil {
		return YieldResult{}, fmt.Errorf("bond.SolveYield: %w", err)
	}
	if in.MarketPrice <= 0 {
		return YieldResult{}, fmt.Errorf("bond.SolveYield: %s: market price must be positive, got %g", in.Terms.ID, in.MarketPrice)
	}
	if in.Tolerance < 0 {
		return YieldResult{}, fmt.Errorf("bond.SolveYield: %s: tolerance must be >= 0, got %g", in.Terms.ID, in.Tolerance)
	}
	if in.MaxIterations < 0 {
		return YieldResult{}, fmt.Errorf("bond.SolveYield: %s: max iterations must be >= 0, got %d", in.Terms.ID, in.MaxIterations)
	}

	cfg := config.GetConfig()
	tol := in.Tolerance
	if tol == 0 {
		tol = cfg.YieldTolerance
	}
	maxIter := in.MaxIterations
	if maxIter == 0 {
		maxIter = cfg.MaxYieldIterations
	}

	price := func(y float64) (float64, error) {
		res, err := ComputePrice(PriceInput{
			Terms:                in.Terms,
			ValuationDate:        in.ValuationDate,
			Yield:                y,
			CompoundingFrequency: in.CompoundingFrequency,
		})
		if err != nil {
			return 0, err
		}
		return res.Price, nil
	}

	y := in.Terms.CouponRate
	for iter := 0; iter < maxIter; iter++ {
		p, err := price(y)
		if err != nil {
			return YieldResult{}, fmt.Errorf("bond.SolveYield: %s: %w", in.Terms.ID, err)
		}
		f := p - in.MarketPrice
		if math.Abs(f) < tol {
			return YieldResult{Yield: y, Iterations: iter + 1}, nil
		}

		pBumped, err := price(y + cfg.DerivativeStep)
		if err != nil {
			return YieldResult{}, fmt.Errorf("bond.SolveYield: %s: %w", in.Terms.ID, err)
		}
		deriv := (pBumped - p) / cfg.DerivativeStep
		if math.Abs(deriv) < cfg.DerivativeThreshold {
			return YieldResult{}, fmt.Errorf("bond.SolveYield: %s: derivative too small at iter %d (yield=%.8f)", in.Terms.ID, iter, y)
		}

		y = y - f/deriv
	}

	return YieldResult{}, fmt.Errorf("bond.SolveYield: %s: %w after %d iterations (last yield=%.8f, price=%.6f, target=%.6f)",
		in.Terms.ID, ErrNotConverged, maxIter, y, mustPrice(price, y), in.MarketPrice)
}

// mustPrice re-evaluates the price for error context only.
func mustPrice(price func(float64) (float64, error), y float64) float64 {
	p, err := price(y)
	if err != nil {
		return math.NaN()
	}
	return p
}
