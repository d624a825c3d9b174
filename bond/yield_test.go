package bond_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/creditlib/bond"
)

func TestSolveYield_RoundTrip(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	for _, y := range []float64{0.01, 0.035, 0.04, 0.065} {
		priced, err := bond.ComputePrice(bond.PriceInput{
			Terms:         terms,
			ValuationDate: terms.IssueDate,
			Yield:         y,
		})
		if err != nil {
			t.Fatalf("ComputePrice(%g) error: %v", y, err)
		}

		res, err := bond.SolveYield(bond.YieldInput{
			Terms:         terms,
			ValuationDate: terms.IssueDate,
			MarketPrice:   priced.Price,
		})
		if err != nil {
			t.Fatalf("SolveYield(price(%g)) error: %v", y, err)
		}
		if math.Abs(res.Yield-y) > 1e-6 {
			t.Fatalf("round trip mismatch: priced at %.6f, solved %.8f", y, res.Yield)
		}
		if res.Iterations <= 0 || res.Iterations > 100 {
			t.Fatalf("implausible iteration count %d", res.Iterations)
		}
	}
}

func TestSolveYield_DiscountImpliesYieldAboveCoupon(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	res, err := bond.SolveYield(bond.YieldInput{
		Terms:         terms,
		ValuationDate: terms.IssueDate,
		MarketPrice:   950.00,
	})
	if err != nil {
		t.Fatalf("SolveYield error: %v", err)
	}
	if res.Yield <= 0.035 {
		t.Fatalf("discount bond must imply yield above coupon: got %.6f", res.Yield)
	}
}

func TestSolveYield_NonConvergence(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	_, err := bond.SolveYield(bond.YieldInput{
		Terms:         terms,
		ValuationDate: terms.IssueDate,
		MarketPrice:   950.00,
		MaxIterations: 1,
		Tolerance:     1e-12,
	})
	if err == nil {
		t.Fatal("expected non-convergence with a single iteration")
	}
	if !errors.Is(err, bond.ErrNotConverged) {
		t.Fatalf("expected ErrNotConverged, got: %v", err)
	}
}

func TestSolveYield_InvalidPrice(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	if _, err := bond.SolveYield(bond.YieldInput{
		Terms:         terms,
		ValuationDate: terms.IssueDate,
		MarketPrice:   0,
	}); err == nil {
		t.Fatal("expected error for non-positive market price")
	}
}

func TestSolveYield_InvalidOverrides(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	if _, err := bond.SolveYield(bond.YieldInput{
		Terms:         terms,
		ValuationDate: terms.IssueDate,
		MarketPrice:   950.00,
		Tolerance:     -1e-6,
	}); err == nil {
		t.Fatal("expected error for negative tolerance")
	}
	if _, err := bond.SolveYield(bond.YieldInput{
		Terms:         terms,
		ValuationDate: terms.IssueDate,
		MarketPrice:   950.00,
		MaxIterations: -1,
	}); err == nil {
		t.Fatal("expected error for negative max iterations")
	}
}
