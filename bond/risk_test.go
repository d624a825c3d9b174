package bond_test

import (
	"math"
	"testing"

	"github.com/meenmo/creditlib/bond"
)

func TestComputeRisk_DurationSanity(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	res, err := bond.ComputeRisk(bond.RiskInput{
		Terms:         terms,
		ValuationDate: terms.IssueDate,
		Yield:         0.04,
	})
	if err != nil {
		t.Fatalf("ComputeRisk error: %v", err)
	}

	tenor := 10.0
	if res.ModifiedDuration <= 0 || res.ModifiedDuration >= tenor {
		t.Fatalf("modified duration out of (0, tenor): got %.6f", res.ModifiedDuration)
	}
	if res.MacaulayDuration <= res.ModifiedDuration {
		t.Fatalf("macaulay duration must exceed modified at positive yield: %.6f <= %.6f",
			res.MacaulayDuration, res.ModifiedDuration)
	}
	if res.DollarDuration >= 0 {
		t.Fatalf("dollar duration must be negative: got %.6f", res.DollarDuration)
	}
	if res.Convexity <= 0 {
		t.Fatalf("convexity must be positive: got %.6f", res.Convexity)
	}
}

func TestComputeRisk_DV01MatchesBumpedPrice(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	const y = 0.04

	risk, err := bond.ComputeRisk(bond.RiskInput{Terms: terms, ValuationDate: terms.IssueDate, Yield: y})
	if err != nil {
		t.Fatalf("ComputeRisk error: %v", err)
	}

	base, err := bond.ComputePrice(bond.PriceInput{Terms: terms, ValuationDate: terms.IssueDate, Yield: y})
	if err != nil {
		t.Fatalf("ComputePrice error: %v", err)
	}
	bumped, err := bond.ComputePrice(bond.PriceInput{Terms: terms, ValuationDate: terms.IssueDate, Yield: y + 1e-4})
	if err != nil {
		t.Fatalf("ComputePrice error: %v", err)
	}

	want := base.Price - bumped.Price
	if math.Abs(risk.DV01-want) > 1e-9 {
		t.Fatalf("DV01 mismatch: got %.9f want %.9f", risk.DV01, want)
	}
	if risk.DV01 <= 0 {
		t.Fatalf("DV01 must be positive for a standard bond: got %.9f", risk.DV01)
	}

	// DV01 should be close to modified duration x price x 1bp.
	approx := risk.ModifiedDuration * base.Price * 1e-4
	if math.Abs(risk.DV01-approx)/approx > 0.05 {
		t.Fatalf("DV01 inconsistent with duration: got %.6f approx %.6f", risk.DV01, approx)
	}
}
