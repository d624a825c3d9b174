package cds_test

import (
	"math"
	"testing"

	"github.com/meenmo/creditlib/cds"
)

func TestComputeCS01_BuyerPositive(t *testing.T) {
	t.Parallel()

	terms := fiveYearCDS(t, 10_000_000)
	cs01, err := cds.ComputeCS01(cds.RiskInput{
		Terms:          terms,
		Side:           cds.ProtectionBuyer,
		ValuationDate:  terms.EffectiveDate,
		DiscountRate:   0.05,
		MarketSpreadBP: 250,
	})
	if err != nil {
		t.Fatalf("ComputeCS01 error: %v", err)
	}
	if cs01 <= 0 {
		t.Fatalf("buyer CS01 must be positive (long protection gains as spreads widen): got %.6f", cs01)
	}
}

func TestComputeCS01_ScalesWithNotional(t *testing.T) {
	t.Parallel()

	riskAt := func(notional float64) float64 {
		terms := fiveYearCDS(t, notional)
		cs01, err := cds.ComputeCS01(cds.RiskInput{
			Terms:          terms,
			Side:           cds.ProtectionBuyer,
			ValuationDate:  terms.EffectiveDate,
			DiscountRate:   0.05,
			MarketSpreadBP: 250,
		})
		if err != nil {
			t.Fatalf("ComputeCS01(%g) error: %v", notional, err)
		}
		return cs01
	}

	small := riskAt(1_000_000)
	large := riskAt(5_000_000)
	if math.Abs(large-5*small) > 1e-6*math.Abs(large) {
		t.Fatalf("CS01 must scale linearly with notional: 5x%.9f != %.9f", small, large)
	}
}

func TestComputeCS01_RequiresMarketSpread(t *testing.T) {
	t.Parallel()

	terms := fiveYearCDS(t, 10_000_000)
	if _, err := cds.ComputeCS01(cds.RiskInput{
		Terms:         terms,
		Side:          cds.ProtectionBuyer,
		ValuationDate: terms.EffectiveDate,
		DiscountRate:  0.05,
	}); err == nil {
		t.Fatal("expected error when market spread is missing")
	}
}
