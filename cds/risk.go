package cds

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/config"
)

// RiskInput holds the parameters needed to compute CS01.
type RiskInput struct {
	Terms         Terms
	Side          Side
	ValuationDate time.Time
	DiscountRate  float64
	// MarketSpreadBP is the observed market spread the hazard rate is
	// bootstrapped from, both at the base level and under the bump.
	MarketSpreadBP float64
	UpfrontFee     float64
	// IntegrationSteps defaults to the active config when zero.
	IntegrationSteps int
}

// ComputeCS01 returns the change in NPV for a one basis point widening of the
// market spread (one-sided forward difference, per basis point), from the
// requested side's perspective. The hazard rate is re-bootstrapped at the
// bumped spread; no intermediate state is shared between the two valuations.
func ComputeCS01(in RiskInput) (float64, error) {
	if in.MarketSpreadBP <= 0 {
		return 0, fmt.Errorf("cds.ComputeCS01: %s: market spread must be positive, got %g", in.Terms.ID, in.MarketSpreadBP)
	}

	npvAt := func(spreadBP float64) (float64, error) {
		res, err := ComputePrice(PriceInput{
			Terms:            in.Terms,
			Side:             in.Side,
			ValuationDate:    in.ValuationDate,
			DiscountRate:     in.DiscountRate,
			MarketSpreadBP:   spreadBP,
			UpfrontFee:       in.UpfrontFee,
			IntegrationSteps: in.IntegrationSteps,
		})
		if err != nil {
			return 0, err
		}
		return res.NPV, nil
	}

	base, err := npvAt(in.MarketSpreadBP)
	if err != nil {
		return 0, fmt.Errorf("cds.ComputeCS01: %w", err)
	}

	bumpBP := config.GetConfig().BumpBP
	bumped, err := npvAt(in.MarketSpreadBP + bumpBP)
	if err != nil {
		return 0, fmt.Errorf("cds.ComputeCS01: %w", err)
	}

	return (bumped - base) / bumpBP, nil
}
