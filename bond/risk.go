package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/config"
	"github.com/meenmo/creditlib/curve"
)

// RiskInput holds the parameters needed to compute bond risk metrics.
type RiskInput struct {
	Terms         Terms
	ValuationDate time.Time
	// Yield is the flat yield at which sensitivities are evaluated.
	Yield float64
	// CompoundingFrequency defaults to the coupon frequency when zero.
	CompoundingFrequency int
}

// RiskResult is the output of ComputeRisk.
type RiskResult struct {
	// MacaulayDuration is the PV-weighted average time to cashflow, in years.
	MacaulayDuration float64
	// ModifiedDuration = Macaulay / (1 + y/m).
	ModifiedDuration float64
	// DollarDuration = -ModifiedDuration x price.
	DollarDuration float64
	// Convexity = sum(PV_i x t_i x (t_i+1)) / (price x (1 + y/m)^2).
	Convexity float64
	// DV01 is the price drop for a one basis point yield rise (one-sided
	// forward difference, reported positive for a standard bond).
	DV01 float64
}

// ComputeRisk computes duration, convexity and DV01. Every metric is a pure
// function of the inputs; nothing is cached between calls.
func ComputeRisk(in RiskInput) (RiskResult, error) {
	m := in.CompoundingFrequency
	if m == 0 {
		m = in.Terms.Frequency
	}
	if m <= 0 {
		return RiskResult{}, fmt.Errorf("bond.ComputeRisk: %s: compounding frequency must be positive, got %d", in.Terms.ID, m)
	}

	disc := curve.FlatPeriodic{Rate: in.Yield, Frequency: m}
	flows, _, err := discountedFlows(in.Terms, in.ValuationDate, disc)
	if err != nil {
		return RiskResult{}, fmt.Errorf("bond.ComputeRisk: %w", err)
	}

	var price, weighted, convexSum float64
	for _, f := range flows {
		price += f.pv
		weighted += f.t * f.pv
		convexSum += f.pv * f.t * (f.t + 1)
	}
	if price == 0 {
		return RiskResult{}, fmt.Errorf("bond.ComputeRisk: %s: price is zero", in.Terms.ID)
	}

	perPeriod := 1.0 + in.Yield/float64(m)
	macaulay := weighted / price
	modified := macaulay / perPeriod
	convexity := convexSum / (price * perPeriod * perPeriod)

	cfg := config.GetConfig()
	bump := cfg.BumpBP * 1e-4
	bumped, err := ComputePrice(PriceInput{
		Terms:                in.Terms,
		ValuationDate:        in.ValuationDate,
		Yield:                in.Yield + bump,
		CompoundingFrequency: m,
	})
	if err != nil {
		return RiskResult{}, fmt.Errorf("bond.ComputeRisk: %w", err)
	}
	dv01 := (price - bumped.Price) / cfg.BumpBP

	return RiskResult{
		MacaulayDuration: macaulay,
		ModifiedDuration: modified,
		DollarDuration:   -modified * price,
		Convexity:        convexity,
		DV01:             dv01,
	}, nil
}
