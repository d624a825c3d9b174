package cds

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/config"
	"github.com/meenmo/creditlib/curve"
	"github.com/meenmo/creditlib/utils"
)

// PriceInput holds the parameters needed to value a CDS position.
type PriceInput struct {
	Terms Terms
	// Side selects the valuation perspective; NPV is signed accordingly.
	Side          Side
	ValuationDate time.Time
	// DiscountRate is the flat continuously-compounded risk-free rate.
	DiscountRate float64
	// HazardRate is the constant default intensity. When zero and
	// MarketSpreadBP is set, the hazard rate is bootstrapped as
	// spread / (1 - recovery).
	HazardRate float64
	// MarketSpreadBP is the observed market spread in basis points, used only
	// to bootstrap the hazard rate when HazardRate is not given.
	MarketSpreadBP float64
	// UpfrontFee is paid by the protection buyer at trade inception.
	UpfrontFee float64
	// IntegrationSteps for the protection leg; zero defaults to the active config.
	IntegrationSteps int
}

// PriceResult is the output of ComputePrice.
type PriceResult struct {
	// NPV is signed from the requested side's perspective.
	NPV             float64
	PremiumLegPV    float64
	ProtectionLegPV float64
	// RiskyAnnuity is the PV of 1 unit of spread paid on the premium schedule.
	RiskyAnnuity float64
	// FairSpreadBP is the running spread that zeroes the legs, in basis points.
	FairSpreadBP float64
	// HazardRate is the intensity actually used (given or bootstrapped).
	HazardRate float64
	UpfrontFee float64
	Flows      []PremiumFlow
}

// ComputePrice values both CDS legs.
//
// Premium leg PV sums survival-weighted discounted premiums. Protection leg
// PV integrates notional x (1-R) x h x S(t) x DF(t) over valuation->maturity
// by the midpoint rule. NPV from the buyer's perspective is
// protection - premium - upfront; the seller's NPV flips the sign.
func ComputePrice(in PriceInput) (PriceResult, error) {
	if err := in.Terms.validate(); err != nil {
		return PriceResult{}, fmt.Errorf("cds.ComputePrice: %w", err)
	}
	if err := validSide(in.Side); err != nil {
		return PriceResult{}, fmt.Errorf("cds.ComputePrice: %s: %w", in.Terms.ID, err)
	}
	if !in.Terms.Maturity.After(in.ValuationDate) {
		return PriceResult{}, fmt.Errorf("cds.ComputePrice: %s: valuation date %s on or after maturity %s",
			in.Terms.ID, in.ValuationDate.Format("2006-01-02"), in.Terms.Maturity.Format("2006-01-02"))
	}

	hazard := in.HazardRate
	if hazard == 0 && in.MarketSpreadBP != 0 {
		h, err := curve.HazardFromSpread(in.MarketSpreadBP, in.Terms.RecoveryRate)
		if err != nil {
			return PriceResult{}, fmt.Errorf("cds.ComputePrice: %s: %w", in.Terms.ID, err)
		}
		hazard = h
	}
	if hazard < 0 {
		return PriceResult{}, fmt.Errorf("cds.ComputePrice: %s: hazard rate must be >= 0, got %g", in.Terms.ID, hazard)
	}

	steps := in.IntegrationSteps
	if steps == 0 {
		steps = config.GetConfig().IntegrationSteps
	}
	if steps < 1 {
		return PriceResult{}, fmt.Errorf("cds.ComputePrice: %s: integration steps must be >= 1, got %d", in.Terms.ID, steps)
	}

	surv := curve.FlatHazard{Rate: hazard}
	disc := curve.FlatZero{Rate: in.DiscountRate}

	flows, err := PremiumFlows(in.Terms, in.ValuationDate, surv)
	if err != nil {
		return PriceResult{}, err
	}

	var premiumPV, annuity float64
	for _, f := range flows {
		t := utils.Days(in.ValuationDate, f.PayDate) / 365.0
		df := disc.DiscountFactor(t)
		premiumPV += f.Amount * f.Survival * df
		annuity += f.AccrualFraction * f.Survival * df
	}

	protectionPV := protectionLegPV(in.Terms, in.ValuationDate, hazard, surv, disc, steps)

	var fairBP float64
	if annuity > 0 {
		fairBP = protectionPV / (in.Terms.Notional * annuity) * 1e4
	}

	npv := protectionPV - premiumPV - in.UpfrontFee
	if in.Side == ProtectionSeller {
		npv = -npv
	}

	return PriceResult{
		NPV:             npv,
		PremiumLegPV:    premiumPV,
		ProtectionLegPV: protectionPV,
		RiskyAnnuity:    annuity,
		FairSpreadBP:    fairBP,
		HazardRate:      hazard,
		UpfrontFee:      in.UpfrontFee,
		Flows:           flows,
	}, nil
}

// protectionLegPV evaluates notional x (1-R) x integral of h*S(t)*DF(t) dt
// with the midpoint rule: each step spans width T/steps and the integrand is
// sampled at the step's temporal midpoint.
func protectionLegPV(terms Terms, valuationDate time.Time, hazard float64, surv curve.SurvivalProvider, disc curve.Discounter, steps int) float64 {
	horizon := utils.Days(valuationDate, terms.Maturity) / 365.0
	dt := horizon / float64(steps)

	var integral float64
	for i := 0; i < steps; i++ {
		mid := (float64(i) + 0.5) * dt
		integral += hazard * surv.SurvivalProbability(mid) * disc.DiscountFactor(mid) * dt
	}
	return terms.Notional * (1.0 - terms.RecoveryRate) * integral
}

// FairSpreadInput holds the parameters needed to compute the par spread.
type FairSpreadInput struct {
	Terms         Terms
	ValuationDate time.Time
	DiscountRate  float64
	HazardRate    float64
	// IntegrationSteps defaults to the active config when zero.
	IntegrationSteps int
}

// SolveFairSpread returns the running spread, in basis points, that equates
// premium and protection leg PVs: protection PV / (notional x risky annuity).
//
// The inversion is analytic; no iterative search is needed.
func SolveFairSpread(in FairSpreadInput) (float64, error) {
	res, err := ComputePrice(PriceInput{
		Terms:            in.Terms,
		Side:             ProtectionBuyer,
		ValuationDate:    in.ValuationDate,
		DiscountRate:     in.DiscountRate,
		HazardRate:       in.HazardRate,
		IntegrationSteps: in.IntegrationSteps,
	})
	if err != nil {
		return 0, fmt.Errorf("cds.SolveFairSpread: %w", err)
	}
	if res.RiskyAnnuity == 0 {
		return 0, fmt.Errorf("cds.SolveFairSpread: %s: risky annuity is zero", in.Terms.ID)
	}
	return res.FairSpreadBP, nil
}
