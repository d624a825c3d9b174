package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/curve"
	"github.com/meenmo/creditlib/utils"
)

// PriceInput holds the parameters needed to price a bond off a flat yield.
type PriceInput struct {
	Terms         Terms
	ValuationDate time.Time
	// Yield is the flat discount yield as a decimal (e.g., 0.04).
	Yield float64
	// CompoundingFrequency is compounding periods per year for discounting.
	// Zero defaults to the coupon frequency.
	CompoundingFrequency int
}

// PriceResult is the output of ComputePrice.
type PriceResult struct {
	// Price is the present value of all remaining cashflows, in currency units.
	Price float64
	// CouponPV and PrincipalPV decompose the price.
	CouponPV    float64
	PrincipalPV float64
	// Cashflows are the projected future coupons the price was built from.
	Cashflows []Cashflow
}

// discountedFlow pairs a cashflow's time to payment (in years) with its PV.
type discountedFlow struct {
	t  float64
	pv float64
}

// ComputePrice values the bond by discounting every remaining coupon plus the
// principal at maturity.
//
// Time to each payment is actual-days/365 from the valuation date, regardless
// of the day count convention that sized the coupon. The two bases are kept
// deliberately distinct; collapsing them changes published figures.
func ComputePrice(in PriceInput) (PriceResult, error) {
	m := in.CompoundingFrequency
	if m == 0 {
		m = in.Terms.Frequency
	}
	if m <= 0 {
		return PriceResult{}, fmt.Errorf("bond.ComputePrice: %s: compounding frequency must be positive, got %d", in.Terms.ID, m)
	}
	return PriceWithDiscounter(in.Terms, in.ValuationDate, curve.FlatPeriodic{Rate: in.Yield, Frequency: m})
}

// PriceWithDiscounter values the bond against any discount factor provider.
func PriceWithDiscounter(terms Terms, valuationDate time.Time, disc curve.Discounter) (PriceResult, error) {
	if disc == nil {
		return PriceResult{}, fmt.Errorf("bond.PriceWithDiscounter: %s: %w", terms.ID, curve.ErrNilCurve)
	}
	flows, coupons, err := discountedFlows(terms, valuationDate, disc)
	if err != nil {
		return PriceResult{}, err
	}

	// The principal is always the final flow.
	var couponPV float64
	for _, f := range flows[:len(flows)-1] {
		couponPV += f.pv
	}
	principalPV := flows[len(flows)-1].pv

	return PriceResult{
		Price:       couponPV + principalPV,
		CouponPV:    couponPV,
		PrincipalPV: principalPV,
		Cashflows:   coupons,
	}, nil
}

// discountedFlows returns the discounted coupon flows followed by the
// discounted principal as the final entry.
func discountedFlows(terms Terms, valuationDate time.Time, disc curve.Discounter) ([]discountedFlow, []Cashflow, error) {
	if err := terms.validate(); err != nil {
		return nil, nil, fmt.Errorf("bond.discountedFlows: %w", err)
	}
	if !terms.Maturity.After(valuationDate) {
		return nil, nil, fmt.Errorf("bond.discountedFlows: %s: valuation date %s on or after maturity %s",
			terms.ID, valuationDate.Format("2006-01-02"), terms.Maturity.Format("2006-01-02"))
	}

	coupons, err := Coupons(terms, valuationDate)
	if err != nil {
		return nil, nil, err
	}

	flows := make([]discountedFlow, 0, len(coupons)+1)
	for _, cf := range coupons {
		t := utils.Days(valuationDate, cf.PayDate) / 365.0
		flows = append(flows, discountedFlow{t: t, pv: cf.Amount * disc.DiscountFactor(t)})
	}

	tMat := utils.Days(valuationDate, terms.Maturity) / 365.0
	flows = append(flows, discountedFlow{t: tMat, pv: terms.FaceValue * disc.DiscountFactor(tMat)})

	return flows, coupons, nil
}
