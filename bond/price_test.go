package bond_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/creditlib/bond"
	"github.com/meenmo/creditlib/daycount"
)

func treasury10Y(t *testing.T) bond.Terms {
	t.Helper()
	terms, err := bond.New(bond.Terms{
		ID:         "UST-3.5-2035",
		FaceValue:  1000,
		CouponRate: 0.035,
		IssueDate:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Maturity:   time.Date(2035, 1, 15, 0, 0, 0, 0, time.UTC),
		Frequency:  2,
		DayCount:   daycount.ActAct,
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return terms
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	base := bond.Terms{
		ID:         "BAD",
		FaceValue:  1000,
		CouponRate: 0.035,
		IssueDate:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Maturity:   time.Date(2035, 1, 15, 0, 0, 0, 0, time.UTC),
		Frequency:  2,
		DayCount:   daycount.ActAct,
	}

	cases := []struct {
		name   string
		mutate func(*bond.Terms)
	}{
		{"zero face", func(b *bond.Terms) { b.FaceValue = 0 }},
		{"negative coupon", func(b *bond.Terms) { b.CouponRate = -0.01 }},
		{"maturity before issue", func(b *bond.Terms) { b.Maturity = b.IssueDate.AddDate(-1, 0, 0) }},
		{"frequency does not divide 12", func(b *bond.Terms) { b.Frequency = 5 }},
		{"unknown day count", func(b *bond.Terms) { b.DayCount = "BUS/252" }},
	}
	for _, c := range cases {
		terms := base
		c.mutate(&terms)
		if _, err := bond.New(terms); err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
	}
}

func TestCoupons_FutureOnly(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	valuation := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)

	flows, err := bond.Coupons(terms, valuation)
	if err != nil {
		t.Fatalf("Coupons error: %v", err)
	}
	// Exactly the 10 remaining semi-annual coupons; the 2030-01-15 payment is
	// not strictly after the valuation date.
	if len(flows) != 10 {
		t.Fatalf("expected 10 remaining coupons, got %d", len(flows))
	}
	for _, cf := range flows {
		if !cf.PayDate.After(valuation) {
			t.Fatalf("coupon on %s not after valuation date", cf.PayDate.Format("2006-01-02"))
		}
		if cf.Amount <= 0 {
			t.Fatalf("non-positive coupon amount %.6f", cf.Amount)
		}
		wantAmt := 1000 * 0.035 * cf.AccrualFraction
		if math.Abs(cf.Amount-wantAmt) > 1e-9 {
			t.Fatalf("coupon amount mismatch: got %.9f want %.9f", cf.Amount, wantAmt)
		}
	}
}

func TestComputePrice_DiscountBond(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	res, err := bond.ComputePrice(bond.PriceInput{
		Terms:         terms,
		ValuationDate: terms.IssueDate,
		Yield:         0.04,
	})
	if err != nil {
		t.Fatalf("ComputePrice error: %v", err)
	}
	if res.Price < 958.5 || res.Price > 961.5 {
		t.Fatalf("price out of expected range: got %.4f", res.Price)
	}
	if math.Abs(res.Price-(res.CouponPV+res.PrincipalPV)) > 1e-9 {
		t.Fatalf("leg decomposition does not sum to price")
	}
}

func TestComputePrice_AtParCoupon(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	res, err := bond.ComputePrice(bond.PriceInput{
		Terms:         terms,
		ValuationDate: terms.IssueDate,
		Yield:         0.035,
	})
	if err != nil {
		t.Fatalf("ComputePrice error: %v", err)
	}
	if math.Abs(res.Price-1000) > 1.5 {
		t.Fatalf("price at coupon-equal yield should be near par: got %.4f", res.Price)
	}
}

func TestComputePrice_MonotoneInYield(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	prev := math.Inf(1)
	for _, y := range []float64{0.01, 0.02, 0.03, 0.04, 0.05, 0.07, 0.10} {
		res, err := bond.ComputePrice(bond.PriceInput{
			Terms:         terms,
			ValuationDate: terms.IssueDate,
			Yield:         y,
		})
		if err != nil {
			t.Fatalf("ComputePrice(%g) error: %v", y, err)
		}
		if res.Price >= prev {
			t.Fatalf("price not strictly decreasing in yield at y=%g: %.6f >= %.6f", y, res.Price, prev)
		}
		prev = res.Price
	}
}

func TestComputePrice_ValuationAfterMaturity(t *testing.T) {
	t.Parallel()

	terms := treasury10Y(t)
	_, err := bond.ComputePrice(bond.PriceInput{
		Terms:         terms,
		ValuationDate: terms.Maturity,
		Yield:         0.04,
	})
	if err == nil {
		t.Fatal("expected error for valuation on maturity date")
	}
}
