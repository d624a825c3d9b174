// Package bond prices fixed-coupon bonds and solves their yield and risk
// metrics from a flat yield input.
package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/daycount"
)

// Terms holds the immutable economics of a fixed-coupon bond.
//
// Construct with New so that malformed terms are rejected up front rather
// than surfacing as garbage valuations.
type Terms struct {
	// ID identifies the instrument in error messages (e.g., a CUSIP).
	ID string
	// FaceValue is the principal repaid at maturity, in currency units.
	FaceValue float64
	// CouponRate is the annual coupon as a decimal (e.g., 0.035 for 3.5%).
	CouponRate float64
	IssueDate  time.Time
	Maturity   time.Time
	// Frequency is coupons per year (1 = annual, 2 = semi-annual, ...).
	Frequency int
	// DayCount sizes the coupon accruals. Discounting time is always
	// actual-days/365 and is independent of this convention.
	DayCount daycount.Convention
}

// Cashflow is a single dated coupon payment.
//
// Amounts are in currency units (e.g., USD), not price-per-100. Principal is
// tracked separately by the valuation functions, not as a Cashflow.
type Cashflow struct {
	PayDate time.Time
	Amount  float64
	// AccrualDays is the actual day count of the accrual period.
	AccrualDays int
	// AccrualFraction is the period year fraction under the bond's day count.
	AccrualFraction float64
}

// New validates bond terms.
func New(t Terms) (Terms, error) {
	if t.FaceValue <= 0 {
		return Terms{}, fmt.Errorf("bond.New: %s: face value must be positive, got %g", t.ID, t.FaceValue)
	}
	if t.CouponRate < 0 {
		return Terms{}, fmt.Errorf("bond.New: %s: coupon rate must be >= 0, got %g", t.ID, t.CouponRate)
	}
	if t.IssueDate.IsZero() || t.Maturity.IsZero() {
		return Terms{}, fmt.Errorf("bond.New: %s: issue and maturity dates are required", t.ID)
	}
	if !t.Maturity.After(t.IssueDate) {
		return Terms{}, fmt.Errorf("bond.New: %s: maturity %s must be after issue %s",
			t.ID, t.Maturity.Format("2006-01-02"), t.IssueDate.Format("2006-01-02"))
	}
	if t.Frequency <= 0 || 12%t.Frequency != 0 {
		return Terms{}, fmt.Errorf("bond.New: %s: frequency %d must evenly divide 12", t.ID, t.Frequency)
	}
	if _, err := daycount.Parse(string(t.DayCount)); err != nil {
		return Terms{}, fmt.Errorf("bond.New: %s: %w", t.ID, err)
	}
	return t, nil
}

func (t Terms) validate() error {
	_, err := New(t)
	return err
}
