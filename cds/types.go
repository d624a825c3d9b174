// Package cds prices single-name credit default swaps under a constant
// hazard rate, decomposed into premium and protection legs.
package cds

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/daycount"
)

// Side describes which side of the protection trade is being valued.
type Side string

const (
	ProtectionBuyer  Side = "BUYER"
	ProtectionSeller Side = "SELLER"
)

// Terms holds the immutable economics of a credit default swap.
//
// Construct with New so that malformed terms are rejected up front rather
// than surfacing as garbage valuations.
type Terms struct {
	// ID identifies the contract in error messages (e.g., a reference entity ticker).
	ID string
	// Notional is the protected amount, in currency units.
	Notional float64
	// SpreadBP is the contractual premium in basis points per annum.
	SpreadBP float64
	// RecoveryRate is the assumed fraction of notional recovered on default.
	RecoveryRate  float64
	EffectiveDate time.Time
	Maturity      time.Time
	// Frequency is premium payments per year (4 = quarterly standard).
	Frequency int
	// DayCount sizes premium accruals. Empty defaults to ACT/360, the
	// standard CDS premium basis.
	DayCount daycount.Convention
	// RollDay pins premium dates to a conventional day of month (20 for
	// standard contracts). Zero inherits the effective date's day.
	RollDay int
}

// PremiumFlow is a single projected premium payment together with the
// survival probability to its payment date.
type PremiumFlow struct {
	PayDate time.Time
	Amount  float64
	// AccrualDays is the actual day count of the accrual period.
	AccrualDays int
	// AccrualFraction is the period year fraction under the contract day count.
	AccrualFraction float64
	// Survival is the probability of no default before PayDate.
	Survival float64
}

// New validates CDS terms and applies the ACT/360 premium basis default.
func New(t Terms) (Terms, error) {
	if t.Notional <= 0 {
		return Terms{}, fmt.Errorf("cds.New: %s: notional must be positive, got %g", t.ID, t.Notional)
	}
	if t.SpreadBP < 0 {
		return Terms{}, fmt.Errorf("cds.New: %s: spread must be >= 0 bp, got %g", t.ID, t.SpreadBP)
	}
	if t.RecoveryRate < 0 || t.RecoveryRate >= 1 {
		return Terms{}, fmt.Errorf("cds.New: %s: recovery rate must be in [0, 1), got %g", t.ID, t.RecoveryRate)
	}
	if t.EffectiveDate.IsZero() || t.Maturity.IsZero() {
		return Terms{}, fmt.Errorf("cds.New: %s: effective and maturity dates are required", t.ID)
	}
	if !t.Maturity.After(t.EffectiveDate) {
		return Terms{}, fmt.Errorf("cds.New: %s: maturity %s must be after effective %s",
			t.ID, t.Maturity.Format("2006-01-02"), t.EffectiveDate.Format("2006-01-02"))
	}
	if t.Frequency <= 0 || 12%t.Frequency != 0 {
		return Terms{}, fmt.Errorf("cds.New: %s: frequency %d must evenly divide 12", t.ID, t.Frequency)
	}
	if t.RollDay < 0 || t.RollDay > 31 {
		return Terms{}, fmt.Errorf("cds.New: %s: roll day %d out of range", t.ID, t.RollDay)
	}
	if t.DayCount == "" {
		t.DayCount = daycount.Act360
	}
	if _, err := daycount.Parse(string(t.DayCount)); err != nil {
		return Terms{}, fmt.Errorf("cds.New: %s: %w", t.ID, err)
	}
	return t, nil
}

func (t Terms) validate() error {
	_, err := New(t)
	return err
}

func validSide(s Side) error {
	switch s {
	case ProtectionBuyer, ProtectionSeller:
		return nil
	default:
		return fmt.Errorf("invalid side %q: must be %s or %s", s, ProtectionBuyer, ProtectionSeller)
	}
}
