// Package instruments bundles standard market conventions for common
// bond and CDS contract types.
package instruments

import (
	"time"

	"github.com/meenmo/creditlib/bond"
	"github.com/meenmo/creditlib/cds"
	"github.com/meenmo/creditlib/daycount"
)

// BondConvention groups the schedule and accrual settings of a bond market.
type BondConvention struct {
	Frequency int
	DayCount  daycount.Convention
}

// CDSConvention groups the premium schedule settings of a CDS market.
type CDSConvention struct {
	Frequency int
	DayCount  daycount.Convention
	RollDay   int
}

// Preset conventions.
var (
	// USTreasury: semi-annual coupons on an ACT/ACT basis.
	USTreasury = BondConvention{Frequency: 2, DayCount: daycount.ActAct}

	// CorporateAnnual: annual coupons on the simplified 30/360 basis.
	CorporateAnnual = BondConvention{Frequency: 1, DayCount: daycount.Thirty360}

	// StandardCDS: quarterly premiums, ACT/360, rolled to the 20th.
	StandardCDS = CDSConvention{Frequency: 4, DayCount: daycount.Act360, RollDay: 20}
)

// Bond builds validated bond terms under the convention.
func (c BondConvention) Bond(id string, face, couponRate float64, issue, maturity time.Time) (bond.Terms, error) {
	return bond.New(bond.Terms{
		ID:         id,
		FaceValue:  face,
		CouponRate: couponRate,
		IssueDate:  issue,
		Maturity:   maturity,
		Frequency:  c.Frequency,
		DayCount:   c.DayCount,
	})
}

// CDS builds validated CDS terms under the convention.
func (c CDSConvention) CDS(id string, notional, spreadBP, recoveryRate float64, effective, maturity time.Time) (cds.Terms, error) {
	return cds.New(cds.Terms{
		ID:            id,
		Notional:      notional,
		SpreadBP:      spreadBP,
		RecoveryRate:  recoveryRate,
		EffectiveDate: effective,
		Maturity:      maturity,
		Frequency:     c.Frequency,
		DayCount:      c.DayCount,
		RollDay:       c.RollDay,
	})
}
