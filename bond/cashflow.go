package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/daycount"
	"github.com/meenmo/creditlib/schedule"
	"github.com/meenmo/creditlib/utils"
)

// Coupons projects the bond's remaining coupon cashflows as of valuationDate.
//
// Each coupon = face x rate x year-fraction of the period under the bond's
// day count, where the period runs from the previous schedule date (or the
// issue date for the first coupon) to the payment date. Only payments
// strictly after valuationDate are returned. The principal repayment is not
// part of the stream; valuation adds it at maturity separately.
func Coupons(terms Terms, valuationDate time.Time) ([]Cashflow, error) {
	if err := terms.validate(); err != nil {
		return nil, fmt.Errorf("bond.Coupons: %w", err)
	}

	dates, err := schedule.Generate(terms.IssueDate, terms.Maturity, terms.Frequency)
	if err != nil {
		return nil, fmt.Errorf("bond.Coupons: %s: %w", terms.ID, err)
	}

	flows := make([]Cashflow, 0, len(dates))
	prev := terms.IssueDate
	for _, d := range dates {
		frac, err := daycount.YearFraction(prev, d, terms.DayCount)
		if err != nil {
			return nil, fmt.Errorf("bond.Coupons: %s: %w", terms.ID, err)
		}
		if d.After(valuationDate) {
			flows = append(flows, Cashflow{
				PayDate:         d,
				Amount:          terms.FaceValue * terms.CouponRate * frac,
				AccrualDays:     int(utils.Days(prev, d)),
				AccrualFraction: frac,
			})
		}
		prev = d
	}
	return flows, nil
}
