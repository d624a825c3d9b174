package cds

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/curve"
	"github.com/meenmo/creditlib/daycount"
	"github.com/meenmo/creditlib/schedule"
	"github.com/meenmo/creditlib/utils"
)

// PremiumFlows projects the remaining premium payments as of valuationDate,
// weighting each with the survival probability to its payment date.
//
// Each premium = notional x spread x year-fraction of the accrual period
// under the contract day count (ACT/360 by default, i.e. accrued-days/360).
// Only payments strictly after valuationDate are returned.
func PremiumFlows(terms Terms, valuationDate time.Time, surv curve.SurvivalProvider) ([]PremiumFlow, error) {
	if err := terms.validate(); err != nil {
		return nil, fmt.Errorf("cds.PremiumFlows: %w", err)
	}
	if surv == nil {
		return nil, fmt.Errorf("cds.PremiumFlows: %s: %w", terms.ID, curve.ErrNilCurve)
	}

	dates, err := schedule.GenerateWithRoll(terms.EffectiveDate, terms.Maturity, terms.Frequency, terms.RollDay)
	if err != nil {
		return nil, fmt.Errorf("cds.PremiumFlows: %s: %w", terms.ID, err)
	}

	spread := terms.SpreadBP * 1e-4
	flows := make([]PremiumFlow, 0, len(dates))
	prev := terms.EffectiveDate
	for _, d := range dates {
		frac, err := daycount.YearFraction(prev, d, terms.DayCount)
		if err != nil {
			return nil, fmt.Errorf("cds.PremiumFlows: %s: %w", terms.ID, err)
		}
		if d.After(valuationDate) {
			t := utils.Days(valuationDate, d) / 365.0
			flows = append(flows, PremiumFlow{
				PayDate:         d,
				Amount:          terms.Notional * spread * frac,
				AccrualDays:     int(utils.Days(prev, d)),
				AccrualFraction: frac,
				Survival:        surv.SurvivalProbability(t),
			})
		}
		prev = d
	}
	return flows, nil
}
