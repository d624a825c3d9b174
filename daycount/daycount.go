// Package daycount converts date intervals into year fractions under named
// day count conventions.
package daycount

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/utils"
)

// Convention is a closed set of supported day count conventions. Unsupported
// names are rejected by Parse rather than falling through to a default basis.
type Convention string

const (
	ActAct    Convention = "ACT/ACT"
	Act365    Convention = "ACT/365"
	Act360    Convention = "ACT/360"
	Thirty360 Convention = "30/360"
)

// Parse validates a convention name.
func Parse(s string) (Convention, error) {
	switch Convention(s) {
	case ActAct, Act365, Act360, Thirty360:
		return Convention(s), nil
	default:
		return "", fmt.Errorf("daycount.Parse: unsupported convention %q", s)
	}
}

// YearFraction computes the accrual year fraction between two dates.
//
// ACT/ACT and ACT/365 divide actual elapsed days by 365. ACT/360 and 30/360
// divide actual elapsed days by 360. Note that 30/360 here is the
// actual-day-count approximation, not ISDA 30/360 date-component arithmetic;
// the simplified basis is kept so that published figures reproduce exactly.
func YearFraction(start, end time.Time, convention Convention) (float64, error) {
	days := utils.Days(start, end)
	switch convention {
	case ActAct, Act365:
		return days / 365.0, nil
	case Act360, Thirty360:
		return days / 360.0, nil
	default:
		return 0, fmt.Errorf("daycount.YearFraction: unsupported convention %q", convention)
	}
}
