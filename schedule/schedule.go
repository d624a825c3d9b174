// Package schedule generates periodic payment dates for fixed income and
// credit instruments.
package schedule

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/utils"
)

// Generate builds the payment dates between start and end for a leg paying
// periodsPerYear times per year.
//
// Dates are stepped by 12/periodsPerYear months from the start date, with the
// day of month clamped to the last valid day of the target month (a step from
// Jan 31 lands on Feb 28, or Feb 29 in leap years). The start date itself is
// excluded; the end date is always the final entry, even when it breaks exact
// periodicity, and is never duplicated.
func Generate(start, end time.Time, periodsPerYear int) ([]time.Time, error) {
	return GenerateWithRoll(start, end, periodsPerYear, 0)
}

// GenerateWithRoll is Generate with the day of month pinned to rollDay
// (e.g., 20 for standard CDS premium schedules). A rollDay of 0 inherits the
// start date's day. The roll day is clamped per month like any other day.
func GenerateWithRoll(start, end time.Time, periodsPerYear, rollDay int) ([]time.Time, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("schedule.GenerateWithRoll: end %s not after start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if periodsPerYear <= 0 || 12%periodsPerYear != 0 {
		return nil, fmt.Errorf("schedule.GenerateWithRoll: periods per year %d must evenly divide 12", periodsPerYear)
	}
	if rollDay < 0 || rollDay > 31 {
		return nil, fmt.Errorf("schedule.GenerateWithRoll: roll day %d out of range", rollDay)
	}

	months := 12 / periodsPerYear
	anchor := start
	if rollDay > 0 {
		anchor = pinDay(start, rollDay)
	}

	dates := make([]time.Time, 0, 64)
	// Step from the unadjusted anchor each iteration to avoid clamp drift.
	for k := 1; ; k++ {
		d := utils.AddMonths(anchor, k*months)
		if d.After(end) {
			break
		}
		if d.After(start) {
			dates = append(dates, d)
		}
	}

	if len(dates) == 0 || !dates[len(dates)-1].Equal(end) {
		dates = append(dates, end)
	}
	return dates, nil
}

// pinDay moves t to rollDay within its month, clamped to the month's length.
func pinDay(t time.Time, rollDay int) time.Time {
	day := rollDay
	if dim := utils.DaysInMonth(t); day > dim {
		day = dim
	}
	return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC)
}
