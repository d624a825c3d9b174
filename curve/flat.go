// Package curve provides discount factor and default survival models.
//
// The flat implementations below match the single-rate inputs used across the
// pricing core. Anything satisfying Discounter or SurvivalProvider can be
// substituted later (e.g., a bootstrapped term structure) without touching
// the valuation code.
package curve

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
)

// Discounter provides a risk-free discount factor at time t, measured in
// years from the valuation date.
type Discounter interface {
	DiscountFactor(t float64) float64
}

// SurvivalProvider provides the probability of no default before time t,
// measured in years from the valuation date.
type SurvivalProvider interface {
	SurvivalProbability(t float64) float64
}

// FlatZero discounts continuously at a single zero rate: exp(-r*t).
type FlatZero struct {
	Rate float64
}

func (c FlatZero) DiscountFactor(t float64) float64 {
	return math.Exp(-c.Rate * t)
}

// FlatPeriodic discounts at a single yield compounded m times per year:
// (1 + y/m)^(-t*m).
type FlatPeriodic struct {
	Rate      float64
	Frequency int
}

func (c FlatPeriodic) DiscountFactor(t float64) float64 {
	m := float64(c.Frequency)
	return math.Pow(1.0+c.Rate/m, -t*m)
}

// FlatHazard models default arrival at a constant intensity h, so survival
// to time t is exp(-h*t).
type FlatHazard struct {
	Rate float64
}

func (c FlatHazard) SurvivalProbability(t float64) float64 {
	return math.Exp(-c.Rate * t)
}

// HazardFromSpread bootstraps a constant hazard rate from a market spread
// (in basis points) and a recovery rate via h = s / (1 - R).
//
// This is a deliberate single-parameter calibration, not a term structure
// bootstrap.
func HazardFromSpread(spreadBP, recoveryRate float64) (float64, error) {
	if spreadBP < 0 {
		return 0, fmt.Errorf("HazardFromSpread: spread must be >= 0 bp, got %g", spreadBP)
	}
	if recoveryRate < 0 || recoveryRate >= 1 {
		return 0, fmt.Errorf("HazardFromSpread: recovery rate must be in [0, 1), got %g", recoveryRate)
	}
	return (spreadBP * 1e-4) / (1.0 - recoveryRate), nil
}

// HazardFromSurvival inverts a survival probability observed at time t (in
// years) into a constant hazard rate: h = -ln(p) / t.
func HazardFromSurvival(p, t float64) (float64, error) {
	if p <= 0 || p > 1 {
		return 0, fmt.Errorf("HazardFromSurvival: survival probability must be in (0, 1], got %g", p)
	}
	if t <= 0 {
		return 0, fmt.Errorf("HazardFromSurvival: time must be positive, got %g", t)
	}
	return -math.Log(p) / t, nil
}
