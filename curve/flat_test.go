package curve_test

import (
	"math"
	"testing"

	"github.com/meenmo/creditlib/curve"
)

func TestFlatZero(t *testing.T) {
	t.Parallel()

	c := curve.FlatZero{Rate: 0.05}
	if got := c.DiscountFactor(0); got != 1.0 {
		t.Fatalf("DF(0) mismatch: got %.12f", got)
	}
	want := math.Exp(-0.05 * 2.5)
	if got := c.DiscountFactor(2.5); math.Abs(got-want) > 1e-15 {
		t.Fatalf("DF(2.5) mismatch: got %.12f want %.12f", got, want)
	}
}

func TestFlatPeriodic(t *testing.T) {
	t.Parallel()

	c := curve.FlatPeriodic{Rate: 0.04, Frequency: 2}
	want := math.Pow(1.02, -20)
	if got := c.DiscountFactor(10); math.Abs(got-want) > 1e-15 {
		t.Fatalf("DF(10) mismatch: got %.12f want %.12f", got, want)
	}
}

func TestFlatHazard_Monotone(t *testing.T) {
	t.Parallel()

	c := curve.FlatHazard{Rate: 0.04}
	if got := c.SurvivalProbability(0); got != 1.0 {
		t.Fatalf("S(0) mismatch: got %.12f", got)
	}
	prev := 1.0
	for _, tt := range []float64{0.5, 1, 2, 5, 10, 30} {
		p := c.SurvivalProbability(tt)
		if p >= prev {
			t.Fatalf("survival not strictly decreasing at t=%g: %.12f >= %.12f", tt, p, prev)
		}
		if p <= 0 {
			t.Fatalf("survival must stay positive at t=%g: %.12f", tt, p)
		}
		prev = p
	}
}

func TestHazardFromSpread(t *testing.T) {
	t.Parallel()

	h, err := curve.HazardFromSpread(250, 0.40)
	if err != nil {
		t.Fatalf("HazardFromSpread error: %v", err)
	}
	want := 0.0250 / 0.60
	if math.Abs(h-want) > 1e-12 {
		t.Fatalf("hazard mismatch: got %.12f want %.12f", h, want)
	}

	if _, err := curve.HazardFromSpread(250, 1.0); err == nil {
		t.Fatal("expected error for recovery rate of 1")
	}
	if _, err := curve.HazardFromSpread(-10, 0.4); err == nil {
		t.Fatal("expected error for negative spread")
	}
}

func TestHazardFromSurvival(t *testing.T) {
	t.Parallel()

	h, err := curve.HazardFromSurvival(math.Exp(-0.03*5), 5)
	if err != nil {
		t.Fatalf("HazardFromSurvival error: %v", err)
	}
	if math.Abs(h-0.03) > 1e-12 {
		t.Fatalf("hazard mismatch: got %.12f want 0.03", h)
	}

	for _, p := range []float64{0, -0.2, 1.0001} {
		if _, err := curve.HazardFromSurvival(p, 5); err == nil {
			t.Fatalf("expected domain error for p=%g", p)
		}
	}
}
