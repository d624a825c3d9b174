package daycount_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/creditlib/daycount"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"ACT/ACT", "ACT/365", "ACT/360", "30/360"} {
		if _, err := daycount.Parse(s); err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
	}

	if _, err := daycount.Parse("ACT/252"); err == nil {
		t.Fatal("expected error for unsupported convention")
	}
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC) // 181 days

	cases := []struct {
		convention daycount.Convention
		want       float64
	}{
		{daycount.ActAct, 181.0 / 365.0},
		{daycount.Act365, 181.0 / 365.0},
		{daycount.Act360, 181.0 / 360.0},
		// 30/360 is the documented actual/360 approximation, not ISDA 30/360
		// (which would give exactly 0.5 for this period).
		{daycount.Thirty360, 181.0 / 360.0},
	}

	for _, c := range cases {
		got, err := daycount.YearFraction(start, end, c.convention)
		if err != nil {
			t.Fatalf("YearFraction(%s) error: %v", c.convention, err)
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("YearFraction(%s): got %.12f want %.12f", c.convention, got, c.want)
		}
	}

	if _, err := daycount.YearFraction(start, end, daycount.Convention("BUS/252")); err == nil {
		t.Fatal("expected error for unsupported convention")
	}
}
