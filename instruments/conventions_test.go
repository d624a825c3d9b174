package instruments_test

import (
	"testing"
	"time"

	"github.com/meenmo/creditlib/daycount"
	"github.com/meenmo/creditlib/instruments"
)

func TestUSTreasuryBond(t *testing.T) {
	t.Parallel()

	terms, err := instruments.USTreasury.Bond(
		"UST-3.5-2035", 1000, 0.035,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2035, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("Bond: %v", err)
	}
	if terms.Frequency != 2 {
		t.Errorf("Frequency = %d, want 2", terms.Frequency)
	}
	if terms.DayCount != daycount.ActAct {
		t.Errorf("DayCount = %s, want %s", terms.DayCount, daycount.ActAct)
	}
}

func TestStandardCDS(t *testing.T) {
	t.Parallel()

	terms, err := instruments.StandardCDS.CDS(
		"ACME-5Y", 10_000_000, 250, 0.40,
		time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 6, 20, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("CDS: %v", err)
	}
	if terms.Frequency != 4 {
		t.Errorf("Frequency = %d, want 4", terms.Frequency)
	}
	if terms.DayCount != daycount.Act360 {
		t.Errorf("DayCount = %s, want %s", terms.DayCount, daycount.Act360)
	}
	if terms.RollDay != 20 {
		t.Errorf("RollDay = %d, want 20", terms.RollDay)
	}
}

func TestConventionRejectsBadTerms(t *testing.T) {
	t.Parallel()

	_, err := instruments.CorporateAnnual.Bond(
		"BAD", -1, 0.05,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	if err == nil {
		t.Fatal("expected error for negative face value")
	}
}
