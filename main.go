package main

import (
	"fmt"
	"time"

	"github.com/meenmo/creditlib/bond"
	"github.com/meenmo/creditlib/cds"
	"github.com/meenmo/creditlib/instruments"
)

func main() {
	valuation := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	treasury, err := instruments.USTreasury.Bond(
		"UST-3.5-2035", 1000, 0.035,
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2035, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}

	price, err := bond.ComputePrice(bond.PriceInput{
		Terms:         treasury,
		ValuationDate: valuation,
		Yield:         0.04,
	})
	if err != nil {
		panic(err)
	}

	risk, err := bond.ComputeRisk(bond.RiskInput{
		Terms:         treasury,
		ValuationDate: valuation,
		Yield:         0.04,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s @ 4.00%% yield\n", treasury.ID)
	fmt.Printf("  Price:             %.4f\n", price.Price)
	fmt.Printf("  Modified duration: %.4f\n", risk.ModifiedDuration)
	fmt.Printf("  DV01:              %.4f\n", risk.DV01)

	contract, err := instruments.StandardCDS.CDS(
		"ACME-5Y", 10_000_000, 250, 0.40,
		valuation,
		time.Date(2030, 6, 20, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}

	cdsRes, err := cds.ComputePrice(cds.PriceInput{
		Terms:          contract,
		Side:           cds.ProtectionBuyer,
		ValuationDate:  valuation,
		DiscountRate:   0.03,
		MarketSpreadBP: 320,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("\n%s protection bought at 250bp, market 320bp\n", contract.ID)
	fmt.Printf("  Premium leg PV:    %.2f\n", cdsRes.PremiumLegPV)
	fmt.Printf("  Protection leg PV: %.2f\n", cdsRes.ProtectionLegPV)
	fmt.Printf("  Fair spread:       %.2f bp\n", cdsRes.FairSpreadBP)
	fmt.Printf("  NPV:               %.2f\n", cdsRes.NPV)
}
