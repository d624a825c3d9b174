package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/creditlib/cds"
	"github.com/meenmo/creditlib/daycount"
	"github.com/meenmo/creditlib/utils"
)

type cdsInput struct {
	TaskID           string  `json:"task_id,omitempty"`
	ID               string  `json:"id"`
	Notional         float64 `json:"notional"`
	SpreadBP         float64 `json:"spread_bp"`
	RecoveryRate     float64 `json:"recovery_rate"`
	EffectiveDate    string  `json:"effective_date"`
	Maturity         string  `json:"maturity"`
	Frequency        int     `json:"frequency"`
	DayCount         string  `json:"day_count,omitempty"`
	RollDay          int     `json:"roll_day,omitempty"`
	Side             string  `json:"side"`
	ValuationDate    string  `json:"valuation_date"`
	DiscountRate     float64 `json:"discount_rate"`
	HazardRate       float64 `json:"hazard_rate,omitempty"`
	MarketSpreadBP   float64 `json:"market_spread_bp,omitempty"`
	UpfrontFee       float64 `json:"upfront_fee,omitempty"`
	IntegrationSteps int     `json:"integration_steps,omitempty"`
}

type cdsOutput struct {
	TaskID          string  `json:"task_id,omitempty"`
	ID              string  `json:"id,omitempty"`
	ValuationDate   string  `json:"valuation_date,omitempty"`
	NPV             float64 `json:"npv,omitempty"`
	PremiumLegPV    float64 `json:"premium_leg_pv,omitempty"`
	ProtectionLegPV float64 `json:"protection_leg_pv,omitempty"`
	RiskyAnnuity    float64 `json:"risky_annuity,omitempty"`
	FairSpreadBP    float64 `json:"fair_spread_bp,omitempty"`
	HazardRate      float64 `json:"hazard_rate,omitempty"`
	Error           string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: cdsprice -input <path>")
		fmt.Fprintln(os.Stderr, "Value a CDS under flat discount and hazard rates.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: cdsprice -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	hadError := false
	outputs := make([]cdsOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			outputs = append(outputs, cdsOutput{TaskID: in.TaskID, ID: in.ID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in cdsInput) (*cdsOutput, error) {
	effective, err := utils.ParseDate(in.EffectiveDate)
	if err != nil {
		return nil, fmt.Errorf("invalid effective_date: %v", err)
	}
	maturity, err := utils.ParseDate(in.Maturity)
	if err != nil {
		return nil, fmt.Errorf("invalid maturity: %v", err)
	}
	valuation, err := utils.ParseDate(in.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("invalid valuation_date: %v", err)
	}
	var dc daycount.Convention
	if in.DayCount != "" {
		dc, err = daycount.Parse(in.DayCount)
		if err != nil {
			return nil, err
		}
	}

	terms, err := cds.New(cds.Terms{
		ID:            in.ID,
		Notional:      in.Notional,
		SpreadBP:      in.SpreadBP,
		RecoveryRate:  in.RecoveryRate,
		EffectiveDate: effective,
		Maturity:      maturity,
		Frequency:     in.Frequency,
		DayCount:      dc,
		RollDay:       in.RollDay,
	})
	if err != nil {
		return nil, err
	}

	res, err := cds.ComputePrice(cds.PriceInput{
		Terms:            terms,
		Side:             cds.Side(in.Side),
		ValuationDate:    valuation,
		DiscountRate:     in.DiscountRate,
		HazardRate:       in.HazardRate,
		MarketSpreadBP:   in.MarketSpreadBP,
		UpfrontFee:       in.UpfrontFee,
		IntegrationSteps: in.IntegrationSteps,
	})
	if err != nil {
		return nil, err
	}

	return &cdsOutput{
		TaskID:          in.TaskID,
		ID:              in.ID,
		ValuationDate:   in.ValuationDate,
		NPV:             res.NPV,
		PremiumLegPV:    res.PremiumLegPV,
		ProtectionLegPV: res.ProtectionLegPV,
		RiskyAnnuity:    res.RiskyAnnuity,
		FairSpreadBP:    res.FairSpreadBP,
		HazardRate:      res.HazardRate,
	}, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]cdsInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []cdsInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input cdsInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []cdsInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(cdsOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
