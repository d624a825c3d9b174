package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/meenmo/creditlib/bond"
	"github.com/meenmo/creditlib/daycount"
	"github.com/meenmo/creditlib/utils"
)

type priceInput struct {
	TaskID               string  `json:"task_id,omitempty"`
	ID                   string  `json:"id"`
	FaceValue            float64 `json:"face_value"`
	CouponRate           float64 `json:"coupon_rate"`
	IssueDate            string  `json:"issue_date"`
	Maturity             string  `json:"maturity"`
	Frequency            int     `json:"frequency"`
	DayCount             string  `json:"day_count"`
	ValuationDate        string  `json:"valuation_date"`
	Yield                float64 `json:"yield"`
	CompoundingFrequency int     `json:"compounding_frequency,omitempty"`
}

type priceOutput struct {
	TaskID        string  `json:"task_id,omitempty"`
	ID            string  `json:"id,omitempty"`
	ValuationDate string  `json:"valuation_date,omitempty"`
	Yield         float64 `json:"yield,omitempty"`
	Price         float64 `json:"price,omitempty"`
	CouponPV      float64 `json:"coupon_pv,omitempty"`
	PrincipalPV   float64 `json:"principal_pv,omitempty"`
	Error         string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: bondprice -input <path>")
		fmt.Fprintln(os.Stderr, "Price a fixed-rate bond off a flat yield.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: bondprice -input <path>")
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
	outputs := make([]priceOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in)
		if err != nil {
			hadError = true
			outputs = append(outputs, priceOutput{TaskID: in.TaskID, ID: in.ID, Error: err.Error()})
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

func process(in priceInput) (*priceOutput, error) {
	terms, valuation, err := toTerms(in)
	if err != nil {
		return nil, err
	}

	res, err := bond.ComputePrice(bond.PriceInput{
		Terms:                terms,
		ValuationDate:        valuation,
		Yield:                in.Yield,
		CompoundingFrequency: in.CompoundingFrequency,
	})
	if err != nil {
		return nil, err
	}

	return &priceOutput{
		TaskID:        in.TaskID,
		ID:            in.ID,
		ValuationDate: in.ValuationDate,
		Yield:         in.Yield,
		Price:         res.Price,
		CouponPV:      res.CouponPV,
		PrincipalPV:   res.PrincipalPV,
	}, nil
}

func toTerms(in priceInput) (bond.Terms, time.Time, error) {
	issue, err := utils.ParseDate(in.IssueDate)
	if err != nil {
		return bond.Terms{}, time.Time{}, fmt.Errorf("invalid issue_date: %v", err)
	}
	maturity, err := utils.ParseDate(in.Maturity)
	if err != nil {
		return bond.Terms{}, time.Time{}, fmt.Errorf("invalid maturity: %v", err)
	}
	valuation, err := utils.ParseDate(in.ValuationDate)
	if err != nil {
		return bond.Terms{}, time.Time{}, fmt.Errorf("invalid valuation_date: %v", err)
	}
	dc, err := daycount.Parse(in.DayCount)
	if err != nil {
		return bond.Terms{}, time.Time{}, err
	}

	terms, err := bond.New(bond.Terms{
		ID:         in.ID,
		FaceValue:  in.FaceValue,
		CouponRate: in.CouponRate,
		IssueDate:  issue,
		Maturity:   maturity,
		Frequency:  in.Frequency,
		DayCount:   dc,
	})
	if err != nil {
		return bond.Terms{}, time.Time{}, err
	}
	return terms, valuation, nil
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]priceInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []priceInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input priceInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []priceInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(priceOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
