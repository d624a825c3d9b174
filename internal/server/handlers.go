package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/meenmo/creditlib/bond"
	"github.com/meenmo/creditlib/cds"
	"github.com/meenmo/creditlib/curve"
	"github.com/meenmo/creditlib/daycount"
	"github.com/meenmo/creditlib/scenario"
	"github.com/meenmo/creditlib/utils"
)

type handler struct {
	log             zerolog.Logger
	scenarioWorkers int
}

func newHandler(log zerolog.Logger, scenarioWorkers int) *handler {
	return &handler{log: log, scenarioWorkers: scenarioWorkers}
}

// bondJSON is the wire form of bond terms. Dates are "2006-01-02".
type bondJSON struct {
	ID         string  `json:"id"`
	FaceValue  float64 `json:"face_value"`
	CouponRate float64 `json:"coupon_rate"`
	IssueDate  string  `json:"issue_date"`
	Maturity   string  `json:"maturity"`
	Frequency  int     `json:"frequency"`
	DayCount   string  `json:"day_count"`
}

func (b bondJSON) terms() (bond.Terms, error) {
	issue, err := utils.ParseDate(b.IssueDate)
	if err != nil {
		return bond.Terms{}, err
	}
	maturity, err := utils.ParseDate(b.Maturity)
	if err != nil {
		return bond.Terms{}, err
	}
	dc, err := daycount.Parse(b.DayCount)
	if err != nil {
		return bond.Terms{}, err
	}
	return bond.New(bond.Terms{
		ID:         b.ID,
		FaceValue:  b.FaceValue,
		CouponRate: b.CouponRate,
		IssueDate:  issue,
		Maturity:   maturity,
		Frequency:  b.Frequency,
		DayCount:   dc,
	})
}

// cdsJSON is the wire form of CDS terms. Dates are "2006-01-02".
type cdsJSON struct {
	ID            string  `json:"id"`
	Notional      float64 `json:"notional"`
	SpreadBP      float64 `json:"spread_bp"`
	RecoveryRate  float64 `json:"recovery_rate"`
	EffectiveDate string  `json:"effective_date"`
	Maturity      string  `json:"maturity"`
	Frequency     int     `json:"frequency"`
	DayCount      string  `json:"day_count"`
	RollDay       int     `json:"roll_day"`
}

func (c cdsJSON) terms() (cds.Terms, error) {
	effective, err := utils.ParseDate(c.EffectiveDate)
	if err != nil {
		return cds.Terms{}, err
	}
	maturity, err := utils.ParseDate(c.Maturity)
	if err != nil {
		return cds.Terms{}, err
	}
	var dc daycount.Convention
	if c.DayCount != "" {
		dc, err = daycount.Parse(c.DayCount)
		if err != nil {
			return cds.Terms{}, err
		}
	}
	return cds.New(cds.Terms{
		ID:            c.ID,
		Notional:      c.Notional,
		SpreadBP:      c.SpreadBP,
		RecoveryRate:  c.RecoveryRate,
		EffectiveDate: effective,
		Maturity:      maturity,
		Frequency:     c.Frequency,
		DayCount:      dc,
		RollDay:       c.RollDay,
	})
}

type cashflowJSON struct {
	PayDate         string  `json:"pay_date"`
	Amount          float64 `json:"amount"`
	AccrualDays     int     `json:"accrual_days"`
	AccrualFraction float64 `json:"accrual_fraction"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleBondPrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bond                 bondJSON `json:"bond"`
		ValuationDate        string   `json:"valuation_date"`
		Yield                float64  `json:"yield"`
		CompoundingFrequency int      `json:"compounding_frequency"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	terms, valuation, ok := h.bondInputs(w, r, req.Bond, req.ValuationDate)
	if !ok {
		return
	}

	res, err := bond.ComputePrice(bond.PriceInput{
		Terms:                terms,
		ValuationDate:        valuation,
		Yield:                req.Yield,
		CompoundingFrequency: req.CompoundingFrequency,
	})
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"request_id":   requestIDFrom(r.Context()),
		"id":           terms.ID,
		"price":        round6(res.Price),
		"coupon_pv":    round6(res.CouponPV),
		"principal_pv": round6(res.PrincipalPV),
		"cashflows":    bondFlowsJSON(res.Cashflows),
	})
}

func (h *handler) handleBondYield(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bond                 bondJSON `json:"bond"`
		ValuationDate        string   `json:"valuation_date"`
		MarketPrice          float64  `json:"market_price"`
		CompoundingFrequency int      `json:"compounding_frequency"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	terms, valuation, ok := h.bondInputs(w, r, req.Bond, req.ValuationDate)
	if !ok {
		return
	}

	res, err := bond.SolveYield(bond.YieldInput{
		Terms:                terms,
		ValuationDate:        valuation,
		MarketPrice:          req.MarketPrice,
		CompoundingFrequency: req.CompoundingFrequency,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, bond.ErrNotConverged) {
			status = http.StatusUnprocessableEntity
		}
		h.writeError(w, r, status, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"request_id": requestIDFrom(r.Context()),
		"id":         terms.ID,
		"yield":      res.Yield,
		"iterations": res.Iterations,
	})
}

func (h *handler) handleBondRisk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bond                 bondJSON `json:"bond"`
		ValuationDate        string   `json:"valuation_date"`
		Yield                float64  `json:"yield"`
		CompoundingFrequency int      `json:"compounding_frequency"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	terms, valuation, ok := h.bondInputs(w, r, req.Bond, req.ValuationDate)
	if !ok {
		return
	}

	res, err := bond.ComputeRisk(bond.RiskInput{
		Terms:                terms,
		ValuationDate:        valuation,
		Yield:                req.Yield,
		CompoundingFrequency: req.CompoundingFrequency,
	})
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"request_id":        requestIDFrom(r.Context()),
		"id":                terms.ID,
		"macaulay_duration": res.MacaulayDuration,
		"modified_duration": res.ModifiedDuration,
		"dollar_duration":   round6(res.DollarDuration),
		"convexity":         res.Convexity,
		"dv01":              round6(res.DV01),
	})
}

func (h *handler) handleBondScenarios(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bond                 bondJSON  `json:"bond"`
		ValuationDate        string    `json:"valuation_date"`
		Yields               []float64 `json:"yields"`
		CompoundingFrequency int       `json:"compounding_frequency"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Yields) == 0 {
		h.writeError(w, r, http.StatusBadRequest, errors.New("yields is required"))
		return
	}
	terms, valuation, ok := h.bondInputs(w, r, req.Bond, req.ValuationDate)
	if !ok {
		return
	}

	jobs := make([]scenario.Job, 0, len(req.Yields))
	for _, y := range req.Yields {
		jobs = append(jobs, scenario.BondPriceJob(decimal.NewFromFloat(y).String(), bond.PriceInput{
			Terms:                terms,
			ValuationDate:        valuation,
			Yield:                y,
			CompoundingFrequency: req.CompoundingFrequency,
		}))
	}

	results, summary, err := scenario.Run(r.Context(), jobs, h.scenarioWorkers)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	type resultJSON struct {
		Yield string  `json:"yield"`
		Price float64 `json:"price"`
		Error string  `json:"error,omitempty"`
	}
	out := make([]resultJSON, 0, len(results))
	for _, res := range results {
		rj := resultJSON{Yield: res.Name, Price: round6(res.Value)}
		if res.Err != nil {
			rj.Error = res.Err.Error()
			rj.Price = 0
		}
		out = append(out, rj)
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"request_id": requestIDFrom(r.Context()),
		"id":         terms.ID,
		"results":    out,
		"summary": map[string]any{
			"count":  summary.Count,
			"failed": summary.Failed,
			"mean":   round6(summary.Mean),
			"min":    round6(summary.Min),
			"max":    round6(summary.Max),
			"total":  round6(summary.Total),
		},
	})
}

func (h *handler) handleCDSPrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CDS              cdsJSON `json:"cds"`
		Side             string  `json:"side"`
		ValuationDate    string  `json:"valuation_date"`
		DiscountRate     float64 `json:"discount_rate"`
		HazardRate       float64 `json:"hazard_rate"`
		MarketSpreadBP   float64 `json:"market_spread_bp"`
		UpfrontFee       float64 `json:"upfront_fee"`
		IntegrationSteps int     `json:"integration_steps"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	terms, valuation, ok := h.cdsInputs(w, r, req.CDS, req.ValuationDate)
	if !ok {
		return
	}

	res, err := cds.ComputePrice(cds.PriceInput{
		Terms:            terms,
		Side:             cds.Side(req.Side),
		ValuationDate:    valuation,
		DiscountRate:     req.DiscountRate,
		HazardRate:       req.HazardRate,
		MarketSpreadBP:   req.MarketSpreadBP,
		UpfrontFee:       req.UpfrontFee,
		IntegrationSteps: req.IntegrationSteps,
	})
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"request_id":        requestIDFrom(r.Context()),
		"id":                terms.ID,
		"npv":               round6(res.NPV),
		"premium_leg_pv":    round6(res.PremiumLegPV),
		"protection_leg_pv": round6(res.ProtectionLegPV),
		"risky_annuity":     res.RiskyAnnuity,
		"fair_spread_bp":    round6(res.FairSpreadBP),
		"hazard_rate":       res.HazardRate,
		"upfront_fee":       round6(res.UpfrontFee),
	})
}

func (h *handler) handleCDSSpread(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CDS              cdsJSON `json:"cds"`
		ValuationDate    string  `json:"valuation_date"`
		DiscountRate     float64 `json:"discount_rate"`
		HazardRate       float64 `json:"hazard_rate"`
		MarketSpreadBP   float64 `json:"market_spread_bp"`
		IntegrationSteps int     `json:"integration_steps"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	terms, valuation, ok := h.cdsInputs(w, r, req.CDS, req.ValuationDate)
	if !ok {
		return
	}

	hazard := req.HazardRate
	if hazard == 0 && req.MarketSpreadBP != 0 {
		var err error
		hazard, err = curve.HazardFromSpread(req.MarketSpreadBP, terms.RecoveryRate)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	fairBP, err := cds.SolveFairSpread(cds.FairSpreadInput{
		Terms:            terms,
		ValuationDate:    valuation,
		DiscountRate:     req.DiscountRate,
		HazardRate:       hazard,
		IntegrationSteps: req.IntegrationSteps,
	})
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"request_id":     requestIDFrom(r.Context()),
		"id":             terms.ID,
		"fair_spread_bp": round6(fairBP),
		"hazard_rate":    hazard,
	})
}

func (h *handler) handleCDSRisk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CDS              cdsJSON `json:"cds"`
		Side             string  `json:"side"`
		ValuationDate    string  `json:"valuation_date"`
		DiscountRate     float64 `json:"discount_rate"`
		MarketSpreadBP   float64 `json:"market_spread_bp"`
		UpfrontFee       float64 `json:"upfront_fee"`
		IntegrationSteps int     `json:"integration_steps"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	terms, valuation, ok := h.cdsInputs(w, r, req.CDS, req.ValuationDate)
	if !ok {
		return
	}

	cs01, err := cds.ComputeCS01(cds.RiskInput{
		Terms:            terms,
		Side:             cds.Side(req.Side),
		ValuationDate:    valuation,
		DiscountRate:     req.DiscountRate,
		MarketSpreadBP:   req.MarketSpreadBP,
		UpfrontFee:       req.UpfrontFee,
		IntegrationSteps: req.IntegrationSteps,
	})
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{
		"request_id": requestIDFrom(r.Context()),
		"id":         terms.ID,
		"cs01":       round6(cs01),
	})
}

func (h *handler) bondInputs(w http.ResponseWriter, r *http.Request, b bondJSON, valuationDate string) (bond.Terms, time.Time, bool) {
	terms, err := b.terms()
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return bond.Terms{}, time.Time{}, false
	}
	valuation, err := utils.ParseDate(valuationDate)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return bond.Terms{}, time.Time{}, false
	}
	return terms, valuation, true
}

func (h *handler) cdsInputs(w http.ResponseWriter, r *http.Request, c cdsJSON, valuationDate string) (cds.Terms, time.Time, bool) {
	terms, err := c.terms()
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return cds.Terms{}, time.Time{}, false
	}
	valuation, err := utils.ParseDate(valuationDate)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return cds.Terms{}, time.Time{}, false
	}
	return terms, valuation, true
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Str("request_id", requestIDFrom(r.Context())).Msg("encode response")
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.log.Warn().
		Err(err).
		Int("status", status).
		Str("request_id", requestIDFrom(r.Context())).
		Str("path", r.URL.Path).
		Msg("request failed")
	h.writeJSON(w, r, status, map[string]string{
		"error":      err.Error(),
		"request_id": requestIDFrom(r.Context()),
	})
}

func bondFlowsJSON(flows []bond.Cashflow) []cashflowJSON {
	out := make([]cashflowJSON, 0, len(flows))
	for _, f := range flows {
		out = append(out, cashflowJSON{
			PayDate:         f.PayDate.Format("2006-01-02"),
			Amount:          round6(f.Amount),
			AccrualDays:     f.AccrualDays,
			AccrualFraction: f.AccrualFraction,
		})
	}
	return out
}

// round6 rounds monetary outputs to 6 decimals at the API boundary so wire
// values are stable across platforms.
func round6(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(6).Float64()
	return f
}
