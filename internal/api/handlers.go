package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"redemption-fee-lab/internal/analysis"
	"redemption-fee-lab/internal/domain"
	"redemption-fee-lab/internal/feemodel"
	"redemption-fee-lab/internal/fingerprint"
	"redemption-fee-lab/internal/observability"
	"redemption-fee-lab/internal/reporting"
)

// handleScenario computes the single-deposit breakdown under the
// luck-adjusted loss model.
func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	params, err := s.decodeParams(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("decode body: %v", err), nil)
		return
	}
	if errs := s.bounds.CheckAll(params); len(errs) > 0 {
		respondError(w, http.StatusUnprocessableEntity, "parameters out of bounds", fieldMessages(errs))
		return
	}

	result := feemodel.Compute(params)
	s.countScenarioRun()
	observability.RecordScenarioComputation()

	respondJSON(w, http.StatusOK, toScenarioResponse(fingerprint.ComputeParameterSetID(params), result))
}

// handleSweep runs one sweep variant and returns rows, summary, and curve.
func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeSweepRequest(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("decode body: %v", err), nil)
		return
	}
	in, status, msg, fields := s.resolveSweepInputs(req)
	if msg != "" {
		respondError(w, status, msg, fields)
		return
	}

	rows, err := s.generator.Run(in.params, in.deposits, in.variant)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	s.countSweepRun()

	summary := analysis.Analyze(rows)
	observability.RecordProfitableLevels(in.variant.String(), summary.ProfitableCount)

	respondJSON(w, http.StatusOK, SweepResponse{
		ParameterSetID: fingerprint.ComputeParameterSetID(in.params),
		Variant:        in.variant.String(),
		Rows:           toSweepRows(rows),
		Summary:        toSummary(summary),
		Curve:          toCurve(analysis.ProfitCurve(rows)),
		Alert:          reporting.ProfitabilityAlert(summary),
	})
}

// handleBreakeven runs one sweep variant and returns only the break-even
// curve with the crossover deposit and alert text.
func (s *Server) handleBreakeven(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeSweepRequest(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("decode body: %v", err), nil)
		return
	}
	in, status, msg, fields := s.resolveSweepInputs(req)
	if msg != "" {
		respondError(w, status, msg, fields)
		return
	}

	rows, err := s.generator.Run(in.params, in.deposits, in.variant)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	s.countSweepRun()

	summary := analysis.Analyze(rows)
	observability.RecordProfitableLevels(in.variant.String(), summary.ProfitableCount)

	respondJSON(w, http.StatusOK, BreakevenResponse{
		ParameterSetID:   fingerprint.ComputeParameterSetID(in.params),
		Variant:          in.variant.String(),
		Curve:            toCurve(analysis.ProfitCurve(rows)),
		CrossoverDeposit: summary.CrossoverDeposit,
		Alert:            joinAlerts(summary),
	})
}

// handleBounds returns the configured parameter bounds, defaults, and sweep
// range.
func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, BoundsResponse{
		Bounds:   fromBounds(s.bounds),
		Defaults: FromParameterSet(s.defaults),
		Sweep:    fromDepositRange(s.sweepRange),
	})
}

// decodeParams decodes a ParameterSet body on top of the configured
// defaults: fields absent from the JSON keep their default values.
func (s *Server) decodeParams(r io.Reader) (domain.ParameterSet, error) {
	dto := FromParameterSet(s.defaults)
	if err := json.NewDecoder(r).Decode(&dto); err != nil {
		return domain.ParameterSet{}, err
	}
	return dto.ToParameterSet(), nil
}

// decodeSweepRequest decodes a sweep request on top of the configured
// defaults: absent params keep defaults, an absent variant means ZERO_LOSS.
func (s *Server) decodeSweepRequest(r io.Reader) (SweepRequest, error) {
	req := SweepRequest{
		Params:  FromParameterSet(s.defaults),
		Variant: domain.LossModelZero.String(),
	}
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return SweepRequest{}, err
	}
	return req, nil
}

// sweepInputs is a validated sweep request in domain terms.
type sweepInputs struct {
	params   domain.ParameterSet
	variant  domain.LossModel
	deposits []float64
}

// resolveSweepInputs validates a decoded sweep request against the server
// configuration. On rejection it returns the HTTP status the REST surface
// should use, a client-facing message, and per-field details when the
// parameters were out of bounds; msg is empty on success.
func (s *Server) resolveSweepInputs(req SweepRequest) (in sweepInputs, status int, msg string, fields []string) {
	variant := domain.LossModel(req.Variant)
	if !variant.IsValid() || variant == domain.LossModelLuckAdjusted {
		return sweepInputs{}, http.StatusBadRequest, fmt.Sprintf("unknown sweep variant %q", req.Variant), nil
	}

	params := req.Params.ToParameterSet()
	if errs := s.bounds.CheckAll(params); len(errs) > 0 {
		return sweepInputs{}, http.StatusUnprocessableEntity, "parameters out of bounds", fieldMessages(errs)
	}

	depositRange := s.sweepRange
	if req.Range != nil {
		depositRange = req.Range.ToDepositRange()
	}
	deposits := depositRange.Values()
	if len(deposits) == 0 {
		return sweepInputs{}, http.StatusUnprocessableEntity, "degenerate deposit range", nil
	}

	return sweepInputs{params: params, variant: variant, deposits: deposits}, 0, "", nil
}

// joinAlerts combines the profitability and crossover lines into the single
// alert string chart-only consumers display.
func joinAlerts(summary analysis.Summary) string {
	alert := reporting.ProfitabilityAlert(summary)
	if line := reporting.CrossoverAlert(summary); line != "" {
		alert += " " + line
	}
	return alert
}

func fieldMessages(errs []error) []string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return msgs
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string, fields []string) {
	respondJSON(w, status, ErrorResponse{Error: msg, Fields: fields})
}
