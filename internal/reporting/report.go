package reporting

import (
	"time"

	"redemption-fee-lab/internal/analysis"
	"redemption-fee-lab/internal/domain"
)

// Report holds everything a rendered fee-model report needs: the parameter
// snapshot it was computed from, the single-scenario breakdown, and one
// section per sweep loss model. Values carry full precision; the renderers
// round.
type Report struct {
	// Metadata
	GeneratedAt    time.Time
	RunID          string
	ParameterSetID string
	Params         domain.ParameterSet

	// Single-deposit breakdown under the luck-adjusted loss model
	Scenario domain.ScenarioResult

	// One section per sweep loss model, in generation order
	Variants []VariantSection
}

// VariantSection bundles one loss model's sweep with its analysis.
type VariantSection struct {
	LossModel       domain.LossModel
	Rows            []domain.SweepRow
	Summary         analysis.Summary
	Curve           []analysis.ProfitPoint
	Checks          []analysis.CheckResult
	AllChecksPassed bool
}

// Section returns the variant section for the given loss model, nil if the
// report does not carry one.
func (r *Report) Section(m domain.LossModel) *VariantSection {
	for i := range r.Variants {
		if r.Variants[i].LossModel == m {
			return &r.Variants[i]
		}
	}
	return nil
}
