package reporting

import (
	"fmt"
	"time"

	"redemption-fee-lab/internal/analysis"
	"redemption-fee-lab/internal/domain"
	"redemption-fee-lab/internal/feemodel"
	"redemption-fee-lab/internal/fingerprint"
	"redemption-fee-lab/internal/sweep"
)

// SweepLossModels are the loss models a full report covers, in render order.
var SweepLossModels = []domain.LossModel{
	domain.LossModelZero,
	domain.LossModelExpected,
}

// Generator produces reports from a parameter snapshot.
type Generator struct {
	sweepRange domain.DepositRange
	now        func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a report generator sweeping the given deposit range.
func NewGenerator(sweepRange domain.DepositRange) *Generator {
	return &Generator{
		sweepRange: sweepRange,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate computes the single scenario plus every sweep loss model for one
// parameter snapshot and audits the results. Deterministic given the clock
// and the parameters.
func (g *Generator) Generate(params domain.ParameterSet) (*Report, error) {
	deposits := g.sweepRange.Values()

	variants := make([]VariantSection, 0, len(SweepLossModels))
	for _, m := range SweepLossModels {
		rows, err := sweep.Run(params, deposits, m)
		if err != nil {
			return nil, fmt.Errorf("sweep %s: %w", m, err)
		}

		checks := analysis.CheckInvariants(rows, params.RedemptionFeeCapPct)
		variants = append(variants, VariantSection{
			LossModel:       m,
			Rows:            rows,
			Summary:         analysis.Analyze(rows),
			Curve:           analysis.ProfitCurve(rows),
			Checks:          checks,
			AllChecksPassed: analysis.AllPassed(checks),
		})
	}

	generatedAt := g.now()
	paramsID := fingerprint.ComputeParameterSetID(params)

	return &Report{
		GeneratedAt:    generatedAt,
		RunID:          fingerprint.ComputeRunID(paramsID, generatedAt),
		ParameterSetID: paramsID,
		Params:         params,
		Scenario:       feemodel.Compute(params),
		Variants:       variants,
	}, nil
}
