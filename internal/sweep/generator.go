// Package sweep applies the fee model across a deposit range to expose how
// abuser profitability shifts with deposit size.
package sweep

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"redemption-fee-lab/internal/domain"
	"redemption-fee-lab/internal/observability"
)

// ErrUnsupportedLossModel indicates a loss model a sweep cannot run under.
var ErrUnsupportedLossModel = errors.New("loss model not supported for sweeps")

// Options configures a Generator.
type Options struct {
	// Logger receives one line per run. Nil discards log output.
	Logger *log.Logger
}

// Generator wraps Run with logging and Prometheus instrumentation for
// service callers. Library callers that want the bare computation use the
// package-level Run directly.
type Generator struct {
	logger *log.Logger
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Generator{logger: logger}
}

// Run applies the fee model at every deposit level and records run metrics:
// row count, duration, and last-run timestamp.
func (g *Generator) Run(p domain.ParameterSet, deposits []float64, variant domain.LossModel) ([]domain.SweepRow, error) {
	start := time.Now()

	rows, err := Run(p, deposits, variant)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	observability.RecordSweepRun(variant.String(), len(rows), elapsed.Seconds(), float64(time.Now().Unix()))
	g.logger.Printf("sweep %s: %d rows in %v", variant, len(rows), elapsed)
	return rows, nil
}

// Run applies the fee model at every deposit level under the given loss
// model: one row per deposit, output order = input order. Only ZERO_LOSS and
// EXPECTED_LOSS govern sweeps; LUCK_ADJUSTED belongs to the single-scenario
// breakdown and is rejected here.
func Run(p domain.ParameterSet, deposits []float64, variant domain.LossModel) ([]domain.SweepRow, error) {
	switch variant {
	case domain.LossModelZero, domain.LossModelExpected:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLossModel, variant)
	}

	rows := make([]domain.SweepRow, len(deposits))
	for i, deposit := range deposits {
		rows[i] = rowAt(p, deposit, variant)
	}
	return rows, nil
}

// rowAt computes one sweep row. The sweep models the minimal-wager abuse
// case: fee and edge are taken at 1x playthrough regardless of the
// parameter set's multiplier.
func rowAt(p domain.ParameterSet, deposit float64, variant domain.LossModel) domain.SweepRow {
	feeIncurred := deposit*p.ProviderFeePct/100 + p.ProviderFeeFixed
	theoreticalEdge := deposit * p.HouseEdgePct / 100
	cashback := deposit * p.CashbackPct / 100

	var lossTerm, redemption, uncovered float64
	switch variant {
	case domain.LossModelZero:
		// Abuser redeems the whole deposit; only the theoretical edge
		// offsets processor cost.
		lossTerm = 0
		redemption = deposit
		uncovered = math.Max(0, feeIncurred-math.Max(theoreticalEdge, 0))
	case domain.LossModelExpected:
		// Player statistically loses the edge before redeeming.
		lossTerm = theoreticalEdge
		redemption = math.Max(0, deposit-lossTerm)
		uncovered = math.Max(0, feeIncurred-lossTerm)
	}

	feeCap := p.RedemptionFeeCapPct / 100 * redemption
	feeCharged := math.Min(feeCap, uncovered)

	profit := cashback - feeCharged
	if variant == domain.LossModelExpected {
		profit -= lossTerm
	}

	return domain.SweepRow{
		Deposit:         deposit,
		FeeIncurred:     feeIncurred,
		TheoreticalEdge: theoreticalEdge,
		LossTerm:        lossTerm,
		UncoveredCost:   uncovered,
		FeeCharged:      feeCharged,
		Cashback:        cashback,
		AbuserProfit:    profit,
	}
}
