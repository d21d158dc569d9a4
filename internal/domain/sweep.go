package domain

// LossModel selects the loss assumption applied per deposit level.
type LossModel string

const (
	// LossModelZero assumes the abuser redeems the full deposit without
	// losing anything to wagering. Worst case for the platform.
	LossModelZero LossModel = "ZERO_LOSS"

	// LossModelExpected assumes the player loses exactly the theoretical
	// edge. Statistical average case.
	LossModelExpected LossModel = "EXPECTED_LOSS"

	// LossModelLuckAdjusted scales the theoretical edge by (2 - luck_factor).
	// Governs the single-scenario breakdown; sweeps do not accept it.
	LossModelLuckAdjusted LossModel = "LUCK_ADJUSTED"
)

// String returns the string representation of LossModel.
func (m LossModel) String() string {
	return string(m)
}

// IsValid checks if the loss model is a known value.
func (m LossModel) IsValid() bool {
	return m == LossModelZero || m == LossModelExpected || m == LossModelLuckAdjusted
}

// SweepRow represents one deposit level of a sweep. Rows preserve the order
// of the deposit sequence that produced them (ascending for the default
// range) and carry full precision; presentation layers round.
type SweepRow struct {
	Deposit         float64 // deposit level in dollars, the ordered key
	FeeIncurred     float64 // processor cost at this deposit
	TheoreticalEdge float64 // expected house win at 1x playthrough
	LossTerm        float64 // player losses under the governing loss model
	UncoveredCost   float64 // processor cost not offset by losses or edge, >= 0
	FeeCharged      float64 // capped redemption fee, >= 0
	Cashback        float64 // loyalty cashback paid on the deposit
	AbuserProfit    float64 // what the abuser nets at this deposit level
}

// DepositRange describes the deposit levels a sweep covers:
// Min..Max inclusive in Step increments.
type DepositRange struct {
	Min  float64
	Max  float64
	Step float64
}

// DefaultDepositRange covers $50..$9000 in $50 steps (180 levels).
var DefaultDepositRange = DepositRange{Min: 50, Max: 9000, Step: 50}

// Values expands the range into its ordered deposit sequence.
// Levels are computed by index, not accumulation, so fractional steps do
// not drift. Returns nil for a degenerate range.
func (r DepositRange) Values() []float64 {
	if r.Step <= 0 || r.Max < r.Min {
		return nil
	}
	n := int((r.Max-r.Min)/r.Step+1e-9) + 1
	values := make([]float64, n)
	for i := range values {
		values[i] = r.Min + float64(i)*r.Step
	}
	return values
}
