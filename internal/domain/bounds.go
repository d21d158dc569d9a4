package domain

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a ParameterSet field outside its configured bounds.
var ErrOutOfRange = errors.New("parameter out of range")

// Range bounds a single ParameterSet field. Step is the granularity an input
// control should use; Check only enforces Min/Max.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Bounds holds the allowed range per ParameterSet field. Ranges are
// configuration, not constants: the source material disagrees on several
// upper bounds and steps, so deployments override them via config.
type Bounds struct {
	DepositAmount         Range
	ProviderFeePct        Range
	ProviderFeeFixed      Range
	HouseEdgePct          Range
	RedemptionFeeCapPct   Range
	CashbackPct           Range
	PlaythroughMultiplier Range
	LuckFactor            Range
}

// DefaultBounds mirror the input controls of the original model.
var DefaultBounds = Bounds{
	DepositAmount:         Range{Min: 0, Max: 9000, Step: 50},
	ProviderFeePct:        Range{Min: 0, Max: 10, Step: 0.1},
	ProviderFeeFixed:      Range{Min: 0, Max: 1, Step: 0.05},
	HouseEdgePct:          Range{Min: 0.5, Max: 10, Step: 0.5},
	RedemptionFeeCapPct:   Range{Min: 0, Max: 10, Step: 0.5},
	CashbackPct:           Range{Min: 0, Max: 5, Step: 0.5},
	PlaythroughMultiplier: Range{Min: 1, Max: 20, Step: 0.5},
	LuckFactor:            Range{Min: 0, Max: 2, Step: 0.1},
}

// fields pairs every bound with its wire name for iteration.
func (b Bounds) fields() []struct {
	Name  string
	Range Range
} {
	return []struct {
		Name  string
		Range Range
	}{
		{"deposit_amount", b.DepositAmount},
		{"provider_fee_pct", b.ProviderFeePct},
		{"provider_fee_fixed", b.ProviderFeeFixed},
		{"house_edge_pct", b.HouseEdgePct},
		{"redemption_fee_cap_pct", b.RedemptionFeeCapPct},
		{"cashback_pct", b.CashbackPct},
		{"playthrough_multiplier", b.PlaythroughMultiplier},
		{"luck_factor", b.LuckFactor},
	}
}

// Check validates every ParameterSet field against the bounds.
// The model itself clamps intermediates, so Check is the fail-fast gate at
// input boundaries (API, CLI); it returns ErrOutOfRange wrapped with the
// first offending field.
func (b Bounds) Check(p ParameterSet) error {
	errs := b.CheckAll(p)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// CheckAll returns one error per out-of-bounds field, each wrapping
// ErrOutOfRange. Callers that report field-level validation messages use
// this; Check keeps the single-error shape.
func (b Bounds) CheckAll(p ParameterSet) []error {
	values := []float64{
		p.DepositAmount,
		p.ProviderFeePct,
		p.ProviderFeeFixed,
		p.HouseEdgePct,
		p.RedemptionFeeCapPct,
		p.CashbackPct,
		p.PlaythroughMultiplier,
		p.LuckFactor,
	}
	var errs []error
	for i, f := range b.fields() {
		if !f.Range.Contains(values[i]) {
			errs = append(errs, fmt.Errorf("%w: %s=%g not in [%g, %g]",
				ErrOutOfRange, f.Name, values[i], f.Range.Min, f.Range.Max))
		}
	}
	return errs
}

// Validate checks the bounds themselves are usable.
func (b Bounds) Validate() error {
	for _, f := range b.fields() {
		if f.Range.Max < f.Range.Min {
			return fmt.Errorf("bounds %s: max %g below min %g", f.Name, f.Range.Max, f.Range.Min)
		}
		if f.Range.Step <= 0 {
			return fmt.Errorf("bounds %s: step must be positive, got %g", f.Name, f.Range.Step)
		}
	}
	return nil
}
