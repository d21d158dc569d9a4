// Package feemodel implements the redemption fee computation for a single
// deposit scenario.
package feemodel

import (
	"math"

	"redemption-fee-lab/internal/domain"
)

// Compute derives the full fee breakdown for one deposit.
// Pure and total: every monetary intermediate is clamped non-negative, so any
// in-range ParameterSet yields a valid result with no error path. Losses
// follow the LUCK_ADJUSTED model: luck_factor=1 means the player lost exactly
// the theoretical edge, 0 means twice it, 2 means the player ran hot and
// lost nothing.
func Compute(p domain.ParameterSet) domain.ScenarioResult {
	feeIncurred := p.DepositAmount*p.ProviderFeePct/100 + p.ProviderFeeFixed
	totalWagered := p.DepositAmount * p.PlaythroughMultiplier
	theoreticalEdge := totalWagered * p.HouseEdgePct / 100
	actualLosses := math.Max(0, theoreticalEdge*(2-p.LuckFactor))
	redemptionAmount := math.Max(0, p.DepositAmount-actualLosses)

	// Recover only the processor cost not already offset by expected or
	// actual player losses, whichever is larger.
	uncoveredCost := math.Max(0, feeIncurred-math.Max(theoreticalEdge, actualLosses))

	feeCap := p.RedemptionFeeCapPct / 100 * redemptionAmount
	processingFee := math.Min(feeCap, uncoveredCost)

	return domain.ScenarioResult{
		FeeIncurred:      feeIncurred,
		TotalWagered:     totalWagered,
		TheoreticalEdge:  theoreticalEdge,
		ActualLosses:     actualLosses,
		RedemptionAmount: redemptionAmount,
		UncoveredCost:    uncoveredCost,
		FeeCap:           feeCap,
		ProcessingFee:    processingFee,
		NetRedemption:    redemptionAmount - processingFee,
	}
}
