package domain

// ScenarioResult represents the full fee breakdown for a single deposit,
// derived from a ParameterSet under the LUCK_ADJUSTED loss model.
// Monetary fields are clamped non-negative by the model. Values carry full
// float64 precision; rounding happens at the presentation boundary only.
type ScenarioResult struct {
	FeeIncurred      float64 // processor cost of accepting the deposit
	TotalWagered     float64 // deposit * playthrough multiplier
	TheoreticalEdge  float64 // expected house win on total wagered
	ActualLosses     float64 // luck-adjusted player losses, >= 0
	RedemptionAmount float64 // balance available for cash-out, >= 0
	UncoveredCost    float64 // processor cost not offset by player losses, >= 0
	FeeCap           float64 // ceiling on the processing fee, cap pct of redemption
	ProcessingFee    float64 // fee actually charged, min(cap, uncovered cost)
	NetRedemption    float64 // redemption amount after the processing fee
}
