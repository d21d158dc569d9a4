package domain

// ParameterSet holds the model inputs for one computation run.
// Percentage fields are percentage points (2.9 means 2.9%), monetary fields
// are dollars. A ParameterSet is always passed by value so each computation
// works on an immutable snapshot.
type ParameterSet struct {
	DepositAmount         float64 // dollars deposited
	ProviderFeePct        float64 // payment processor percentage fee
	ProviderFeeFixed      float64 // payment processor flat fee in dollars
	HouseEdgePct          float64 // expected statistical edge per unit wagered
	RedemptionFeeCapPct   float64 // max fee as percent of the redemption amount
	CashbackPct           float64 // loyalty cashback rate
	PlaythroughMultiplier float64 // wager-to-deposit ratio required before cash-out
	LuckFactor            float64 // deviation of actual losses from expectation (1 = exactly expected)
}

// DefaultParameterSet is the canonical starting point: card processing at
// 2.9% + $0.30, 2% house edge, 5% fee cap, 2% cashback, minimal playthrough.
var DefaultParameterSet = ParameterSet{
	DepositAmount:         100,
	ProviderFeePct:        2.9,
	ProviderFeeFixed:      0.30,
	HouseEdgePct:          2.0,
	RedemptionFeeCapPct:   5.0,
	CashbackPct:           2.0,
	PlaythroughMultiplier: 1.0,
	LuckFactor:            1.0,
}
