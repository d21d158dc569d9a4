// Package fingerprint derives deterministic identifiers for parameter sets
// and report runs, so equal inputs always map to the same IDs in reports
// and log lines.
package fingerprint

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"

	"redemption-fee-lab/internal/domain"
)

// ComputeParameterSetID computes a deterministic parameter set identifier
// using SHA256.
// Formula: SHA256(deposit|fee_pct|fee_fixed|edge_pct|cap_pct|cashback_pct|playthrough|luck)
// with every field fixed to six decimal places.
// Returns the base58-encoded hash.
func ComputeParameterSetID(p domain.ParameterSet) string {
	data := fmt.Sprintf("%.6f|%.6f|%.6f|%.6f|%.6f|%.6f|%.6f|%.6f",
		p.DepositAmount,
		p.ProviderFeePct,
		p.ProviderFeeFixed,
		p.HouseEdgePct,
		p.RedemptionFeeCapPct,
		p.CashbackPct,
		p.PlaythroughMultiplier,
		p.LuckFactor,
	)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:])
}
