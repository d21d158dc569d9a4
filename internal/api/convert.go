package api

import (
	"math"

	"redemption-fee-lab/internal/analysis"
	"redemption-fee-lab/internal/domain"
)

// The model computes at full float64 precision; this file is the wire
// rounding boundary. Money rounds to two decimals, percentages to three.

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// FromParameterSet converts a domain ParameterSet to its wire form.
func FromParameterSet(p domain.ParameterSet) ParamsDTO {
	return ParamsDTO{
		DepositAmount:         p.DepositAmount,
		ProviderFeePct:        p.ProviderFeePct,
		ProviderFeeFixed:      p.ProviderFeeFixed,
		HouseEdgePct:          p.HouseEdgePct,
		RedemptionFeeCapPct:   p.RedemptionFeeCapPct,
		CashbackPct:           p.CashbackPct,
		PlaythroughMultiplier: p.PlaythroughMultiplier,
		LuckFactor:            p.LuckFactor,
	}
}

// ToParameterSet converts wire params to the domain type.
func (d ParamsDTO) ToParameterSet() domain.ParameterSet {
	return domain.ParameterSet{
		DepositAmount:         d.DepositAmount,
		ProviderFeePct:        d.ProviderFeePct,
		ProviderFeeFixed:      d.ProviderFeeFixed,
		HouseEdgePct:          d.HouseEdgePct,
		RedemptionFeeCapPct:   d.RedemptionFeeCapPct,
		CashbackPct:           d.CashbackPct,
		PlaythroughMultiplier: d.PlaythroughMultiplier,
		LuckFactor:            d.LuckFactor,
	}
}

// ToDepositRange converts a wire range to the domain type.
func (d RangeDTO) ToDepositRange() domain.DepositRange {
	return domain.DepositRange{Min: d.Min, Max: d.Max, Step: d.Step}
}

func fromDepositRange(r domain.DepositRange) RangeDTO {
	return RangeDTO{Min: r.Min, Max: r.Max, Step: r.Step}
}

func fromRange(r domain.Range) RangeDTO {
	return RangeDTO{Min: r.Min, Max: r.Max, Step: r.Step}
}

func toScenarioResponse(paramsID string, r domain.ScenarioResult) ScenarioResponse {
	return ScenarioResponse{
		ParameterSetID:   paramsID,
		FeeIncurred:      round2(r.FeeIncurred),
		TotalWagered:     round2(r.TotalWagered),
		TheoreticalEdge:  round2(r.TheoreticalEdge),
		ActualLosses:     round2(r.ActualLosses),
		RedemptionAmount: round2(r.RedemptionAmount),
		UncoveredCost:    round2(r.UncoveredCost),
		FeeCap:           round2(r.FeeCap),
		ProcessingFee:    round2(r.ProcessingFee),
		NetRedemption:    round2(r.NetRedemption),
	}
}

func toSweepRows(rows []domain.SweepRow) []SweepRowDTO {
	out := make([]SweepRowDTO, len(rows))
	for i, r := range rows {
		out[i] = SweepRowDTO{
			Deposit:         round2(r.Deposit),
			FeeIncurred:     round2(r.FeeIncurred),
			TheoreticalEdge: round2(r.TheoreticalEdge),
			LossTerm:        round2(r.LossTerm),
			UncoveredCost:   round2(r.UncoveredCost),
			FeeCharged:      round2(r.FeeCharged),
			Cashback:        round2(r.Cashback),
			AbuserProfit:    round2(r.AbuserProfit),
		}
	}
	return out
}

// toSummary passes the crossover deposit through unrounded: it is a value
// from the swept grid, not a derived amount.
func toSummary(s analysis.Summary) SummaryDTO {
	return SummaryDTO{
		ProfitableCount:  s.ProfitableCount,
		TotalCount:       s.TotalCount,
		CrossoverDeposit: s.CrossoverDeposit,
	}
}

func toCurve(points []analysis.ProfitPoint) []CurvePointDTO {
	out := make([]CurvePointDTO, len(points))
	for i, p := range points {
		out[i] = CurvePointDTO{
			Deposit:   round2(p.Deposit),
			ProfitPct: round3(p.ProfitPct),
		}
	}
	return out
}

func fromBounds(b domain.Bounds) BoundsDTO {
	return BoundsDTO{
		DepositAmount:         fromRange(b.DepositAmount),
		ProviderFeePct:        fromRange(b.ProviderFeePct),
		ProviderFeeFixed:      fromRange(b.ProviderFeeFixed),
		HouseEdgePct:          fromRange(b.HouseEdgePct),
		RedemptionFeeCapPct:   fromRange(b.RedemptionFeeCapPct),
		CashbackPct:           fromRange(b.CashbackPct),
		PlaythroughMultiplier: fromRange(b.PlaythroughMultiplier),
		LuckFactor:            fromRange(b.LuckFactor),
	}
}
