package reporting

import (
	"fmt"
	"strings"

	"redemption-fee-lab/internal/domain"
)

// RenderSweepCSV renders sweep rows as CSV string, money rounded to two
// decimals.
func RenderSweepCSV(rows []domain.SweepRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("deposit,fee_incurred,theoretical_edge,loss_term,")
	sb.WriteString("uncovered_cost,fee_charged,cashback,abuser_profit\n")

	// Rows
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			row.Deposit,
			row.FeeIncurred,
			row.TheoreticalEdge,
			row.LossTerm,
			row.UncoveredCost,
			row.FeeCharged,
			row.Cashback,
			row.AbuserProfit,
		))
	}

	return sb.String()
}

// RenderBreakevenCSV renders the per-variant profit curves side by side: one
// deposit column plus one profit percentage column per variant, three
// decimals. Variants of one report share the deposit sequence, so rows align
// by index.
func RenderBreakevenCSV(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("deposit")
	for _, v := range r.Variants {
		sb.WriteString(fmt.Sprintf(",%s_profit_pct", strings.ToLower(string(v.LossModel))))
	}
	sb.WriteString("\n")

	if len(r.Variants) == 0 {
		return sb.String()
	}

	// Rows
	for i, point := range r.Variants[0].Curve {
		sb.WriteString(fmt.Sprintf("%.2f", point.Deposit))
		for _, v := range r.Variants {
			if i < len(v.Curve) {
				sb.WriteString(fmt.Sprintf(",%.3f", v.Curve[i].ProfitPct))
			} else {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
