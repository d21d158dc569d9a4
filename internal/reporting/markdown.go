package reporting

import (
	"fmt"
	"strings"
	"time"

	"redemption-fee-lab/internal/domain"
)

// sweepExcerptRows caps how many sweep rows the markdown report inlines.
// The full tables go to the CSV exports.
const sweepExcerptRows = 12

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Fee Model Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Parameter Set: %s\n\n", r.RunID, r.ParameterSetID))

	// Parameters
	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Deposit Amount | $%.2f |\n", r.Params.DepositAmount))
	sb.WriteString(fmt.Sprintf("| Provider Fee | %.3f%% |\n", r.Params.ProviderFeePct))
	sb.WriteString(fmt.Sprintf("| Provider Fixed Fee | $%.2f |\n", r.Params.ProviderFeeFixed))
	sb.WriteString(fmt.Sprintf("| House Edge | %.3f%% |\n", r.Params.HouseEdgePct))
	sb.WriteString(fmt.Sprintf("| Redemption Fee Cap | %.3f%% |\n", r.Params.RedemptionFeeCapPct))
	sb.WriteString(fmt.Sprintf("| Cashback | %.3f%% |\n", r.Params.CashbackPct))
	sb.WriteString(fmt.Sprintf("| Playthrough Multiplier | %.1fx |\n", r.Params.PlaythroughMultiplier))
	sb.WriteString(fmt.Sprintf("| Luck Factor | %.2f |\n", r.Params.LuckFactor))
	sb.WriteString("\n")

	// Scenario Breakdown (single deposit, luck-adjusted)
	sb.WriteString("## Scenario Breakdown\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Deposit | $%.2f |\n", r.Params.DepositAmount))
	sb.WriteString(fmt.Sprintf("| Fee (our cost) | $%.2f |\n", r.Scenario.FeeIncurred))
	sb.WriteString(fmt.Sprintf("| Total Wagered | $%.2f |\n", r.Scenario.TotalWagered))
	sb.WriteString(fmt.Sprintf("| Theoretical Edge | $%.2f |\n", r.Scenario.TheoreticalEdge))
	sb.WriteString(fmt.Sprintf("| Actual Losses | $%.2f |\n", r.Scenario.ActualLosses))
	sb.WriteString(fmt.Sprintf("| Redemption Amount | $%.2f |\n", r.Scenario.RedemptionAmount))
	sb.WriteString(fmt.Sprintf("| Uncovered Cost | $%.2f |\n", r.Scenario.UncoveredCost))
	sb.WriteString(fmt.Sprintf("| Fee Cap | $%.2f |\n", r.Scenario.FeeCap))
	sb.WriteString(fmt.Sprintf("| Processing Fee Charged | $%.2f |\n", r.Scenario.ProcessingFee))
	sb.WriteString(fmt.Sprintf("| Net to Player | $%.2f |\n", r.Scenario.NetRedemption))
	sb.WriteString("\n")

	// Abuser analysis per sweep variant
	for i := range r.Variants {
		renderVariant(&sb, &r.Variants[i], r.Params.CashbackPct)
	}

	return sb.String()
}

// renderVariant renders one loss model's section: alerts, integrity checks,
// and a table excerpt.
func renderVariant(sb *strings.Builder, v *VariantSection, cashbackPct float64) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", variantHeading(v.LossModel)))

	sb.WriteString(ProfitabilityAlert(v.Summary) + "\n\n")
	if line := CrossoverAlert(v.Summary); line != "" {
		sb.WriteString(line + "\n\n")
	}

	// Integrity Checks
	sb.WriteString("### Integrity Checks\n\n")
	sb.WriteString("| Check | Threshold | Actual | Status |\n")
	sb.WriteString("|-------|-----------|--------|--------|\n")
	for _, check := range v.Checks {
		status := "FAIL"
		if check.Pass {
			status = "PASS"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			check.Name, check.Threshold, check.Actual, status))
	}
	sb.WriteString("\n")
	if v.AllChecksPassed {
		sb.WriteString("**All checks passed.**\n\n")
	} else {
		sb.WriteString("**Some checks failed.** The run violated a model invariant.\n\n")
	}

	// Sweep excerpt
	sb.WriteString("### Sweep Excerpt\n\n")
	rows := v.Rows
	if len(rows) > sweepExcerptRows {
		rows = rows[:sweepExcerptRows]
	}
	sb.WriteString(RenderSweepTable(v.LossModel, rows, cashbackPct))
	if len(v.Rows) > sweepExcerptRows {
		sb.WriteString(fmt.Sprintf("\nFirst %d of %d rows; the full table is in %s.\n",
			sweepExcerptRows, len(v.Rows), SweepCSVName(v.LossModel)))
	}
	sb.WriteString("\n")
}

// RenderSweepTable renders sweep rows as a Markdown table, money rounded to
// two decimals. The loss column is labeled per variant: the zero-loss table
// shows the theoretical edge the fee formula credits, the expected-loss table
// shows the losses actually deducted.
func RenderSweepTable(m domain.LossModel, rows []domain.SweepRow, cashbackPct float64) string {
	var sb strings.Builder

	lossLabel := "Theo Edge"
	if m == domain.LossModelExpected {
		lossLabel = "Expected Loss"
	}

	sb.WriteString(fmt.Sprintf("| Deposit | Fee | %s | Uncovered | Fee Charged | Cashback (%g%%) | Abuser Profit |\n",
		lossLabel, cashbackPct))
	sb.WriteString("|---------|-----|-----------|-----------|-------------|----------|---------------|\n")
	for _, row := range rows {
		loss := row.TheoreticalEdge
		if m == domain.LossModelExpected {
			loss = row.LossTerm
		}
		sb.WriteString(fmt.Sprintf("| $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f |\n",
			row.Deposit, row.FeeIncurred, loss, row.UncoveredCost, row.FeeCharged, row.Cashback, row.AbuserProfit))
	}

	return sb.String()
}

// variantHeading names one sweep variant's section.
func variantHeading(m domain.LossModel) string {
	switch m {
	case domain.LossModelZero:
		return "Abuser Analysis: ZERO_LOSS (1x playthrough, full withdrawal)"
	case domain.LossModelExpected:
		return "Abuser Analysis: EXPECTED_LOSS (1x playthrough, house edge losses)"
	default:
		return "Abuser Analysis: " + string(m)
	}
}
