package reporting

import (
	"fmt"

	"redemption-fee-lab/internal/analysis"
)

// ProfitabilityAlert returns the warning or all-clear line for a sweep
// summary.
func ProfitabilityAlert(s analysis.Summary) string {
	if s.ProfitableCount > 0 {
		return fmt.Sprintf("Abuser is profitable at %d/%d deposit levels", s.ProfitableCount, s.TotalCount)
	}
	return "Abuser is never profitable across the swept deposit range."
}

// CrossoverAlert returns the crossover line, or the empty string when profit
// never turns positive.
func CrossoverAlert(s analysis.Summary) string {
	if s.CrossoverDeposit == nil {
		return ""
	}
	return fmt.Sprintf("Abuser profit crosses zero at deposit $%.2f.", *s.CrossoverDeposit)
}
