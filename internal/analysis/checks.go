package analysis

import (
	"fmt"

	"redemption-fee-lab/internal/domain"
)

// CheckResult represents pass/fail for one integrity check over a sweep.
type CheckResult struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// checkEps absorbs float64 noise when comparing derived quantities.
const checkEps = 1e-9

// CheckInvariants audits computed rows against the model's guarantees:
// clamped fields stay non-negative, the charged fee never exceeds its cap or
// the uncovered cost, and deposits arrive in ascending order. capPct is the
// redemption fee cap the sweep ran with, needed to rebuild each row's cap.
// A failing check means a model bug, not bad input.
func CheckInvariants(rows []domain.SweepRow, capPct float64) []CheckResult {
	checks := make([]CheckResult, 0, 5)

	// 1. Uncovered cost clamped non-negative
	violations := 0
	worst := 0.0
	for _, r := range rows {
		if r.UncoveredCost < 0 {
			violations++
			if r.UncoveredCost < worst {
				worst = r.UncoveredCost
			}
		}
	}
	checks = append(checks, CheckResult{
		Name:      "Uncovered cost non-negative",
		Threshold: ">= 0",
		Actual:    violationDetail(violations, len(rows), worst),
		Pass:      violations == 0,
	})

	// 2. Fee charged clamped non-negative
	violations, worst = 0, 0.0
	for _, r := range rows {
		if r.FeeCharged < 0 {
			violations++
			if r.FeeCharged < worst {
				worst = r.FeeCharged
			}
		}
	}
	checks = append(checks, CheckResult{
		Name:      "Fee charged non-negative",
		Threshold: ">= 0",
		Actual:    violationDetail(violations, len(rows), worst),
		Pass:      violations == 0,
	})

	// 3. Fee charged within its cap.
	// The row does not carry the cap, but redemption = deposit - loss term
	// under both sweep variants, so the cap rebuilds exactly.
	violations, worst = 0, 0.0
	for _, r := range rows {
		cap := capPct / 100 * (r.Deposit - r.LossTerm)
		if excess := r.FeeCharged - cap; excess > checkEps {
			violations++
			if excess > worst {
				worst = excess
			}
		}
	}
	checks = append(checks, CheckResult{
		Name:      "Fee charged within cap",
		Threshold: "<= cap",
		Actual:    violationDetail(violations, len(rows), worst),
		Pass:      violations == 0,
	})

	// 4. Fee charged never exceeds the uncovered cost
	violations, worst = 0, 0.0
	for _, r := range rows {
		if excess := r.FeeCharged - r.UncoveredCost; excess > checkEps {
			violations++
			if excess > worst {
				worst = excess
			}
		}
	}
	checks = append(checks, CheckResult{
		Name:      "Fee charged within uncovered cost",
		Threshold: "<= uncovered",
		Actual:    violationDetail(violations, len(rows), worst),
		Pass:      violations == 0,
	})

	// 5. Deposits strictly ascending
	orderBreaks := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].Deposit <= rows[i-1].Deposit {
			orderBreaks++
		}
	}
	checks = append(checks, CheckResult{
		Name:      "Deposits strictly ascending",
		Threshold: "0 order breaks",
		Actual:    fmt.Sprintf("%d order breaks in %d rows", orderBreaks, len(rows)),
		Pass:      orderBreaks == 0,
	})

	return checks
}

// AllPassed reports whether every check passed.
func AllPassed(checks []CheckResult) bool {
	for _, c := range checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

// violationDetail formats a violation count, with the worst deviation when
// there is one.
func violationDetail(violations, total int, worst float64) string {
	if violations == 0 {
		return fmt.Sprintf("0 violations in %d rows", total)
	}
	return fmt.Sprintf("%d violations in %d rows (worst %.6f)", violations, total, worst)
}
