// Package analysis scans sweep output for abuser profitability.
package analysis

import "redemption-fee-lab/internal/domain"

// Summary aggregates profitability over one sweep.
type Summary struct {
	ProfitableCount  int      // rows where the abuser nets more than zero
	TotalCount       int      // rows scanned
	CrossoverDeposit *float64 // first profitable deposit in input order, nil if none
}

// Analyze scans rows in input order at full precision.
// Profit as a function of deposit is not proven monotonic (the fee cap can
// bend the curve), so the crossover is strictly the first profitable row
// found by linear scan: no sorting, no binary search.
func Analyze(rows []domain.SweepRow) Summary {
	s := Summary{TotalCount: len(rows)}
	for _, row := range rows {
		if row.AbuserProfit > 0 {
			s.ProfitableCount++
			if s.CrossoverDeposit == nil {
				d := row.Deposit
				s.CrossoverDeposit = &d
			}
		}
	}
	return s
}

// Partition splits rows into profitable and unprofitable slices, preserving
// input order. Diagnostic companion to Analyze for when the profit curve is
// non-monotonic and a single crossover undersells the picture.
func Partition(rows []domain.SweepRow) (profitable, unprofitable []domain.SweepRow) {
	for _, row := range rows {
		if row.AbuserProfit > 0 {
			profitable = append(profitable, row)
		} else {
			unprofitable = append(unprofitable, row)
		}
	}
	return profitable, unprofitable
}

// ProfitPoint is one point of the break-even curve.
type ProfitPoint struct {
	Deposit   float64
	ProfitPct float64 // abuser profit as percent of deposit
}

// ProfitCurve converts rows to (deposit, profit %) points for charting.
// Zero-deposit rows are excluded to avoid dividing by zero.
func ProfitCurve(rows []domain.SweepRow) []ProfitPoint {
	points := make([]ProfitPoint, 0, len(rows))
	for _, row := range rows {
		if row.Deposit <= 0 {
			continue
		}
		points = append(points, ProfitPoint{
			Deposit:   row.Deposit,
			ProfitPct: row.AbuserProfit / row.Deposit * 100,
		})
	}
	return points
}
