// Package main renders one sweep variant as a markdown table on stdout for
// quick inspection without writing report files.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"redemption-fee-lab/internal/analysis"
	"redemption-fee-lab/internal/config"
	"redemption-fee-lab/internal/domain"
	"redemption-fee-lab/internal/reporting"
	"redemption-fee-lab/internal/sweep"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration")
	variant := flag.String("variant", domain.LossModelZero.String(), "Loss model variant (ZERO_LOSS, EXPECTED_LOSS)")

	rangeMin := flag.Float64("range-min", math.NaN(), "Sweep range minimum deposit override")
	rangeMax := flag.Float64("range-max", math.NaN(), "Sweep range maximum deposit override")
	rangeStep := flag.Float64("range-step", math.NaN(), "Sweep range step override")

	deposit := flag.Float64("deposit", math.NaN(), "Deposit amount override")
	feePct := flag.Float64("provider-fee-pct", math.NaN(), "Provider percentage fee override")
	feeFixed := flag.Float64("provider-fee-fixed", math.NaN(), "Provider fixed fee override")
	edgePct := flag.Float64("house-edge-pct", math.NaN(), "House edge percentage override")
	capPct := flag.Float64("fee-cap-pct", math.NaN(), "Redemption fee cap percentage override")
	cashbackPct := flag.Float64("cashback-pct", math.NaN(), "Cashback percentage override")
	playthrough := flag.Float64("playthrough", math.NaN(), "Playthrough multiplier override")
	luck := flag.Float64("luck-factor", math.NaN(), "Luck factor override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	params := cfg.DefaultParameters()
	applyOverride(&params.DepositAmount, *deposit)
	applyOverride(&params.ProviderFeePct, *feePct)
	applyOverride(&params.ProviderFeeFixed, *feeFixed)
	applyOverride(&params.HouseEdgePct, *edgePct)
	applyOverride(&params.RedemptionFeeCapPct, *capPct)
	applyOverride(&params.CashbackPct, *cashbackPct)
	applyOverride(&params.PlaythroughMultiplier, *playthrough)
	applyOverride(&params.LuckFactor, *luck)

	if err := cfg.ParameterBounds().Check(params); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sweepRange := cfg.SweepRange()
	applyOverride(&sweepRange.Min, *rangeMin)
	applyOverride(&sweepRange.Max, *rangeMax)
	applyOverride(&sweepRange.Step, *rangeStep)
	deposits := sweepRange.Values()
	if len(deposits) == 0 {
		fmt.Fprintf(os.Stderr, "Error: degenerate deposit range %+v\n", sweepRange)
		os.Exit(1)
	}

	model := domain.LossModel(strings.ToUpper(strings.TrimSpace(*variant)))
	rows, err := sweep.Run(params, deposits, model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	summary := analysis.Analyze(rows)

	fmt.Print(reporting.RenderSweepTable(model, rows, params.CashbackPct))
	fmt.Println()
	fmt.Println(reporting.ProfitabilityAlert(summary))
	if line := reporting.CrossoverAlert(summary); line != "" {
		fmt.Println(line)
	}
}

// applyOverride replaces *dst with v unless the flag was left at its NaN
// default.
func applyOverride(dst *float64, v float64) {
	if !math.IsNaN(v) {
		*dst = v
	}
}
