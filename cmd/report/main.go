// Package main writes the fee model report: markdown summary, per-variant
// sweep CSVs, and the break-even curve CSV.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"redemption-fee-lab/internal/config"
	"redemption-fee-lab/internal/reporting"
)

func main() {
	// Parse flags. Parameter overrides default to NaN so "not set" is
	// distinguishable from a legitimate zero; unset overrides keep the
	// configured defaults.
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration")
	outputDir := flag.String("output-dir", "docs", "Output directory for generated files")
	generatedAt := flag.String("generated-at", "", "Fixed report timestamp (RFC3339) for deterministic output")

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

	gen := reporting.NewGenerator(cfg.SweepRange())
	if *generatedAt != "" {
		at, err := time.Parse(time.RFC3339, *generatedAt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing --generated-at: %v\n", err)
			os.Exit(1)
		}
		gen = gen.WithClock(func() time.Time { return at })
	}

	report, err := gen.Generate(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	if err := reporting.WriteFiles(report, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report files: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Fee model report generated successfully:")
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.ReportFilename)
	for _, m := range reporting.SweepLossModels {
		fmt.Printf("  - %s/%s\n", *outputDir, reporting.SweepCSVName(m))
	}
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.BreakevenFilename)
}

// applyOverride replaces *dst with v unless the flag was left at its NaN
// default.
func applyOverride(dst *float64, v float64) {
	if !math.IsNaN(v) {
		*dst = v
	}
}
