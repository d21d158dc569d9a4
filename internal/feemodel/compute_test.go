package feemodel

import (
	"math"
	"testing"

	"redemption-fee-lab/internal/domain"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestCompute_CardProcessingBaseline(t *testing.T) {
	// $100 deposit at 2.9% + $0.30, 2% edge, 5% cap, 1x playthrough, even luck
	result := Compute(domain.ParameterSet{
		DepositAmount:         100,
		ProviderFeePct:        2.9,
		ProviderFeeFixed:      0.30,
		HouseEdgePct:          2.0,
		RedemptionFeeCapPct:   5.0,
		PlaythroughMultiplier: 1.0,
		LuckFactor:            1.0,
	})

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"FeeIncurred", result.FeeIncurred, 3.20},
		{"TotalWagered", result.TotalWagered, 100.00},
		{"TheoreticalEdge", result.TheoreticalEdge, 2.00},
		{"ActualLosses", result.ActualLosses, 2.00},
		{"RedemptionAmount", result.RedemptionAmount, 98.00},
		{"UncoveredCost", result.UncoveredCost, 1.20},
		{"FeeCap", result.FeeCap, 4.90},
		{"ProcessingFee", result.ProcessingFee, 1.20},
		{"NetRedemption", result.NetRedemption, 96.80},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want) {
			t.Errorf("%s: expected %.2f, got %.10f", c.name, c.want, c.got)
		}
	}
}

func TestCompute_LuckFactorScalesLosses(t *testing.T) {
	base := domain.ParameterSet{
		DepositAmount:         200,
		ProviderFeePct:        2.9,
		ProviderFeeFixed:      0.30,
		HouseEdgePct:          4.0,
		RedemptionFeeCapPct:   5.0,
		PlaythroughMultiplier: 2.0,
		LuckFactor:            1.0,
	}
	// theoretical edge = 200 * 2 * 4% = 16
	edge := 16.0

	tests := []struct {
		name       string
		luckFactor float64
		wantLosses float64
	}{
		{"even luck loses the edge", 1.0, edge},
		{"worst luck loses double", 0.0, 2 * edge},
		{"best luck loses nothing", 2.0, 0},
		{"cold streak", 0.5, 1.5 * edge},
		{"hot streak", 1.5, 0.5 * edge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			p.LuckFactor = tt.luckFactor

			result := Compute(p)
			if !almostEqual(result.TheoreticalEdge, edge) {
				t.Fatalf("expected theoretical edge %.2f, got %.10f", edge, result.TheoreticalEdge)
			}
			if !almostEqual(result.ActualLosses, tt.wantLosses) {
				t.Errorf("expected actual losses %.2f, got %.10f", tt.wantLosses, result.ActualLosses)
			}
		})
	}
}

func TestCompute_LossesExceedDeposit(t *testing.T) {
	// 20x playthrough at 10% edge wipes the deposit several times over:
	// redemption, fee cap and processing fee all clamp to zero.
	result := Compute(domain.ParameterSet{
		DepositAmount:         100,
		ProviderFeePct:        2.9,
		ProviderFeeFixed:      0.30,
		HouseEdgePct:          10.0,
		RedemptionFeeCapPct:   5.0,
		PlaythroughMultiplier: 20.0,
		LuckFactor:            1.0,
	})

	if result.ActualLosses <= result.TotalWagered*0.10-tolerance {
		t.Fatalf("expected heavy losses, got %.4f", result.ActualLosses)
	}
	if result.RedemptionAmount != 0 {
		t.Errorf("expected redemption clamped to 0, got %.10f", result.RedemptionAmount)
	}
	if result.FeeCap != 0 {
		t.Errorf("expected fee cap 0, got %.10f", result.FeeCap)
	}
	if result.ProcessingFee != 0 {
		t.Errorf("expected processing fee 0, got %.10f", result.ProcessingFee)
	}
	if result.NetRedemption != 0 {
		t.Errorf("expected net redemption 0, got %.10f", result.NetRedemption)
	}
}

func TestCompute_ZeroDeposit(t *testing.T) {
	// Only the flat fee remains; nothing to redeem, nothing to charge.
	result := Compute(domain.ParameterSet{
		DepositAmount:         0,
		ProviderFeePct:        2.9,
		ProviderFeeFixed:      0.30,
		HouseEdgePct:          2.0,
		RedemptionFeeCapPct:   5.0,
		PlaythroughMultiplier: 1.0,
		LuckFactor:            1.0,
	})

	if !almostEqual(result.FeeIncurred, 0.30) {
		t.Errorf("expected fee incurred 0.30, got %.10f", result.FeeIncurred)
	}
	if !almostEqual(result.UncoveredCost, 0.30) {
		t.Errorf("expected uncovered cost 0.30, got %.10f", result.UncoveredCost)
	}
	if result.RedemptionAmount != 0 || result.ProcessingFee != 0 || result.NetRedemption != 0 {
		t.Errorf("expected zero redemption/fee/net, got %.4f/%.4f/%.4f",
			result.RedemptionAmount, result.ProcessingFee, result.NetRedemption)
	}
}

func TestCompute_FeeCapBinds(t *testing.T) {
	// Tiny cap on a large uncovered cost: the cap wins.
	result := Compute(domain.ParameterSet{
		DepositAmount:         100,
		ProviderFeePct:        10.0,
		ProviderFeeFixed:      1.0,
		HouseEdgePct:          0.5,
		RedemptionFeeCapPct:   1.0,
		PlaythroughMultiplier: 1.0,
		LuckFactor:            1.0,
	})

	// fee incurred 11.00, edge 0.50, uncovered 10.50, redemption 99.50, cap 0.995
	if !almostEqual(result.UncoveredCost, 10.50) {
		t.Fatalf("expected uncovered 10.50, got %.10f", result.UncoveredCost)
	}
	if !almostEqual(result.ProcessingFee, 0.995) {
		t.Errorf("expected processing fee capped at 0.995, got %.10f", result.ProcessingFee)
	}
}

func TestCompute_InvariantsAcrossGrid(t *testing.T) {
	deposits := []float64{0, 50, 100, 1000, 9000}
	feePcts := []float64{0, 2.9, 10}
	fixedFees := []float64{0, 0.30, 1}
	edges := []float64{0.5, 2, 10}
	caps := []float64{0, 5, 10}
	playthroughs := []float64{1, 5, 20}
	lucks := []float64{0, 0.5, 1, 1.5, 2}

	for _, deposit := range deposits {
		for _, feePct := range feePcts {
			for _, fixed := range fixedFees {
				for _, edge := range edges {
					for _, capPct := range caps {
						for _, playthrough := range playthroughs {
							for _, luck := range lucks {
								p := domain.ParameterSet{
									DepositAmount:         deposit,
									ProviderFeePct:        feePct,
									ProviderFeeFixed:      fixed,
									HouseEdgePct:          edge,
									RedemptionFeeCapPct:   capPct,
									CashbackPct:           2.0,
									PlaythroughMultiplier: playthrough,
									LuckFactor:            luck,
								}
								assertInvariants(t, p, Compute(p))
							}
						}
					}
				}
			}
		}
	}
}

func assertInvariants(t *testing.T, p domain.ParameterSet, r domain.ScenarioResult) {
	t.Helper()

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"FeeIncurred", r.FeeIncurred},
		{"ActualLosses", r.ActualLosses},
		{"RedemptionAmount", r.RedemptionAmount},
		{"UncoveredCost", r.UncoveredCost},
		{"FeeCap", r.FeeCap},
		{"ProcessingFee", r.ProcessingFee},
	}
	for _, nn := range nonNegative {
		if nn.value < 0 {
			t.Fatalf("%s negative (%.10f) for %+v", nn.name, nn.value, p)
		}
	}

	if r.ProcessingFee > r.UncoveredCost+tolerance {
		t.Fatalf("ProcessingFee %.10f exceeds UncoveredCost %.10f for %+v",
			r.ProcessingFee, r.UncoveredCost, p)
	}
	if r.ProcessingFee > r.FeeCap+tolerance {
		t.Fatalf("ProcessingFee %.10f exceeds FeeCap %.10f for %+v",
			r.ProcessingFee, r.FeeCap, p)
	}
	if r.NetRedemption > r.RedemptionAmount+tolerance {
		t.Fatalf("NetRedemption %.10f exceeds RedemptionAmount %.10f for %+v",
			r.NetRedemption, r.RedemptionAmount, p)
	}
}
