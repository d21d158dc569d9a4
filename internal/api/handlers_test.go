package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redemption-fee-lab/internal/domain"
)

// workedExample is the card-processing baseline: every endpoint test checks
// against the numbers this parameter set is known to produce.
const workedExample = `{
	"deposit_amount": 100,
	"provider_fee_pct": 2.9,
	"provider_fee_fixed": 0.30,
	"house_edge_pct": 2.0,
	"redemption_fee_cap_pct": 5.0,
	"cashback_pct": 2.0,
	"playthrough_multiplier": 1.0,
	"luck_factor": 1.0
}`

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestScenarioEndpoint_WorkedExample(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenario", workedExample)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[ScenarioResponse](t, rec)
	assert.NotEmpty(t, resp.ParameterSetID)
	assert.InDelta(t, 3.20, resp.FeeIncurred, 1e-9)
	assert.InDelta(t, 100.00, resp.TotalWagered, 1e-9)
	assert.InDelta(t, 2.00, resp.TheoreticalEdge, 1e-9)
	assert.InDelta(t, 2.00, resp.ActualLosses, 1e-9)
	assert.InDelta(t, 98.00, resp.RedemptionAmount, 1e-9)
	assert.InDelta(t, 1.20, resp.UncoveredCost, 1e-9)
	assert.InDelta(t, 4.90, resp.FeeCap, 1e-9)
	assert.InDelta(t, 1.20, resp.ProcessingFee, 1e-9)
	assert.InDelta(t, 96.80, resp.NetRedemption, 1e-9)
}

func TestScenarioEndpoint_AbsentFieldsKeepDefaults(t *testing.T) {
	// The configured defaults are the worked example, so an empty body must
	// reproduce it.
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenario", `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[ScenarioResponse](t, rec)
	assert.InDelta(t, 3.20, resp.FeeIncurred, 1e-9)
	assert.InDelta(t, 96.80, resp.NetRedemption, 1e-9)
}

func TestScenarioEndpoint_RoundsMoneyToCents(t *testing.T) {
	// 70 * 3.33% + 0.30 = 2.631, which must arrive as 2.63.
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenario",
		`{"deposit_amount": 70, "provider_fee_pct": 3.33}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[ScenarioResponse](t, rec)
	assert.InDelta(t, 2.63, resp.FeeIncurred, 1e-9)
}

func TestScenarioEndpoint_OutOfBounds(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenario",
		`{"deposit_amount": 99999, "luck_factor": 7}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "parameters out of bounds", resp.Error)
	require.Len(t, resp.Fields, 2)
	assert.Contains(t, resp.Fields[0], "deposit_amount")
	assert.Contains(t, resp.Fields[1], "luck_factor")
}

func TestScenarioEndpoint_MalformedJSON(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/scenario", `{"deposit_amount": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeBody[ErrorResponse](t, rec)
	assert.Contains(t, resp.Error, "decode body")
}

func TestSweepEndpoint_ZeroLossWorkedExample(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep",
		`{"params": `+workedExample+`, "variant": "ZERO_LOSS"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[SweepResponse](t, rec)
	assert.Equal(t, "ZERO_LOSS", resp.Variant)
	require.Len(t, resp.Rows, 180)

	// Second row is the $100 deposit level.
	row := resp.Rows[1]
	assert.InDelta(t, 100.00, row.Deposit, 1e-9)
	assert.InDelta(t, 3.20, row.FeeIncurred, 1e-9)
	assert.InDelta(t, 0.00, row.LossTerm, 1e-9)
	assert.InDelta(t, 1.20, row.UncoveredCost, 1e-9)
	assert.InDelta(t, 1.20, row.FeeCharged, 1e-9)
	assert.InDelta(t, 2.00, row.Cashback, 1e-9)
	assert.InDelta(t, 0.80, row.AbuserProfit, 1e-9)

	// With these parameters every level is profitable from $50 up.
	assert.Equal(t, 180, resp.Summary.ProfitableCount)
	assert.Equal(t, 180, resp.Summary.TotalCount)
	require.NotNil(t, resp.Summary.CrossoverDeposit)
	assert.InDelta(t, 50.0, *resp.Summary.CrossoverDeposit, 1e-9)
	assert.Equal(t, "Abuser is profitable at 180/180 deposit levels", resp.Alert)
	assert.Len(t, resp.Curve, 180)
}

func TestSweepEndpoint_ExpectedLossNeverProfitable(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep",
		`{"params": `+workedExample+`, "variant": "EXPECTED_LOSS"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[SweepResponse](t, rec)
	row := resp.Rows[1]
	assert.InDelta(t, 2.00, row.LossTerm, 1e-9)
	assert.InDelta(t, 1.20, row.FeeCharged, 1e-9)
	assert.InDelta(t, -1.20, row.AbuserProfit, 1e-9)

	assert.Equal(t, 0, resp.Summary.ProfitableCount)
	assert.Nil(t, resp.Summary.CrossoverDeposit)
	assert.Equal(t, "Abuser is never profitable across the swept deposit range.", resp.Alert)
}

func TestSweepEndpoint_CustomRange(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep",
		`{"variant": "ZERO_LOSS", "range": {"min": 100, "max": 300, "step": 100}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[SweepResponse](t, rec)
	require.Len(t, resp.Rows, 3)
	assert.InDelta(t, 100.0, resp.Rows[0].Deposit, 1e-9)
	assert.InDelta(t, 200.0, resp.Rows[1].Deposit, 1e-9)
	assert.InDelta(t, 300.0, resp.Rows[2].Deposit, 1e-9)
}

func TestSweepEndpoint_DegenerateRange(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep",
		`{"variant": "ZERO_LOSS", "range": {"min": 100, "max": 50, "step": 50}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSweepEndpoint_RejectsBadVariants(t *testing.T) {
	router := NewServer(Options{}).Router()

	for _, variant := range []string{"MONTE_CARLO", "LUCK_ADJUSTED"} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep",
			`{"variant": "`+variant+`"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, "variant %s", variant)

		resp := decodeBody[ErrorResponse](t, rec)
		assert.Contains(t, resp.Error, variant)
	}
}

func TestSweepEndpoint_DefaultVariantIsZeroLoss(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/sweep", `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[SweepResponse](t, rec)
	assert.Equal(t, "ZERO_LOSS", resp.Variant)
}

func TestBreakevenEndpoint_CurveAndCrossover(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/breakeven",
		`{"params": `+workedExample+`, "variant": "ZERO_LOSS"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[BreakevenResponse](t, rec)
	require.Len(t, resp.Curve, 180)

	// $50: profit 0.25 on 50 = 0.5%; $350: profit 3.55 on 350 = 1.014%
	// after three-decimal rounding.
	assert.InDelta(t, 50.0, resp.Curve[0].Deposit, 1e-9)
	assert.InDelta(t, 0.5, resp.Curve[0].ProfitPct, 1e-9)
	assert.InDelta(t, 350.0, resp.Curve[6].Deposit, 1e-9)
	assert.InDelta(t, 1.014, resp.Curve[6].ProfitPct, 1e-9)

	require.NotNil(t, resp.CrossoverDeposit)
	assert.InDelta(t, 50.0, *resp.CrossoverDeposit, 1e-9)
	assert.Contains(t, resp.Alert, "Abuser is profitable at 180/180 deposit levels")
	assert.Contains(t, resp.Alert, "crosses zero at deposit $50.00")
}

func TestBreakevenEndpoint_NoCrossover(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/breakeven",
		`{"params": `+workedExample+`, "variant": "EXPECTED_LOSS"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[BreakevenResponse](t, rec)
	assert.Nil(t, resp.CrossoverDeposit)
	assert.Equal(t, "Abuser is never profitable across the swept deposit range.", resp.Alert)
}

func TestBoundsEndpoint_EchoesConfiguration(t *testing.T) {
	srv := NewServer(Options{
		Bounds:     domain.DefaultBounds,
		Defaults:   domain.DefaultParameterSet,
		SweepRange: domain.DepositRange{Min: 100, Max: 2000, Step: 100},
	})

	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/v1/bounds", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[BoundsResponse](t, rec)
	assert.Equal(t, RangeDTO{Min: 0, Max: 9000, Step: 50}, resp.Bounds.DepositAmount)
	assert.Equal(t, RangeDTO{Min: 0, Max: 2, Step: 0.1}, resp.Bounds.LuckFactor)
	assert.InDelta(t, 2.9, resp.Defaults.ProviderFeePct, 1e-9)
	assert.Equal(t, RangeDTO{Min: 100, Max: 2000, Step: 100}, resp.Sweep)
}

func TestHealthz(t *testing.T) {
	router := NewServer(Options{}).Router()

	rec := doJSON(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatusEndpoint_CountsRuns(t *testing.T) {
	srv := NewServer(Options{Version: "1.2.3"})
	router := srv.Router()

	doJSON(t, router, http.MethodPost, "/api/v1/scenario", `{}`)
	doJSON(t, router, http.MethodPost, "/api/v1/sweep", `{}`)

	rec := doJSON(t, router, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[StatusResponse](t, rec)
	assert.Equal(t, "running", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, 1, resp.ScenarioRuns)
	assert.Equal(t, 1, resp.SweepRuns)
	assert.Equal(t, 0, resp.LiveSessionsOpen)
	assert.NotEmpty(t, resp.DefaultParameterSetID)
	assert.NotEmpty(t, resp.Uptime)
}
