package api

import "time"

// ParamsDTO mirrors domain.ParameterSet on the wire. Field names match the
// YAML configuration keys so clients and config files speak one dialect.
type ParamsDTO struct {
	DepositAmount         float64 `json:"deposit_amount"`
	ProviderFeePct        float64 `json:"provider_fee_pct"`
	ProviderFeeFixed      float64 `json:"provider_fee_fixed"`
	HouseEdgePct          float64 `json:"house_edge_pct"`
	RedemptionFeeCapPct   float64 `json:"redemption_fee_cap_pct"`
	CashbackPct           float64 `json:"cashback_pct"`
	PlaythroughMultiplier float64 `json:"playthrough_multiplier"`
	LuckFactor            float64 `json:"luck_factor"`
}

// RangeDTO mirrors a domain Range or DepositRange.
type RangeDTO struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// SweepRequest asks for one sweep: a parameter snapshot, the loss model
// variant to run under, and an optional deposit range. Absent params fall
// back to the configured defaults; an absent range falls back to the
// configured sweep range.
type SweepRequest struct {
	Params  ParamsDTO `json:"params"`
	Variant string    `json:"variant"`
	Range   *RangeDTO `json:"range,omitempty"`
}

// ScenarioResponse is the single-deposit fee breakdown, money rounded to two
// decimals.
type ScenarioResponse struct {
	ParameterSetID   string  `json:"parameter_set_id"`
	FeeIncurred      float64 `json:"fee_incurred"`
	TotalWagered     float64 `json:"total_wagered"`
	TheoreticalEdge  float64 `json:"theoretical_edge"`
	ActualLosses     float64 `json:"actual_losses"`
	RedemptionAmount float64 `json:"redemption_amount"`
	UncoveredCost    float64 `json:"uncovered_cost"`
	FeeCap           float64 `json:"fee_cap"`
	ProcessingFee    float64 `json:"processing_fee"`
	NetRedemption    float64 `json:"net_redemption"`
}

// SweepRowDTO is one deposit level of a sweep, money rounded to two decimals.
type SweepRowDTO struct {
	Deposit         float64 `json:"deposit"`
	FeeIncurred     float64 `json:"fee_incurred"`
	TheoreticalEdge float64 `json:"theoretical_edge"`
	LossTerm        float64 `json:"loss_term"`
	UncoveredCost   float64 `json:"uncovered_cost"`
	FeeCharged      float64 `json:"fee_charged"`
	Cashback        float64 `json:"cashback"`
	AbuserProfit    float64 `json:"abuser_profit"`
}

// SummaryDTO aggregates profitability over one sweep. CrossoverDeposit is
// null when no deposit level is profitable.
type SummaryDTO struct {
	ProfitableCount  int      `json:"profitable_count"`
	TotalCount       int      `json:"total_count"`
	CrossoverDeposit *float64 `json:"crossover_deposit"`
}

// CurvePointDTO is one break-even curve point, profit percentage rounded to
// three decimals.
type CurvePointDTO struct {
	Deposit   float64 `json:"deposit"`
	ProfitPct float64 `json:"profit_pct"`
}

// SweepResponse carries one sweep run: rounded rows, the profitability
// summary, the break-even curve, and the alert line presentation layers
// show verbatim.
type SweepResponse struct {
	ParameterSetID string          `json:"parameter_set_id"`
	Variant        string          `json:"variant"`
	Rows           []SweepRowDTO   `json:"rows"`
	Summary        SummaryDTO      `json:"summary"`
	Curve          []CurvePointDTO `json:"curve"`
	Alert          string          `json:"alert"`
}

// BreakevenResponse carries the break-even curve without the row table, for
// chart-only consumers.
type BreakevenResponse struct {
	ParameterSetID   string          `json:"parameter_set_id"`
	Variant          string          `json:"variant"`
	Curve            []CurvePointDTO `json:"curve"`
	CrossoverDeposit *float64        `json:"crossover_deposit"`
	Alert            string          `json:"alert"`
}

// BoundsDTO holds the configured range per parameter.
type BoundsDTO struct {
	DepositAmount         RangeDTO `json:"deposit_amount"`
	ProviderFeePct        RangeDTO `json:"provider_fee_pct"`
	ProviderFeeFixed      RangeDTO `json:"provider_fee_fixed"`
	HouseEdgePct          RangeDTO `json:"house_edge_pct"`
	RedemptionFeeCapPct   RangeDTO `json:"redemption_fee_cap_pct"`
	CashbackPct           RangeDTO `json:"cashback_pct"`
	PlaythroughMultiplier RangeDTO `json:"playthrough_multiplier"`
	LuckFactor            RangeDTO `json:"luck_factor"`
}

// BoundsResponse describes what a client needs to build its input controls:
// per-parameter ranges and steps, default values, and the sweep range.
type BoundsResponse struct {
	Bounds   BoundsDTO `json:"bounds"`
	Defaults ParamsDTO `json:"defaults"`
	Sweep    RangeDTO  `json:"sweep"`
}

// StatusResponse is the JSON response for the /status endpoint.
type StatusResponse struct {
	Status                string    `json:"status"`
	Version               string    `json:"version"`
	StartedAt             time.Time `json:"started_at"`
	Uptime                string    `json:"uptime"`
	ScenarioRuns          int       `json:"scenario_runs"`
	SweepRuns             int       `json:"sweep_runs"`
	LiveSessionsOpen      int       `json:"live_sessions_open"`
	DefaultParameterSetID string    `json:"default_parameter_set_id"`
}

// ErrorResponse reports a rejected request. Fields carries one message per
// out-of-bounds parameter on validation failures.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// Live session frame types.
const (
	LiveFrameResult = "result"
	LiveFrameError  = "error"
)

// LiveResult is the server's reply to one live parameter message: the full
// recompute for that snapshot.
type LiveResult struct {
	Type           string           `json:"type"`
	SessionID      string           `json:"session_id"`
	Seq            uint64           `json:"seq"`
	ParameterSetID string           `json:"parameter_set_id"`
	Variant        string           `json:"variant"`
	Scenario       ScenarioResponse `json:"scenario"`
	Summary        SummaryDTO       `json:"summary"`
	Curve          []CurvePointDTO  `json:"curve"`
	Alert          string           `json:"alert"`
}

// LiveError reports a rejected live message. The session stays open.
type LiveError struct {
	Type   string   `json:"type"`
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}
