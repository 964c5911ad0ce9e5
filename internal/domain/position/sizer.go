// Package position converts volatility and account risk tolerance into a
// concrete share count and stop-loss levels.
package position

import (
	"fmt"
	"math"
)

// Verdict classifies the sizing outcome.
type Verdict string

const (
	// Accepted: the rounded position fits the account.
	Accepted Verdict = "ACCEPTED"
	// Unexecutable: even one share exceeds the risk budget.
	Unexecutable Verdict = "UNEXECUTABLE"
	// Unaffordable: the risk budget allows the shares but the account cannot
	// pay for them.
	Unaffordable Verdict = "UNAFFORDABLE"
)

// Plan is the position-sizing result. CalculatedShares is the raw pre-rounding
// estimate; the liquidity model reasons about that intended position even
// when the rounded plan is rejected.
type Plan struct {
	SuggestedShares   int     `json:"suggested_shares"`
	CalculatedShares  float64 `json:"calculated_shares"`
	StopDistance      float64 `json:"stop_distance"`
	StopLossLong      float64 `json:"stop_loss_long"`
	StopLossShort     float64 `json:"stop_loss_short"`
	PositionRisk      float64 `json:"position_risk_amount"`
	Verdict           Verdict `json:"verdict"`
	Note              string  `json:"note,omitempty"`
	MinAccountSize    float64 `json:"min_account_size,omitempty"` // set when Unexecutable
	AffordableShares  int     `json:"affordable_shares,omitempty"` // set when Unaffordable
}

// Size builds a plan from the current price, annualized volatility (percent),
// account size, and risk-per-trade fraction.
//
// Daily volatility = annual / sqrt(252). Stop distance = price * 2x daily
// volatility. Shares = risk budget / stop distance, floored. ok=false on
// degenerate inputs (non-positive price, volatility, or stop distance).
func Size(price, annualVolPct, accountSize, riskPerTrade float64) (Plan, bool) {
	if price <= 0 || annualVolPct <= 0 || accountSize <= 0 || riskPerTrade <= 0 {
		return Plan{}, false
	}
	dailyVol := (annualVolPct / 100) / math.Sqrt(252)
	stopDist := price * dailyVol * 2
	if stopDist <= 0 {
		return Plan{}, false
	}

	riskAmount := accountSize * riskPerTrade
	raw := riskAmount / stopDist
	shares := int(math.Floor(raw))

	plan := Plan{
		CalculatedShares: raw,
		StopDistance:     stopDist,
		StopLossLong:     price - stopDist,
		StopLossShort:    price + stopDist,
		PositionRisk:     riskAmount,
	}

	if shares < 1 {
		plan.Verdict = Unexecutable
		plan.MinAccountSize = stopDist / riskPerTrade
		plan.Note = fmt.Sprintf(
			"risk budget %.2f cannot cover one share stop of %.2f; account of at least %.0f required at this risk level",
			riskAmount, stopDist, plan.MinAccountSize)
		return plan, true
	}

	if float64(shares)*price > accountSize {
		affordable := int(math.Floor(accountSize / price))
		plan.Verdict = Unaffordable
		plan.SuggestedShares = shares
		plan.AffordableShares = affordable
		plan.Note = fmt.Sprintf(
			"%d shares cost more than the account; %d affordable - reduce risk per trade or add capital",
			shares, affordable)
		return plan, true
	}

	plan.Verdict = Accepted
	plan.SuggestedShares = shares
	plan.PositionRisk = float64(shares) * stopDist
	return plan, true
}

// HalveForSpeculative halves the share count for reduced-conviction signals,
// flooring at a minimum of one share. The original count is returned so the
// caller can keep it for display.
func (p *Plan) HalveForSpeculative() int {
	original := p.SuggestedShares
	if p.SuggestedShares >= 1 {
		halved := p.SuggestedShares / 2
		if halved < 1 {
			halved = 1
		}
		p.SuggestedShares = halved
	}
	return original
}
