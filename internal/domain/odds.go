package domain

import "math"

const (
	// EvenOdds is returned for both sides while no one has bet yet.
	EvenOdds = 2.0
	MinOdds  = 1.01
	MaxOdds  = 5.0
)

// Odds holds the payout multiplier for each side.
type Odds struct {
	Blue float64 `json:"blue"`
	Red  float64 `json:"red"`
}

// For returns the multiplier for the given side.
func (o Odds) For(side Side) float64 {
	if side == SideRed {
		return o.Red
	}
	return o.Blue
}

// ComputeOdds maps the two pool totals to parimutuel multipliers.
//
// An empty side counts as 1 token so the other side never divides by zero.
// Each multiplier is clamped to [MinOdds, MaxOdds] and rounded half-up to
// two decimals.
func ComputeOdds(bluePool, redPool int64) Odds {
	if bluePool+redPool == 0 {
		return Odds{Blue: EvenOdds, Red: EvenOdds}
	}

	blue := float64(max(bluePool, 1))
	red := float64(max(redPool, 1))
	total := blue + red

	return Odds{
		Blue: roundOdds(clampOdds(total / blue)),
		Red:  roundOdds(clampOdds(total / red)),
	}
}

func clampOdds(v float64) float64 {
	return math.Min(MaxOdds, math.Max(MinOdds, v))
}

func roundOdds(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Payout returns floor(stake × odds). Odds carry two decimals, so the product
// is computed in integer hundredths to avoid float truncation (300 × 1.34).
func Payout(stake int64, odds float64) int64 {
	hundredths := int64(math.Round(odds * 100))
	return stake * hundredths / 100
}
