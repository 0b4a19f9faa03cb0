package services

import "github.com/shopspring/decimal"

// The payout curve is deterministic: growth per safe reveal scales with how
// dangerous the board is (mine ratio), never with per-click randomness, so
// any payout can be recomputed and audited after the fact.
const (
	baseGrowthRate = 0.1
	dangerWeight   = 0.5
)

// Multiplier maps (revealed count, board size, mine count) to the current
// payout multiplier. Pure; recomputed from scratch on every reveal.
func Multiplier(revealedCount, totalCells, mineCount int) float64 {
	mineFactor := float64(mineCount) / float64(totalCells)
	growthRate := baseGrowthRate + mineFactor*dangerWeight
	return round2(1 + float64(revealedCount)*growthRate)
}

// PotentialWin is what a cashout at the given multiplier would pay.
func PotentialWin(betAmount, multiplier float64) float64 {
	return round2(betAmount * multiplier)
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
