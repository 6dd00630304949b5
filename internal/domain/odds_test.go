package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOdds_EmptyPools(t *testing.T) {
	odds := ComputeOdds(0, 0)
	assert.Equal(t, 2.0, odds.Blue)
	assert.Equal(t, 2.0, odds.Red)
}

func TestComputeOdds_EqualPools(t *testing.T) {
	for _, pool := range []int64{1, 10, 333, 10000, 987654} {
		odds := ComputeOdds(pool, pool)
		assert.Equal(t, 2.0, odds.Blue, "pool=%d", pool)
		assert.Equal(t, 2.0, odds.Red, "pool=%d", pool)
	}
}

func TestComputeOdds_OneSidedClamps(t *testing.T) {
	// effective blue=100, red=1 → 101/100=1.01 and 101/1 clamped to 5.0
	odds := ComputeOdds(100, 0)
	assert.Equal(t, 1.01, odds.Blue)
	assert.Equal(t, 5.0, odds.Red)
}

func TestComputeOdds_Proportional(t *testing.T) {
	// 100 vs 300 → blue 400/100=4.0, red 400/300=1.333 → 1.33
	odds := ComputeOdds(100, 300)
	assert.Equal(t, 4.0, odds.Blue)
	assert.Equal(t, 1.33, odds.Red)
	assert.Equal(t, 4.0, odds.For(SideBlue))
	assert.Equal(t, 1.33, odds.For(SideRed))
}

func TestComputeOdds_RoundsHalfUp(t *testing.T) {
	// 200 vs 600 → blue 4.0, red 800/600=1.3333 → 1.33
	// 1 vs 7 → blue 8.0 clamped, red 8/7=1.142857 → 1.14
	assert.Equal(t, 1.14, ComputeOdds(1, 7).Red)
	// 3 vs 5 → blue 8/3=2.6667 → 2.67
	assert.Equal(t, 2.67, ComputeOdds(3, 5).Blue)
	// 8 vs 9 → blue 17/8=2.125 → 2.13
	assert.Equal(t, 2.13, ComputeOdds(8, 9).Blue)
}

func TestComputeOdds_Bounds(t *testing.T) {
	for blue := int64(0); blue <= 60; blue += 3 {
		for red := int64(0); red <= 60; red += 7 {
			odds := ComputeOdds(blue*17, red*11)
			assert.GreaterOrEqual(t, odds.Blue, MinOdds)
			assert.LessOrEqual(t, odds.Blue, MaxOdds)
			assert.GreaterOrEqual(t, odds.Red, MinOdds)
			assert.LessOrEqual(t, odds.Red, MaxOdds)
		}
	}
}

func TestPayout_FloorsInHundredths(t *testing.T) {
	assert.Equal(t, int64(402), Payout(300, 1.34))
	assert.Equal(t, int64(500), Payout(100, 5.0))
	assert.Equal(t, int64(101), Payout(100, 1.01))
	assert.Equal(t, int64(10), Payout(10, 1.01)) // 10.1 → 10
	assert.Equal(t, int64(13), Payout(10, 1.33))
}
