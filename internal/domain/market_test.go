package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	side, err := ParseSide(" Blue ")
	require.NoError(t, err)
	assert.Equal(t, SideBlue, side)

	side, err = ParseSide("red")
	require.NoError(t, err)
	assert.Equal(t, SideRed, side)

	_, err = ParseSide("green")
	assert.ErrorIs(t, err, ErrInvalidSide)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestMarket_AddWagerKeepsPoolsInSync(t *testing.T) {
	m := &Market{MatchID: "1", Status: MarketOpen}
	m.AddWager(SideBlue, Wager{UserID: "a", Stake: 100})
	m.AddWager(SideRed, Wager{UserID: "b", Stake: 300})
	m.AddWager(SideRed, Wager{UserID: "c", Stake: 50})

	assert.Equal(t, int64(100), m.Pools.Blue)
	assert.Equal(t, int64(350), m.Pools.Red)
	assert.Equal(t, int64(450), m.Pools.Total())
	assert.Equal(t, 3, m.WagerCount())

	w, side, ok := m.WagerOf("c")
	require.True(t, ok)
	assert.Equal(t, SideRed, side)
	assert.Equal(t, int64(50), w.Stake)

	_, _, ok = m.WagerOf("nobody")
	assert.False(t, ok)
}

func TestMarket_Expired(t *testing.T) {
	now := time.Now()
	m := &Market{BettingEndsAt: now.Add(time.Minute)}
	assert.False(t, m.Expired(now))
	assert.True(t, m.Expired(now.Add(2*time.Minute)))
}

func TestMatchResult_WinnerFor(t *testing.T) {
	res := MatchResult{Participants: []ResultParticipant{
		{PlayerID: "p1", TeamID: TeamBlue, Win: false},
		{PlayerID: "p2", TeamID: TeamRed, Win: true},
	}}

	side, ok := res.WinnerFor("p1")
	require.True(t, ok)
	assert.Equal(t, SideRed, side)

	side, ok = res.WinnerFor("p2")
	require.True(t, ok)
	assert.Equal(t, SideRed, side)

	_, ok = res.WinnerFor("ghost")
	assert.False(t, ok)

	blue := SideBlue
	res.WinnerSide = &blue
	side, ok = res.WinnerFor("ghost")
	require.True(t, ok)
	assert.Equal(t, SideBlue, side)
}

func TestHistoryMatchID(t *testing.T) {
	assert.True(t, HistoryMatchID("EUW1_7001234567", "7001234567"))
	assert.False(t, HistoryMatchID("EUW1_17001234567", "7001234567"))
}

func TestParseRiotID(t *testing.T) {
	name, tag, err := ParseRiotID("Some Name#EUW")
	require.NoError(t, err)
	assert.Equal(t, "Some Name", name)
	assert.Equal(t, "EUW", tag)

	name, tag, err = ParseRiotID("a#b#TAG")
	require.NoError(t, err)
	assert.Equal(t, "a#b", name)
	assert.Equal(t, "TAG", tag)

	for _, bad := range []string{"", "NoTag", "#EUW", "Name#", "  #x"} {
		_, _, err := ParseRiotID(bad)
		assert.ErrorIs(t, err, ErrInvalidRiotID, bad)
	}
}

func TestWallet_Apply(t *testing.T) {
	w := NewWallet("u", 1000, time.Now())
	w.Apply(-100, OutcomeNone)
	w.Apply(250, OutcomeWin)
	w.Apply(0, OutcomeLoss)

	assert.Equal(t, int64(1150), w.Balance)
	assert.Equal(t, int64(250), w.TotalWon)
	assert.Equal(t, int64(0), w.TotalLost)
	assert.Equal(t, 1, w.BetsWon)
	assert.Equal(t, 1, w.BetsLost)
	assert.InDelta(t, 50.0, w.WinRate(), 0.001)
}

func TestRankSummary_WinRate(t *testing.T) {
	assert.Equal(t, 66.7, RankSummary{Wins: 100, Losses: 50}.WinRate())
	assert.Equal(t, 0.0, RankSummary{}.WinRate())
}
