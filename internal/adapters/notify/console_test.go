package notify_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/soloqbet/internal/adapters/notify"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

func strPtr(s string) *string { return &s }

func makeMarket() *domain.Market {
	now := time.Now()
	m := &domain.Market{
		MatchID: "7001234567",
		Tracked: domain.MarketPlayer{
			PlayerID: "p1", GameName: "Faker", TagLine: "KR1",
			ChampionName: "Ahri", Side: domain.SideBlue,
		},
		Blue: []domain.Participant{
			{PlayerID: "p1", ChampionName: "Ahri", DisplayName: strPtr("Faker#KR1"), Role: domain.RoleMid,
				Rank: &domain.RankSummary{Tier: "CHALLENGER", Points: 1500, Wins: 300, Losses: 200}},
		},
		Red: []domain.Participant{
			{ChampionName: "Darius", Role: domain.RoleTop},
		},
		Status:        domain.MarketOpen,
		CreatedAt:     now,
		BettingEndsAt: now.Add(3 * time.Minute),
	}
	m.AddWager(domain.SideBlue, domain.Wager{UserID: "u1", Stake: 100, OddsAtBet: 2})
	m.AddWager(domain.SideRed, domain.Wager{UserID: "u2", Stake: 300, OddsAtBet: 1.33})
	return m
}

func TestConsole_MarketOpened_Table(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	require.NoError(t, n.MarketOpened(context.Background(), makeMarket()))

	out := buf.String()
	assert.Contains(t, out, "7001234567")
	assert.Contains(t, out, "Faker#KR1")
	assert.Contains(t, out, "x4.00")
	assert.Contains(t, out, "x1.33")
	assert.Contains(t, out, "Challenger 1500 LP")
	assert.Contains(t, out, "Streamer mode")
	assert.Contains(t, out, "Darius")
}

func TestConsole_MarketOpened_Compact(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	require.NoError(t, n.MarketOpened(context.Background(), makeMarket()))

	out := buf.String()
	assert.Contains(t, out, "market 7001234567 opened")
	assert.NotContains(t, out, "Darius")
}

func TestConsole_MarketResolved(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	m := makeMarket()
	red := domain.SideRed
	m.Status = domain.MarketResolved
	m.Winner = &red
	m.Results = &domain.Settlement{
		Winners:          []domain.SettledWager{{UserID: "u2", Stake: 300, OddsAtBet: 1.33, Winnings: 399}},
		Losers:           []domain.SettledWager{{UserID: "u1", Stake: 100, OddsAtBet: 2}},
		TotalDistributed: 399,
	}

	require.NoError(t, n.MarketResolved(context.Background(), m))

	out := buf.String()
	assert.Contains(t, out, "Red won")
	assert.Contains(t, out, "399 tokens distributed")
	assert.Contains(t, out, "+399")
	assert.Contains(t, out, "-100")
}

func TestConsole_MarketCancelled(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, false)

	require.NoError(t, n.MarketCancelled(context.Background(), makeMarket(), 2))
	assert.Contains(t, buf.String(), "2 wagers refunded (400 tokens)")
}

func TestConsole_Boards(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	n.PrintMarkets([]*domain.Market{makeMarket()})
	n.PrintBalances([]domain.Wallet{{UserID: "u1", Balance: 1500, BetsWon: 3, BetsLost: 1}})
	n.PrintWinRates([]domain.Wallet{{UserID: "u1", BetsWon: 3, BetsLost: 1, TotalWon: 600, TotalLost: 100}})

	out := buf.String()
	assert.Contains(t, out, "Faker#KR1")
	assert.Contains(t, out, "1500")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "3W/1L")
	assert.Contains(t, out, "+500")
}

func TestConsole_EmptyBoards(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewConsoleWriter(&buf, true)

	n.PrintMarkets(nil)
	n.PrintBalances(nil)
	n.PrintHistory("u1", nil)
	n.PrintRoster(nil)

	out := buf.String()
	assert.Contains(t, out, "No active markets")
	assert.Contains(t, out, "No bettors yet")
	assert.Contains(t, out, "u1 has no betting history")
	assert.Contains(t, out, "No tracked players")
}

type failingNotifier struct{ ports.Notifier }

func (failingNotifier) MarketOpened(context.Context, *domain.Market) error {
	return errors.New("boom")
}

func TestMulti_CallsEveryNotifier(t *testing.T) {
	var buf bytes.Buffer
	multi := notify.Multi{failingNotifier{}, notify.NewConsoleWriter(&buf, false)}

	err := multi.MarketOpened(context.Background(), makeMarket())

	assert.EqualError(t, err, "boom")
	assert.Contains(t, buf.String(), "opened")
}
