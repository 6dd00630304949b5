package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/soloqbet/internal/domain"
)

type fakeSession struct {
	sent    []*discordgo.MessageSend
	edited  map[string]*discordgo.MessageEmbed
	editErr error
}

func (f *fakeSession) ChannelMessageSendComplex(_ string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, data)
	return &discordgo.Message{ID: "msg-1"}, nil
}

func (f *fakeSession) ChannelMessageEditEmbed(_, messageID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.editErr != nil {
		return nil, f.editErr
	}
	if f.edited == nil {
		f.edited = map[string]*discordgo.MessageEmbed{}
	}
	f.edited[messageID] = embed
	return &discordgo.Message{ID: messageID}, nil
}

func testMarket() *domain.Market {
	now := time.Now()
	name := "Faker#KR1"
	m := &domain.Market{
		MatchID: "42",
		Tracked: domain.MarketPlayer{GameName: "Faker", TagLine: "KR1", ChampionName: "Ahri", Side: domain.SideRed},
		Blue:    []domain.Participant{{ChampionName: "Garen", Role: domain.RoleTop}},
		Red: []domain.Participant{{ChampionName: "Ahri", Role: domain.RoleMid, DisplayName: &name,
			Rank: &domain.RankSummary{Tier: "GOLD", Division: "II", Points: 50, Wins: 100, Losses: 50}}},
		Status:        domain.MarketOpen,
		CreatedAt:     now,
		BettingEndsAt: now.Add(3 * time.Minute),
	}
	m.AddWager(domain.SideBlue, domain.Wager{UserID: "u1", Stake: 100})
	return m
}

func TestMarketEmbed(t *testing.T) {
	e := marketEmbed(testMarket(), time.Now())

	assert.Equal(t, "🎮 Faker is in game!", e.Title)
	assert.Equal(t, colorRed, e.Color)
	require.Len(t, e.Fields, 8)
	assert.Contains(t, e.Fields[0].Value, "Streamer mode")
	assert.Contains(t, e.Fields[1].Value, "Gold II 50 LP • 66.7% (100W/50L)")
	assert.Contains(t, e.Fields[1].Value, "Faker#KR1")
	assert.Equal(t, "🔵 x1.01 | 🔴 x5.00", e.Fields[2].Value)
	assert.Equal(t, "<@u1> (100)", e.Fields[5].Value)
	assert.Equal(t, "—", e.Fields[6].Value)
	assert.Contains(t, e.Fields[7].Value, "Open")
}

func TestDiscord_OpenThenResolveEditsMessage(t *testing.T) {
	fake := &fakeSession{}
	d := newDiscord(fake, "chan", "role")
	m := testMarket()

	require.NoError(t, d.MarketOpened(context.Background(), m))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, "<@&role> new bet open!", fake.sent[0].Content)
	assert.Equal(t, []string{"role"}, fake.sent[0].AllowedMentions.Roles)

	blue := domain.SideBlue
	m.Status = domain.MarketResolved
	m.Winner = &blue
	m.Results = &domain.Settlement{TotalDistributed: 101}
	require.NoError(t, d.MarketResolved(context.Background(), m))

	require.Contains(t, fake.edited, "msg-1")
	assert.Equal(t, "🔵 BLUE VICTORY!", fake.edited["msg-1"].Title)
	assert.Len(t, fake.sent, 1, "no new message when the edit succeeds")
}

func TestDiscord_CancelFallsBackToNewMessage(t *testing.T) {
	fake := &fakeSession{editErr: errors.New("unknown message")}
	d := newDiscord(fake, "chan", "")
	m := testMarket()

	require.NoError(t, d.MarketOpened(context.Background(), m))
	assert.Empty(t, fake.sent[0].Content)

	require.NoError(t, d.MarketCancelled(context.Background(), m, 1))
	require.Len(t, fake.sent, 2)
	assert.Contains(t, fake.sent[1].Embeds[0].Description, "1 wager(s) refunded")
}

func TestDiscord_NoChannelIsNoop(t *testing.T) {
	fake := &fakeSession{}
	d := newDiscord(fake, "", "")

	require.NoError(t, d.MarketOpened(context.Background(), testMarket()))
	assert.Empty(t, fake.sent)
}
