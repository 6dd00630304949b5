package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

const (
	colorBlue = 0x0099FF
	colorRed  = 0xFF4444
	colorGold = 0xFFD700
	colorGrey = 0x808080

	bettorFieldLimit = 200
)

// channelSender is the subset of *discordgo.Session used to announce markets.
type channelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord implements ports.Notifier by posting embeds to an announcement
// channel. The opening message of a market is edited in place when the
// market resolves or is cancelled.
type Discord struct {
	session   channelSender
	channelID string
	roleID    string
	now       func() time.Time

	mu       sync.Mutex
	messages map[string]string // match id → announcement message id
}

var _ ports.Notifier = (*Discord)(nil)

// NewDiscord creates a REST-only session for token. roleID, when set, is
// mentioned in every opening announcement.
func NewDiscord(token, channelID, roleID string) (*Discord, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("notify.NewDiscord: create session: %w", err)
	}
	return newDiscord(s, channelID, roleID), nil
}

func newDiscord(s channelSender, channelID, roleID string) *Discord {
	return &Discord{
		session:   s,
		channelID: channelID,
		roleID:    roleID,
		now:       time.Now,
		messages:  make(map[string]string),
	}
}

// MarketOpened posts the market embed, mentioning the bettor role.
func (d *Discord) MarketOpened(_ context.Context, m *domain.Market) error {
	if d.channelID == "" {
		return nil
	}
	send := &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{marketEmbed(m, d.now())}}
	if d.roleID != "" {
		send.Content = fmt.Sprintf("<@&%s> new bet open!", d.roleID)
		send.AllowedMentions = &discordgo.MessageAllowedMentions{Roles: []string{d.roleID}}
	}

	msg, err := d.session.ChannelMessageSendComplex(d.channelID, send)
	if err != nil {
		return fmt.Errorf("notify.Discord.MarketOpened: send: %w", err)
	}

	d.mu.Lock()
	d.messages[m.MatchID] = msg.ID
	d.mu.Unlock()
	return nil
}

// MarketResolved edits the opening message, or posts a new one when the
// message is unknown (after a restart).
func (d *Discord) MarketResolved(_ context.Context, m *domain.Market) error {
	return d.settle(m, resolvedEmbed(m))
}

// MarketCancelled edits the opening message with the refund notice.
func (d *Discord) MarketCancelled(_ context.Context, m *domain.Market, refunded int) error {
	return d.settle(m, cancelledEmbed(m, refunded))
}

func (d *Discord) settle(m *domain.Market, embed *discordgo.MessageEmbed) error {
	if d.channelID == "" {
		return nil
	}

	d.mu.Lock()
	msgID, ok := d.messages[m.MatchID]
	delete(d.messages, m.MatchID)
	d.mu.Unlock()

	if ok {
		_, err := d.session.ChannelMessageEditEmbed(d.channelID, msgID, embed)
		if err == nil {
			return nil
		}
		slog.Warn("could not edit market announcement, posting a new one",
			"match_id", m.MatchID, "err", err)
	}

	if _, err := d.session.ChannelMessageSendComplex(d.channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}); err != nil {
		return fmt.Errorf("notify.Discord.settle: send: %w", err)
	}
	return nil
}

// --- embed builders ---

func sideColor(s domain.Side) int {
	if s == domain.SideRed {
		return colorRed
	}
	return colorBlue
}

func marketEmbed(m *domain.Market, now time.Time) *discordgo.MessageEmbed {
	odds := m.Odds()
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎮 %s is in game!", m.Tracked.GameName),
		Color:       sideColor(m.Tracked.Side),
		Description: fmt.Sprintf("**%s** • %s team %s", m.Tracked.ChampionName, sideLabel(m.Tracked.Side), sideIcon(m.Tracked.Side)),
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: m.Tracked.ChampionIcon},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔵 Blue team", Value: teamLines(m.Blue)},
			{Name: "🔴 Red team", Value: teamLines(m.Red)},
			{Name: "📊 Odds", Value: fmt.Sprintf("🔵 x%.2f | 🔴 x%.2f", odds.Blue, odds.Red), Inline: true},
			{Name: "💰 Total pool", Value: fmt.Sprintf("%d tokens", m.Pools.Total()), Inline: true},
			{Name: "📈 Stakes", Value: fmt.Sprintf("🔵 %d | 🔴 %d", m.Pools.Blue, m.Pools.Red), Inline: true},
			{Name: fmt.Sprintf("🔵 Blue bettors (%d)", len(m.Wagers.Blue)), Value: bettorList(m.Wagers.Blue, bettorFieldLimit), Inline: true},
			{Name: fmt.Sprintf("🔴 Red bettors (%d)", len(m.Wagers.Red)), Value: bettorList(m.Wagers.Red, bettorFieldLimit), Inline: true},
			{Name: "Status", Value: statusText(m, now)},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Game ID: " + m.MatchID},
		Timestamp: m.CreatedAt.Format(time.RFC3339),
	}
}

func resolvedEmbed(m *domain.Market) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Market %s resolved", m.MatchID),
		Color:  colorGold,
		Footer: &discordgo.MessageEmbedFooter{Text: "Game ID: " + m.MatchID},
	}
	if m.Winner != nil {
		e.Title = fmt.Sprintf("%s %s VICTORY!", sideIcon(*m.Winner), strings.ToUpper(sideLabel(*m.Winner)))
		e.Color = sideColor(*m.Winner)
	}
	e.Description = fmt.Sprintf("**%s** (%s)", m.Tracked.RiotID(), m.Tracked.ChampionName)
	if m.Results != nil {
		e.Fields = []*discordgo.MessageEmbedField{
			{Name: "👥 Winners", Value: fmt.Sprintf("%d", len(m.Results.Winners)), Inline: true},
			{Name: "💸 Losers", Value: fmt.Sprintf("%d", len(m.Results.Losers)), Inline: true},
			{Name: "💰 Distributed", Value: fmt.Sprintf("%d tokens", m.Results.TotalDistributed), Inline: true},
		}
	}
	if m.ResolvedAt != nil {
		e.Timestamp = m.ResolvedAt.Format(time.RFC3339)
	}
	return e
}

func cancelledEmbed(m *domain.Market, refunded int) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("↩️ Market %s cancelled", m.MatchID),
		Color:       colorGrey,
		Description: fmt.Sprintf("**%s** (%s): %d wager(s) refunded.", m.Tracked.RiotID(), m.Tracked.ChampionName, refunded),
		Footer:      &discordgo.MessageEmbedFooter{Text: "Game ID: " + m.MatchID},
	}
	if m.CancelledAt != nil {
		e.Timestamp = m.CancelledAt.Format(time.RFC3339)
	}
	return e
}
