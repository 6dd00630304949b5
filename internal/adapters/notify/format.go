package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/domain/roles"
)

const streamerMode = "Streamer mode"

func sideIcon(s domain.Side) string {
	if s == domain.SideRed {
		return "🔴"
	}
	return "🔵"
}

func sideLabel(s domain.Side) string {
	if s == domain.SideRed {
		return "Red"
	}
	return "Blue"
}

// playerName returns the display name, or the privacy placeholder.
func playerName(p domain.Participant) string {
	if p.DisplayName == nil || *p.DisplayName == "" {
		return streamerMode
	}
	return *p.DisplayName
}

// rankText renders "Gold II 50 LP", "Master 120 LP" or "Unranked".
func rankText(r *domain.RankSummary) string {
	if r == nil || r.Tier == "" {
		return "Unranked"
	}
	tier := strings.ToUpper(r.Tier[:1]) + strings.ToLower(r.Tier[1:])
	switch r.Tier {
	case "MASTER", "GRANDMASTER", "CHALLENGER":
		return fmt.Sprintf("%s %d LP", tier, r.Points)
	}
	return fmt.Sprintf("%s %s %d LP", tier, r.Division, r.Points)
}

// winRateText renders "66.7% (100W/50L)" or "" when unranked.
func winRateText(r *domain.RankSummary) string {
	if r == nil || r.Wins+r.Losses == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f%% (%dW/%dL)", r.WinRate(), r.Wins, r.Losses)
}

// teamLines renders one line per participant for message bodies.
func teamLines(team []domain.Participant) string {
	if len(team) == 0 {
		return "N/A"
	}
	lines := make([]string, 0, len(team))
	for _, p := range team {
		line := fmt.Sprintf("%s **%s** • %s", roles.RoleIcon(p.Role), p.ChampionName, rankText(p.Rank))
		if wr := winRateText(p.Rank); wr != "" {
			line += " • " + wr
		}
		lines = append(lines, line+"\n└ "+playerName(p))
	}
	return strings.Join(lines, "\n")
}

// bettorList renders "<@id> (stake)" mentions, truncated to limit runes.
func bettorList(ws []domain.Wager, limit int) string {
	if len(ws) == 0 {
		return "—"
	}
	parts := make([]string, 0, len(ws))
	for _, w := range ws {
		parts = append(parts, fmt.Sprintf("<@%s> (%d)", w.UserID, w.Stake))
	}
	return truncate(strings.Join(parts, ", "), limit)
}

func statusText(m *domain.Market, now time.Time) string {
	switch m.Status {
	case domain.MarketOpen:
		left := m.BettingEndsAt.Sub(now).Round(time.Second)
		if left < 0 {
			left = 0
		}
		return fmt.Sprintf("🟢 Open (%s left)", left)
	case domain.MarketClosed:
		return "🔒 Betting closed, waiting for the result"
	case domain.MarketResolved:
		if m.Winner != nil {
			return fmt.Sprintf("%s %s won", sideIcon(*m.Winner), sideLabel(*m.Winner))
		}
		return "Resolved"
	case domain.MarketCancelled:
		return "↩️ Cancelled, stakes refunded"
	}
	return string(m.Status)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
