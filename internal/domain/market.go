package domain

import (
	"strings"
	"time"
)

// Side is one of the two teams in a match.
type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

// Team ids used by the match-data provider.
const (
	TeamBlue = 100
	TeamRed  = 200
)

// ParseSide accepts "blue"/"red" in any case.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideBlue:
		return SideBlue, nil
	case SideRed:
		return SideRed, nil
	}
	return "", ErrInvalidSide
}

// Valid reports whether s is blue or red.
func (s Side) Valid() bool { return s == SideBlue || s == SideRed }

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBlue {
		return SideRed
	}
	return SideBlue
}

// SideFromTeamID maps the provider team id (100/200) to a Side.
func SideFromTeamID(teamID int) (Side, bool) {
	switch teamID {
	case TeamBlue:
		return SideBlue, true
	case TeamRed:
		return SideRed, true
	}
	return "", false
}

// MarketStatus is the lifecycle state of a betting market.
// Transitions: open → closed → resolved, or open|closed → cancelled.
type MarketStatus string

const (
	MarketOpen      MarketStatus = "open"
	MarketClosed    MarketStatus = "closed"
	MarketResolved  MarketStatus = "resolved"
	MarketCancelled MarketStatus = "cancelled"
)

// IsTerminal reports whether no further transition is possible.
func (s MarketStatus) IsTerminal() bool {
	return s == MarketResolved || s == MarketCancelled
}

// Wager is a single bettor's stake on one side.
type Wager struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Stake     int64     `json:"amount"`
	OddsAtBet float64   `json:"oddsAtBet"`
	PlacedAt  time.Time `json:"placedAt"`
}

// Pools are the stake totals per side.
type Pools struct {
	Blue int64 `json:"blue"`
	Red  int64 `json:"red"`
}

// For returns the pool of the given side.
func (p Pools) For(side Side) int64 {
	if side == SideRed {
		return p.Red
	}
	return p.Blue
}

// Total returns both pools combined.
func (p Pools) Total() int64 { return p.Blue + p.Red }

func (p *Pools) add(side Side, amount int64) {
	if side == SideRed {
		p.Red += amount
		return
	}
	p.Blue += amount
}

// Wagers are the wager lists per side.
type Wagers struct {
	Blue []Wager `json:"blue"`
	Red  []Wager `json:"red"`
}

// For returns the wagers placed on the given side.
func (w Wagers) For(side Side) []Wager {
	if side == SideRed {
		return w.Red
	}
	return w.Blue
}

// MarketPlayer describes the tracked player whose match opened the market.
type MarketPlayer struct {
	PlayerID     string `json:"puuid"`
	UserID       string `json:"discordId"`
	GameName     string `json:"gameName"`
	TagLine      string `json:"tagLine"`
	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName"`
	ChampionIcon string `json:"championIcon"`
	Side         Side   `json:"side"`
}

// RiotID returns "GameName#TagLine".
func (p MarketPlayer) RiotID() string {
	return p.GameName + "#" + p.TagLine
}

// SettledWager is one line of a settlement summary.
type SettledWager struct {
	UserID    string  `json:"userId"`
	Stake     int64   `json:"amount"`
	OddsAtBet float64 `json:"oddsAtBet"`
	Winnings  int64   `json:"winnings,omitempty"`
}

// Settlement summarises a resolved market.
type Settlement struct {
	Winners          []SettledWager `json:"winners"`
	Losers           []SettledWager `json:"losers"`
	TotalDistributed int64          `json:"totalDistributed"`
}

// Market is the betting round attached to one live match.
type Market struct {
	MatchID       string        `json:"gameId"`
	Tracked       MarketPlayer  `json:"trackedPlayer"`
	Blue          []Participant `json:"blueTeam"`
	Red           []Participant `json:"redTeam"`
	Pools         Pools         `json:"pools"`
	Wagers        Wagers        `json:"bets"`
	Status        MarketStatus  `json:"status"`
	GameStartTime time.Time     `json:"gameStartTime"`
	BettingEndsAt time.Time     `json:"bettingEndsAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	ResolvedAt    *time.Time    `json:"resolvedAt,omitempty"`
	CancelledAt   *time.Time    `json:"cancelledAt,omitempty"`
	Winner        *Side         `json:"winningTeam,omitempty"`
	Results       *Settlement   `json:"results,omitempty"`
}

// Expired reports whether the betting window has elapsed at now.
func (m *Market) Expired(now time.Time) bool {
	return now.After(m.BettingEndsAt)
}

// Odds returns the current odds from the pools.
func (m *Market) Odds() Odds {
	return ComputeOdds(m.Pools.Blue, m.Pools.Red)
}

// WagerOf returns the user's wager and its side, if any.
func (m *Market) WagerOf(userID string) (Wager, Side, bool) {
	for _, side := range [2]Side{SideBlue, SideRed} {
		for _, w := range m.Wagers.For(side) {
			if w.UserID == userID {
				return w, side, true
			}
		}
	}
	return Wager{}, "", false
}

// WagerCount returns the number of wagers across both sides.
func (m *Market) WagerCount() int {
	return len(m.Wagers.Blue) + len(m.Wagers.Red)
}

// AddWager appends w on side and grows that side's pool by the stake.
func (m *Market) AddWager(side Side, w Wager) {
	if side == SideRed {
		m.Wagers.Red = append(m.Wagers.Red, w)
	} else {
		m.Wagers.Blue = append(m.Wagers.Blue, w)
	}
	m.Pools.add(side, w.Stake)
}

// Team returns the roster of the given side.
func (m *Market) Team(side Side) []Participant {
	if side == SideRed {
		return m.Red
	}
	return m.Blue
}

// BetRecord is one user's wager in an archived market, as shown in their history.
type BetRecord struct {
	MatchID   string
	Tracked   MarketPlayer
	Side      Side
	Stake     int64
	OddsAtBet float64
	Status    MarketStatus
	Winner    *Side
	// Delta is the balance change the market caused: winnings for a win,
	// minus the stake for a loss, zero when cancelled.
	Delta     int64
	SettledAt time.Time
}

// Won reports whether the record is a winning resolved wager.
func (r BetRecord) Won() bool {
	return r.Status == MarketResolved && r.Winner != nil && *r.Winner == r.Side
}

// RecordFor builds the user's history record from an archived market.
func (m *Market) RecordFor(userID string) (BetRecord, bool) {
	w, side, ok := m.WagerOf(userID)
	if !ok {
		return BetRecord{}, false
	}
	r := BetRecord{
		MatchID:   m.MatchID,
		Tracked:   m.Tracked,
		Side:      side,
		Stake:     w.Stake,
		OddsAtBet: w.OddsAtBet,
		Status:    m.Status,
		Winner:    m.Winner,
	}
	switch {
	case m.ResolvedAt != nil:
		r.SettledAt = *m.ResolvedAt
	case m.CancelledAt != nil:
		r.SettledAt = *m.CancelledAt
	}
	if m.Status == MarketResolved {
		if r.Won() {
			r.Delta = Payout(w.Stake, w.OddsAtBet)
		} else {
			r.Delta = -w.Stake
		}
	}
	return r, true
}
