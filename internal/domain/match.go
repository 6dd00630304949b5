package domain

import (
	"strconv"
	"strings"
	"time"
)

// QueueRankedSolo is the provider's queue id for ranked solo/duo.
const QueueRankedSolo = 420

// LiveParticipant is a player as reported by the live-match endpoint.
type LiveParticipant struct {
	PlayerID   string // empty when the player hides their identity
	ChampionID int
	Spell1     int
	Spell2     int
	TeamID     int
}

// LiveMatch is an in-progress match.
type LiveMatch struct {
	GameID       int64
	QueueID      int
	StartTime    time.Time
	Participants []LiveParticipant
}

// MatchID returns the game id as the market key.
func (m LiveMatch) MatchID() string {
	return strconv.FormatInt(m.GameID, 10)
}

// Find returns the participant with the given player id.
func (m LiveMatch) Find(playerID string) (LiveParticipant, bool) {
	for _, p := range m.Participants {
		if p.PlayerID != "" && p.PlayerID == playerID {
			return p, true
		}
	}
	return LiveParticipant{}, false
}

// ResultParticipant is a player in a finished match.
type ResultParticipant struct {
	PlayerID string
	TeamID   int
	Win      bool
}

// MatchResult is a finished match as reported by the match-history endpoint.
type MatchResult struct {
	MatchID      string
	Participants []ResultParticipant
	WinnerSide   *Side
	Duration     time.Duration
	EndedAt      time.Time
}

// WinnerFor determines the winning side from the tracked player's team and
// whether that team won. Falls back to WinnerSide when the player is absent.
func (r MatchResult) WinnerFor(playerID string) (Side, bool) {
	for _, p := range r.Participants {
		if p.PlayerID != playerID {
			continue
		}
		side, ok := SideFromTeamID(p.TeamID)
		if !ok {
			return "", false
		}
		if p.Win {
			return side, true
		}
		return side.Opposite(), true
	}
	if r.WinnerSide != nil {
		return *r.WinnerSide, true
	}
	return "", false
}

// HistoryMatchID reports whether a match-history id ("EUW1_123") refers to
// the live game id.
func HistoryMatchID(historyID, gameID string) bool {
	return strings.HasSuffix(historyID, "_"+gameID)
}

// TrackedPlayer is a linked account whose live status is polled.
type TrackedPlayer struct {
	UserID   string    `json:"discordId"`
	UserTag  string    `json:"discordTag"`
	GameName string    `json:"gameName"`
	TagLine  string    `json:"tagLine"`
	PlayerID string    `json:"puuid"`
	AddedAt  time.Time `json:"addedAt"`
}

// RiotID returns "GameName#TagLine".
func (p TrackedPlayer) RiotID() string {
	return p.GameName + "#" + p.TagLine
}

// ParseRiotID splits "Name#TAG" on the last '#'.
func ParseRiotID(input string) (gameName, tagLine string, err error) {
	i := strings.LastIndex(input, "#")
	if i <= 0 || i == len(input)-1 {
		return "", "", ErrInvalidRiotID
	}
	gameName = strings.TrimSpace(input[:i])
	tagLine = strings.TrimSpace(input[i+1:])
	if gameName == "" || tagLine == "" {
		return "", "", ErrInvalidRiotID
	}
	return gameName, tagLine, nil
}
