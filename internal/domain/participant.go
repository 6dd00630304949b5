package domain

import "math"

// Role is a lane position inferred for a participant.
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
	RoleUnknown Role = "UNKNOWN"
)

// Roles is the enumeration order used for tie-breaks and display.
var Roles = [5]Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// Index returns the display position of r; UNKNOWN sorts last.
func (r Role) Index() int {
	for i, role := range Roles {
		if role == r {
			return i
		}
	}
	return len(Roles)
}

// RankSummary is a participant's ranked solo queue standing.
type RankSummary struct {
	Tier     string `json:"tier"`
	Division string `json:"rank"`
	Points   int    `json:"lp"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// WinRate returns the win percentage rounded to one decimal.
func (r RankSummary) WinRate() float64 {
	games := r.Wins + r.Losses
	if games == 0 {
		return 0
	}
	return math.Round(float64(r.Wins)/float64(games)*1000) / 10
}

// Participant is one of the ten players in a market roster.
type Participant struct {
	PlayerID     string       `json:"puuid,omitempty"`
	ChampionID   int          `json:"championId"`
	ChampionName string       `json:"championName"`
	ChampionIcon string       `json:"championIcon"`
	DisplayName  *string      `json:"playerName"` // nil in privacy mode
	Rank         *RankSummary `json:"rankInfo"`
	Spell1       int          `json:"spell1Id"`
	Spell2       int          `json:"spell2Id"`
	Role         Role         `json:"role"`
}
