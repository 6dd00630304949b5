package riot

// Raw Riot API DTOs. Only used inside this package; mapping.go converts
// them to domain types.

// --- spectator-v5 ---

type activeGame struct {
	GameID            int64               `json:"gameId"`
	GameQueueConfigID int                 `json:"gameQueueConfigId"`
	GameStartTime     int64               `json:"gameStartTime"` // epoch ms, 0 while loading
	Participants      []activeParticipant `json:"participants"`
}

type activeParticipant struct {
	PUUID      string `json:"puuid"` // null for streamer-mode players
	ChampionID int    `json:"championId"`
	Spell1ID   int    `json:"spell1Id"`
	Spell2ID   int    `json:"spell2Id"`
	TeamID     int    `json:"teamId"`
}

// --- match-v5 ---

type matchDTO struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info matchInfo `json:"info"`
}

type matchInfo struct {
	GameDuration     int64              `json:"gameDuration"` // seconds
	GameEndTimestamp int64              `json:"gameEndTimestamp"`
	Participants     []matchParticipant `json:"participants"`
	Teams            []matchTeam        `json:"teams"`
}

type matchParticipant struct {
	PUUID  string `json:"puuid"`
	TeamID int    `json:"teamId"`
	Win    bool   `json:"win"`
}

type matchTeam struct {
	TeamID int  `json:"teamId"`
	Win    bool `json:"win"`
}

// --- account-v1 ---

type account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// --- league-v4 ---

const queueRankedSolo = "RANKED_SOLO_5x5"

type leagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}
