package riot

import (
	"time"

	"github.com/alejandrodnm/soloqbet/internal/domain"
)

func mapActiveGame(g activeGame) *domain.LiveMatch {
	m := &domain.LiveMatch{
		GameID:       g.GameID,
		QueueID:      g.GameQueueConfigID,
		Participants: make([]domain.LiveParticipant, 0, len(g.Participants)),
	}
	if g.GameStartTime > 0 {
		m.StartTime = time.UnixMilli(g.GameStartTime).UTC()
	}
	for _, p := range g.Participants {
		m.Participants = append(m.Participants, domain.LiveParticipant{
			PlayerID:   p.PUUID,
			ChampionID: p.ChampionID,
			Spell1:     p.Spell1ID,
			Spell2:     p.Spell2ID,
			TeamID:     p.TeamID,
		})
	}
	return m
}

func mapMatch(dto matchDTO) *domain.MatchResult {
	r := &domain.MatchResult{
		MatchID:      dto.Metadata.MatchID,
		Duration:     time.Duration(dto.Info.GameDuration) * time.Second,
		Participants: make([]domain.ResultParticipant, 0, len(dto.Info.Participants)),
	}
	if dto.Info.GameEndTimestamp > 0 {
		r.EndedAt = time.UnixMilli(dto.Info.GameEndTimestamp).UTC()
	}
	for _, p := range dto.Info.Participants {
		r.Participants = append(r.Participants, domain.ResultParticipant{
			PlayerID: p.PUUID,
			TeamID:   p.TeamID,
			Win:      p.Win,
		})
	}
	for _, t := range dto.Info.Teams {
		if !t.Win {
			continue
		}
		if side, ok := domain.SideFromTeamID(t.TeamID); ok {
			r.WinnerSide = &side
		}
	}
	return r
}

// mapSoloQueue picks the ranked solo entry, or nil when unranked.
func mapSoloQueue(entries []leagueEntry) *domain.RankSummary {
	for _, e := range entries {
		if e.QueueType != queueRankedSolo {
			continue
		}
		return &domain.RankSummary{
			Tier:     e.Tier,
			Division: e.Rank,
			Points:   e.LeaguePoints,
			Wins:     e.Wins,
			Losses:   e.Losses,
		}
	}
	return nil
}

// displayName formats "Name#TAG", or the bare name when the tag is missing.
func displayName(a account) string {
	if a.GameName != "" && a.TagLine != "" {
		return a.GameName + "#" + a.TagLine
	}
	return a.GameName
}
