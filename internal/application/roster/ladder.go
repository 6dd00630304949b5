package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

var (
	tierOrder     = []string{"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM", "EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER"}
	divisionOrder = []string{"IV", "III", "II", "I"}
)

// Standing is one row of the ranked ladder.
type Standing struct {
	UserID string              `json:"discordId"`
	RiotID string              `json:"riotName"`
	Rank   *domain.RankSummary `json:"rank,omitempty"`
	Score  int                 `json:"score"`
}

// Ladder is the last computed ranking of tracked players.
type Ladder struct {
	UpdatedAt time.Time  `json:"updatedAt"`
	Items     []Standing `json:"items"`
}

// Score orders ranked standings: tier, then division, then points.
// Unranked players score -1.
func Score(r *domain.RankSummary) int {
	if r == nil {
		return -1
	}
	tier := indexOf(tierOrder, r.Tier)
	div := indexOf(divisionOrder, r.Division)
	if div < 0 && tier >= indexOf(tierOrder, "MASTER") {
		div = len(divisionOrder) - 1
	}
	if tier < 0 || div < 0 {
		return -1
	}
	return tier*1000 + div*100 + r.Points
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// Refresh fetches every tracked player's solo queue rank, one call at a
// time, and stores the sorted ladder. Players the provider no longer knows
// are listed as unranked.
func (r *Registry) Refresh(ctx context.Context) (*Ladder, error) {
	players, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	ladder := &Ladder{Items: make([]Standing, 0, len(players))}
	for _, p := range players {
		if err := r.wait(ctx); err != nil {
			return nil, fmt.Errorf("roster.Refresh: %w", err)
		}
		rank, err := r.provider.RankSummary(ctx, p.PlayerID)
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("roster.Refresh: %s: %w", p.RiotID(), err)
		}
		ladder.Items = append(ladder.Items, Standing{
			UserID: p.UserID,
			RiotID: p.RiotID(),
			Rank:   rank,
			Score:  Score(rank),
		})
	}
	sort.SliceStable(ladder.Items, func(i, j int) bool {
		return ladder.Items[i].Score > ladder.Items[j].Score
	})
	ladder.UpdatedAt = r.now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roster.Refresh: %w", err)
	}
	doc.Snapshot = ladder
	if err := r.save(ctx, doc); err != nil {
		return nil, fmt.Errorf("roster.Refresh: %w", err)
	}
	slog.Info("ladder refreshed", "players", len(ladder.Items))
	return ladder, nil
}

// Standings returns the last stored ladder, or nil when it was never
// computed or the roster changed since.
func (r *Registry) Standings(ctx context.Context) (*Ladder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("roster.Standings: %w", err)
	}
	return doc.Snapshot, nil
}
