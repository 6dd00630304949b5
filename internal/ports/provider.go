package ports

import (
	"context"
	"errors"

	"github.com/alejandrodnm/soloqbet/internal/domain"
)

// ErrNotFound means the provider answered but has nothing for the request
// (player not in a game, unknown account). Any other failure is a
// *domain.ProviderError.
var ErrNotFound = errors.New("not found")

// MatchProvider reads live and finished matches.
type MatchProvider interface {
	// LiveMatch returns the match the player is currently in, or ErrNotFound.
	LiveMatch(ctx context.Context, playerID string) (*domain.LiveMatch, error)

	// RecentMatchIDs returns up to count finished match ids, newest first.
	RecentMatchIDs(ctx context.Context, playerID string, count int) ([]string, error)

	// MatchResult returns the outcome of a finished match.
	MatchResult(ctx context.Context, matchID string) (*domain.MatchResult, error)
}

// PlayerProvider resolves player identities and ladder standings.
type PlayerProvider interface {
	// DisplayName returns "Name#TAG" for a player id, or ErrNotFound.
	DisplayName(ctx context.Context, playerID string) (string, error)

	// RankSummary returns the ranked solo standing, or nil when unranked.
	RankSummary(ctx context.Context, playerID string) (*domain.RankSummary, error)

	// ResolvePlayerID maps a Riot ID to a player id, or ErrNotFound.
	ResolvePlayerID(ctx context.Context, gameName, tagLine string) (string, error)
}
