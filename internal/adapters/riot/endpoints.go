package riot

// endpoints.go: one method per Riot endpoint used by the watcher and roster.
//
// spectator and league live on the platform host (euw1), account and match
// on the regional host (europe). Each host has its own limiter.

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

var (
	_ ports.MatchProvider  = (*Client)(nil)
	_ ports.PlayerProvider = (*Client)(nil)
)

// LiveMatch returns the game the player is in, or ports.ErrNotFound.
func (c *Client) LiveMatch(ctx context.Context, playerID string) (*domain.LiveMatch, error) {
	u := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s", c.platformBase, url.PathEscape(playerID))

	var g activeGame
	if err := c.call(ctx, "spectator.LiveMatch", c.platformLimiter, u, &g); err != nil {
		return nil, err
	}
	return mapActiveGame(g), nil
}

// RecentMatchIDs returns the newest count match ids of the player.
func (c *Client) RecentMatchIDs(ctx context.Context, playerID string, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d", c.regionalBase, url.PathEscape(playerID), count)

	var ids []string
	if err := c.call(ctx, "match.RecentMatchIDs", c.regionalLimiter, u, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// MatchResult returns the finished match.
func (c *Client) MatchResult(ctx context.Context, matchID string) (*domain.MatchResult, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalBase, url.PathEscape(matchID))

	var dto matchDTO
	if err := c.call(ctx, "match.MatchResult", c.regionalLimiter, u, &dto); err != nil {
		return nil, err
	}
	return mapMatch(dto), nil
}

// DisplayName returns "Name#TAG" for the player id.
func (c *Client) DisplayName(ctx context.Context, playerID string) (string, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s", c.regionalBase, url.PathEscape(playerID))

	var a account
	if err := c.call(ctx, "account.DisplayName", c.regionalLimiter, u, &a); err != nil {
		return "", err
	}
	name := displayName(a)
	if name == "" {
		return "", fmt.Errorf("riot.account.DisplayName: empty name: %w", ports.ErrNotFound)
	}
	slog.Debug("resolved player name", "name", name)
	return name, nil
}

// ResolvePlayerID maps a Riot ID to its player id.
func (c *Client) ResolvePlayerID(ctx context.Context, gameName, tagLine string) (string, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalBase, url.PathEscape(gameName), url.PathEscape(tagLine))

	var a account
	if err := c.call(ctx, "account.ResolvePlayerID", c.regionalLimiter, u, &a); err != nil {
		return "", err
	}
	if a.PUUID == "" {
		return "", fmt.Errorf("riot.account.ResolvePlayerID: empty puuid: %w", ports.ErrNotFound)
	}
	return a.PUUID, nil
}

// RankSummary returns the ranked solo standing, nil when unranked.
func (c *Client) RankSummary(ctx context.Context, playerID string) (*domain.RankSummary, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformBase, url.PathEscape(playerID))

	var entries []leagueEntry
	if err := c.call(ctx, "league.RankSummary", c.platformLimiter, u, &entries); err != nil {
		return nil, err
	}
	return mapSoloQueue(entries), nil
}
