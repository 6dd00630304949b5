package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/alejandrodnm/soloqbet/internal/application/market"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

func (w *Watcher) checkPlayer(ctx context.Context, p domain.TrackedPlayer, stats *cycleStats) error {
	live, err := w.matches.LiveMatch(ctx, p.PlayerID)
	if errors.Is(err, ports.ErrNotFound) {
		return w.checkFinished(ctx, p, "", stats)
	}
	if err != nil {
		return fmt.Errorf("watcher.checkPlayer: live match: %w", err)
	}

	matchID := live.MatchID()
	// Earlier games may still await their result while a new one runs.
	if err := w.checkFinished(ctx, p, matchID, stats); err != nil {
		slog.Warn("previous match left unresolved", "player", p.RiotID(), "err", err)
	}
	if slices.Contains(w.tracked(p.PlayerID), matchID) {
		return nil
	}
	if live.QueueID != w.cfg.QueueID {
		slog.Debug("live game ignored, not ranked solo", "player", p.RiotID(), "queue", live.QueueID)
		return nil
	}

	_, created, err := w.book.Create(ctx, *live, p, w.buildParticipant)
	if err != nil {
		return fmt.Errorf("watcher.checkPlayer: create market: %w", err)
	}
	w.track(p.PlayerID, matchID)
	if created {
		stats.opened++
	}
	return nil
}

// checkFinished resolves the markets of the player's tracked matches, other
// than the one still live, whose results are published. Matches without a
// result stay tracked for the next cycle.
func (w *Watcher) checkFinished(ctx context.Context, p domain.TrackedPlayer, liveID string, stats *cycleStats) error {
	var pending []string
	for _, matchID := range w.tracked(p.PlayerID) {
		if matchID == liveID {
			continue
		}
		m, err := w.book.Get(ctx, matchID)
		if errors.Is(err, domain.ErrMarketNotFound) {
			w.untrack(p.PlayerID, matchID)
			continue
		}
		if err != nil {
			return fmt.Errorf("watcher.checkFinished: %w", err)
		}
		if m.Status.IsTerminal() {
			w.untrack(p.PlayerID, matchID)
			continue
		}
		pending = append(pending, matchID)
	}
	if len(pending) == 0 {
		return nil
	}

	ids, err := w.matches.RecentMatchIDs(ctx, p.PlayerID, w.cfg.RecentMatches)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("watcher.checkFinished: recent matches: %w", err)
	}

	var errs []error
	for _, matchID := range pending {
		if err := w.resolveFromHistory(ctx, p, matchID, ids, stats); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *Watcher) resolveFromHistory(ctx context.Context, p domain.TrackedPlayer, matchID string, history []string, stats *cycleStats) error {
	historyID := ""
	for _, id := range history {
		if domain.HistoryMatchID(id, matchID) {
			historyID = id
			break
		}
	}
	if historyID == "" {
		slog.Debug("match result not published yet", "player", p.RiotID(), "match", matchID)
		return nil
	}

	result, err := w.matches.MatchResult(ctx, historyID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("watcher.checkFinished: match result %s: %w", historyID, err)
	}
	winner, ok := result.WinnerFor(p.PlayerID)
	if !ok {
		slog.Warn("match result has no winner", "match", historyID)
		return nil
	}

	_, err = w.book.Resolve(ctx, matchID, winner)
	switch {
	case errors.Is(err, domain.ErrAlreadyResolved), errors.Is(err, domain.ErrMarketNotFound):
	case err != nil:
		return fmt.Errorf("watcher.checkFinished: resolve %s: %w", matchID, err)
	default:
		stats.resolved++
	}
	w.untrack(p.PlayerID, matchID)
	return nil
}

// buildParticipant fills champion data from the catalog and, for visible
// players, the display name and rank. Enrichment failures leave the fields
// empty.
func (w *Watcher) buildParticipant(ctx context.Context, lp domain.LiveParticipant) domain.Participant {
	p := market.BareRoster(ctx, lp)
	if w.catalog != nil {
		p.ChampionName = w.catalog.Name(lp.ChampionID)
		p.ChampionIcon = w.catalog.Icon(lp.ChampionID)
	}
	if lp.PlayerID == "" || w.players == nil {
		return p
	}

	if err := w.pacer.Wait(ctx); err != nil {
		return p
	}
	name, err := w.players.DisplayName(ctx, lp.PlayerID)
	switch {
	case err != nil:
		slog.Debug("display name unavailable", "player", lp.PlayerID, "err", err)
	case name != "":
		p.DisplayName = &name
	}

	if err := w.pacer.Wait(ctx); err != nil {
		return p
	}
	rank, err := w.players.RankSummary(ctx, lp.PlayerID)
	if err != nil {
		slog.Debug("rank unavailable", "player", lp.PlayerID, "err", err)
	} else {
		p.Rank = rank
	}
	return p
}
