package market

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/soloqbet/internal/application/wallet"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/domain/roles"
)

// RosterFunc turns a live participant into a roster entry. It is where
// callers attach champion names, display names and ranks.
type RosterFunc func(ctx context.Context, p domain.LiveParticipant) domain.Participant

// BareRoster copies the ids of a live participant without enrichment.
func BareRoster(_ context.Context, p domain.LiveParticipant) domain.Participant {
	return domain.Participant{
		PlayerID:   p.PlayerID,
		ChampionID: p.ChampionID,
		Spell1:     p.Spell1,
		Spell2:     p.Spell2,
		Role:       domain.RoleUnknown,
	}
}

// Create opens a market for the tracked player's live match. It is
// idempotent on the match id: an existing market, active or archived, is
// returned unchanged and created is false.
func (b *Book) Create(ctx context.Context, match domain.LiveMatch, tracked domain.TrackedPlayer, build RosterFunc) (m *domain.Market, created bool, err error) {
	matchID := match.MatchID()
	live, ok := match.Find(tracked.PlayerID)
	if !ok {
		return nil, false, domain.ErrPlayerNotInMatch
	}
	if build == nil {
		build = BareRoster
	}

	b.mu.Lock()
	doc, err := b.load(ctx)
	if err != nil {
		b.mu.Unlock()
		return nil, false, fmt.Errorf("market.Create: %w", err)
	}
	if existing, ok := doc.ActiveBets[matchID]; ok {
		b.mu.Unlock()
		return existing, false, nil
	}
	if existing, ok := archived(doc, matchID); ok {
		b.mu.Unlock()
		return existing, false, nil
	}
	b.mu.Unlock()

	// Enrichment may hit the provider, so the roster is built unlocked.
	var blue, red []domain.Participant
	var trackedEntry domain.Participant
	for _, lp := range match.Participants {
		p := build(ctx, lp)
		if lp.PlayerID != "" && lp.PlayerID == live.PlayerID {
			trackedEntry = p
		}
		switch lp.TeamID {
		case domain.TeamBlue:
			blue = append(blue, p)
		case domain.TeamRed:
			red = append(red, p)
		}
	}
	side, ok := domain.SideFromTeamID(live.TeamID)
	if !ok {
		return nil, false, domain.ErrPlayerNotInMatch
	}

	now := b.now().UTC()
	m = &domain.Market{
		MatchID: matchID,
		Tracked: domain.MarketPlayer{
			PlayerID:     tracked.PlayerID,
			UserID:       tracked.UserID,
			GameName:     tracked.GameName,
			TagLine:      tracked.TagLine,
			ChampionID:   live.ChampionID,
			ChampionName: trackedEntry.ChampionName,
			ChampionIcon: trackedEntry.ChampionIcon,
			Side:         side,
		},
		Blue:          roles.AssignRoles(blue),
		Red:           roles.AssignRoles(red),
		Wagers:        domain.Wagers{Blue: []domain.Wager{}, Red: []domain.Wager{}},
		Status:        domain.MarketOpen,
		GameStartTime: match.StartTime,
		BettingEndsAt: now.Add(b.cfg.Window),
		CreatedAt:     now,
	}

	b.mu.Lock()
	doc, err = b.load(ctx)
	if err != nil {
		b.mu.Unlock()
		return nil, false, fmt.Errorf("market.Create: %w", err)
	}
	if existing, ok := doc.ActiveBets[matchID]; ok {
		b.mu.Unlock()
		return existing, false, nil
	}
	doc.ActiveBets[matchID] = m
	if err := b.save(ctx, doc); err != nil {
		b.mu.Unlock()
		return nil, false, fmt.Errorf("market.Create: %w", err)
	}
	b.armTimer(matchID, b.cfg.Window)
	b.mu.Unlock()

	b.metrics.MarketOpened()
	slog.Info("market opened",
		"match", matchID,
		"player", tracked.RiotID(),
		"side", side,
		"closes_at", m.BettingEndsAt,
	)
	b.announce(ctx, "opened", m, func(ctx context.Context) error {
		return b.notifier.MarketOpened(ctx, m)
	})
	return m, true, nil
}

// Close stops accepting wagers on an open market. Closing a closed market
// is a no-op.
func (b *Book) Close(ctx context.Context, matchID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load(ctx)
	if err != nil {
		return fmt.Errorf("market.Close: %w", err)
	}
	m, ok := doc.ActiveBets[matchID]
	if !ok {
		return domain.ErrMarketNotFound
	}
	b.stopTimer(matchID)
	if m.Status != domain.MarketOpen {
		return nil
	}
	m.Status = domain.MarketClosed
	if err := b.save(ctx, doc); err != nil {
		return fmt.Errorf("market.Close: %w", err)
	}
	slog.Info("betting window closed", "match", matchID, "wagers", m.WagerCount(), "pool", m.Pools.Total())
	return nil
}

// CloseExpired closes every open market whose deadline has passed and
// returns how many were closed.
func (b *Book) CloseExpired(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load(ctx)
	if err != nil {
		return 0, fmt.Errorf("market.CloseExpired: %w", err)
	}
	now := b.now()
	closed := 0
	for id, m := range doc.ActiveBets {
		if m.Status == domain.MarketOpen && m.Expired(now) {
			m.Status = domain.MarketClosed
			b.stopTimer(id)
			closed++
		}
	}
	if closed == 0 {
		return 0, nil
	}
	if err := b.save(ctx, doc); err != nil {
		return 0, fmt.Errorf("market.CloseExpired: %w", err)
	}
	slog.Info("expired betting windows closed", "count", closed)
	return closed, nil
}

// Resolve pays every winning wager floor(stake × odds at bet), records a
// loss for every losing wager and archives the market.
func (b *Book) Resolve(ctx context.Context, matchID string, winner domain.Side) (*domain.Market, error) {
	if !winner.Valid() {
		return nil, domain.ErrInvalidSide
	}
	b.mu.Lock()

	doc, err := b.load(ctx)
	if err != nil {
		b.mu.Unlock()
		return nil, fmt.Errorf("market.Resolve: %w", err)
	}
	m, ok := doc.ActiveBets[matchID]
	if !ok {
		b.mu.Unlock()
		if old, found := archived(doc, matchID); found && old.Status == domain.MarketResolved {
			return nil, domain.ErrAlreadyResolved
		}
		return nil, domain.ErrMarketNotFound
	}
	if m.Status == domain.MarketResolved {
		b.mu.Unlock()
		return nil, domain.ErrAlreadyResolved
	}

	settlement := &domain.Settlement{Winners: []domain.SettledWager{}, Losers: []domain.SettledWager{}}
	var deltas []wallet.Delta
	for _, w := range m.Wagers.For(winner) {
		winnings := domain.Payout(w.Stake, w.OddsAtBet)
		deltas = append(deltas, wallet.Delta{UserID: w.UserID, Amount: winnings, Outcome: domain.OutcomeWin})
		settlement.Winners = append(settlement.Winners, domain.SettledWager{
			UserID: w.UserID, Stake: w.Stake, OddsAtBet: w.OddsAtBet, Winnings: winnings,
		})
		settlement.TotalDistributed += winnings
	}
	for _, w := range m.Wagers.For(winner.Opposite()) {
		deltas = append(deltas, wallet.Delta{UserID: w.UserID, Amount: 0, Outcome: domain.OutcomeLoss})
		settlement.Losers = append(settlement.Losers, domain.SettledWager{
			UserID: w.UserID, Stake: w.Stake, OddsAtBet: w.OddsAtBet,
		})
	}
	if _, err := b.wallets.Apply(ctx, deltas...); err != nil {
		b.mu.Unlock()
		return nil, fmt.Errorf("market.Resolve: pay out: %w", err)
	}

	now := b.now().UTC()
	m.Status = domain.MarketResolved
	m.ResolvedAt = &now
	m.Winner = &winner
	m.Results = settlement
	b.stopTimer(matchID)
	b.archive(doc, m)
	if err := b.save(ctx, doc); err != nil {
		b.mu.Unlock()
		return nil, fmt.Errorf("market.Resolve: %w", err)
	}
	b.mu.Unlock()

	b.metrics.MarketSettled(domain.MarketResolved, settlement.TotalDistributed)
	slog.Info("market resolved",
		"match", matchID,
		"winner", winner,
		"winners", len(settlement.Winners),
		"losers", len(settlement.Losers),
		"distributed", settlement.TotalDistributed,
	)
	b.announce(ctx, "resolved", m, func(ctx context.Context) error {
		return b.notifier.MarketResolved(ctx, m)
	})
	return m, nil
}

// Cancel refunds every wager at face value, archives the market and
// returns the number of refunded wagers.
func (b *Book) Cancel(ctx context.Context, matchID string) (int, error) {
	b.mu.Lock()
	m, refunded, err := b.cancelLocked(ctx, matchID)
	b.mu.Unlock()
	if err != nil {
		return 0, err
	}
	b.cancelled(ctx, m, refunded)
	return refunded, nil
}

// CancelAll cancels every active market. It returns how many markets were
// cancelled and how many wagers were refunded.
func (b *Book) CancelAll(ctx context.Context) (markets, refunded int, err error) {
	b.mu.Lock()
	doc, err := b.load(ctx)
	if err != nil {
		b.mu.Unlock()
		return 0, 0, fmt.Errorf("market.CancelAll: %w", err)
	}
	type done struct {
		m        *domain.Market
		refunded int
	}
	var all []done
	for _, active := range sortedActive(doc) {
		m, n, err := b.cancelLocked(ctx, active.MatchID)
		if err != nil {
			b.mu.Unlock()
			for _, d := range all {
				b.cancelled(ctx, d.m, d.refunded)
			}
			return len(all), refunded, fmt.Errorf("market.CancelAll: %w", err)
		}
		all = append(all, done{m, n})
		refunded += n
	}
	b.mu.Unlock()

	for _, d := range all {
		b.cancelled(ctx, d.m, d.refunded)
	}
	return len(all), refunded, nil
}

func (b *Book) cancelLocked(ctx context.Context, matchID string) (*domain.Market, int, error) {
	doc, err := b.load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("market.Cancel: %w", err)
	}
	m, ok := doc.ActiveBets[matchID]
	if !ok {
		return nil, 0, domain.ErrMarketNotFound
	}

	var deltas []wallet.Delta
	for _, side := range [2]domain.Side{domain.SideBlue, domain.SideRed} {
		for _, w := range m.Wagers.For(side) {
			deltas = append(deltas, wallet.Delta{UserID: w.UserID, Amount: w.Stake})
		}
	}
	if _, err := b.wallets.Apply(ctx, deltas...); err != nil {
		return nil, 0, fmt.Errorf("market.Cancel: refund: %w", err)
	}

	now := b.now().UTC()
	m.Status = domain.MarketCancelled
	m.CancelledAt = &now
	b.stopTimer(matchID)
	b.archive(doc, m)
	if err := b.save(ctx, doc); err != nil {
		return nil, 0, fmt.Errorf("market.Cancel: %w", err)
	}
	return m, len(deltas), nil
}

func (b *Book) cancelled(ctx context.Context, m *domain.Market, refunded int) {
	b.metrics.MarketSettled(domain.MarketCancelled, 0)
	slog.Info("market cancelled", "match", m.MatchID, "refunded", refunded)
	b.announce(ctx, "cancelled", m, func(ctx context.Context) error {
		return b.notifier.MarketCancelled(ctx, m, refunded)
	})
}
