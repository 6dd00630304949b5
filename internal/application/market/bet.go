package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/soloqbet/internal/application/wallet"
	"github.com/alejandrodnm/soloqbet/internal/domain"
)

// BetReceipt is returned by a successful PlaceBet.
type BetReceipt struct {
	Wager     domain.Wager
	Side      domain.Side
	OddsAtBet float64
	NewOdds   domain.Odds
	TotalPool int64
	Balance   int64
}

// PlaceBet debits stake from the user and adds the wager to the market.
// The odds locked into the wager are computed before the stake joins its
// pool.
func (b *Book) PlaceBet(ctx context.Context, matchID, userID string, side domain.Side, stake int64) (*BetReceipt, error) {
	receipt, err := b.placeBet(ctx, matchID, userID, side, stake)
	if err != nil {
		if code := domain.CodeOf(err); code != "" {
			b.metrics.BetRejected(code)
		}
		return nil, err
	}
	b.metrics.BetPlaced(side, stake)
	slog.Info("bet placed",
		"match", matchID,
		"user", userID,
		"side", side,
		"stake", stake,
		"odds", receipt.OddsAtBet,
	)
	return receipt, nil
}

func (b *Book) placeBet(ctx context.Context, matchID, userID string, side domain.Side, stake int64) (*BetReceipt, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUser
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("market.PlaceBet: %w", err)
	}
	m, ok := doc.ActiveBets[matchID]
	if !ok {
		return nil, domain.ErrMarketNotFound
	}
	if m.Status == domain.MarketOpen && m.Expired(b.now()) {
		m.Status = domain.MarketClosed
		b.stopTimer(matchID)
		if err := b.save(ctx, doc); err != nil {
			return nil, fmt.Errorf("market.PlaceBet: close expired: %w", err)
		}
		slog.Info("betting window closed", "match", matchID)
	}
	if m.Status != domain.MarketOpen {
		return nil, domain.ErrMarketClosed
	}
	if !side.Valid() {
		return nil, domain.ErrInvalidSide
	}
	if stake < b.cfg.MinStake {
		return nil, domain.ErrStakeTooLow.WithMessage("minimum stake is %d tokens", b.cfg.MinStake)
	}
	if stake > b.cfg.MaxStake {
		return nil, domain.ErrStakeTooHigh.WithMessage("maximum stake is %d tokens", b.cfg.MaxStake)
	}
	if _, placed, dup := m.WagerOf(userID); dup {
		return nil, domain.ErrDuplicateBet.WithMessage("you already bet on %s for this match", placed)
	}

	w, err := b.wallets.TryDebit(ctx, userID, stake)
	if err != nil {
		return nil, err
	}

	odds := m.Odds().For(side)
	wager := domain.Wager{
		ID:        b.newID(),
		UserID:    userID,
		Stake:     stake,
		OddsAtBet: odds,
		PlacedAt:  b.now().UTC(),
	}
	m.AddWager(side, wager)

	if err := b.save(ctx, doc); err != nil {
		if _, rerr := b.wallets.Apply(ctx, wallet.Delta{UserID: userID, Amount: stake}); rerr != nil {
			slog.Error("refund after failed bet save", "user", userID, "stake", stake, "err", rerr)
			err = errors.Join(err, rerr)
		}
		return nil, fmt.Errorf("market.PlaceBet: %w", err)
	}

	return &BetReceipt{
		Wager:     wager,
		Side:      side,
		OddsAtBet: odds,
		NewOdds:   m.Odds(),
		TotalPool: m.Pools.Total(),
		Balance:   w.Balance,
	}, nil
}
