package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/domain"
)

// armTimer schedules the forced close of matchID. Callers hold b.mu.
func (b *Book) armTimer(matchID string, after time.Duration) {
	if b.stopped {
		return
	}
	b.stopTimer(matchID)
	b.timers[matchID] = time.AfterFunc(after, func() { b.deadline(matchID) })
}

// stopTimer cancels a pending close. Callers hold b.mu.
func (b *Book) stopTimer(matchID string) {
	if t, ok := b.timers[matchID]; ok {
		t.Stop()
		delete(b.timers, matchID)
	}
}

func (b *Book) deadline(matchID string) {
	b.mu.Lock()
	stopped := b.stopped
	b.mu.Unlock()
	if stopped {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.Close(ctx, matchID); err != nil && !errors.Is(err, domain.ErrMarketNotFound) {
		slog.Error("forced close failed", "match", matchID, "err", err)
	}
}

// Restore re-arms the close timers of open markets after a restart and
// closes those whose deadline already passed. It returns the number of
// active markets.
func (b *Book) Restore(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load(ctx)
	if err != nil {
		return 0, fmt.Errorf("market.Restore: %w", err)
	}
	now := b.now()
	dirty := false
	for id, m := range doc.ActiveBets {
		if m.Status != domain.MarketOpen {
			continue
		}
		if m.Expired(now) {
			m.Status = domain.MarketClosed
			dirty = true
			continue
		}
		b.armTimer(id, m.BettingEndsAt.Sub(now))
	}
	if dirty {
		if err := b.save(ctx, doc); err != nil {
			return 0, fmt.Errorf("market.Restore: %w", err)
		}
	} else {
		b.metrics.ActiveMarkets(len(doc.ActiveBets))
	}
	slog.Info("markets restored", "active", len(doc.ActiveBets), "timers", len(b.timers))
	return len(doc.ActiveBets), nil
}

// Stop cancels every pending close timer. The book stays usable but no
// longer forces closures; CloseExpired and PlaceBet still close lazily.
func (b *Book) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
}
