package ports

import (
	"context"

	"github.com/alejandrodnm/soloqbet/internal/domain"
)

// Notifier announces market lifecycle events to bettors.
// Failures are reported to the caller but never roll back the market.
type Notifier interface {
	// MarketOpened announces a new market with its rosters and odds.
	MarketOpened(ctx context.Context, m *domain.Market) error

	// MarketResolved announces the winner and the settlement.
	MarketResolved(ctx context.Context, m *domain.Market) error

	// MarketCancelled announces a cancelled market and how many wagers were refunded.
	MarketCancelled(ctx context.Context, m *domain.Market, refunded int) error
}
