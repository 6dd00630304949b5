package ports

import (
	"time"

	"github.com/alejandrodnm/soloqbet/internal/domain"
)

// Metrics records operational counters. Implementations must be safe for
// concurrent use.
type Metrics interface {
	BetPlaced(side domain.Side, stake int64)
	BetRejected(code string)
	MarketOpened()
	MarketSettled(status domain.MarketStatus, distributed int64)
	ActiveMarkets(n int)
	PollCycle(d time.Duration, err error)
	ProviderCall(op string, err error)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) BetPlaced(domain.Side, int64)             {}
func (NopMetrics) BetRejected(string)                       {}
func (NopMetrics) MarketOpened()                            {}
func (NopMetrics) MarketSettled(domain.MarketStatus, int64) {}
func (NopMetrics) ActiveMarkets(int)                        {}
func (NopMetrics) PollCycle(time.Duration, error)           {}
func (NopMetrics) ProviderCall(string, error)               {}
