package watcher

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPacerInterval is the minimum spacing between enrichment calls.
const DefaultPacerInterval = 1500 * time.Millisecond

// Pacer spaces provider calls by a fixed minimum interval. Callers wait in
// turn, so calls stay sequential even when several goroutines share it.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer returns a pacer allowing one call per interval. A non-positive
// interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
