// Package watcher polls tracked players for live ranked games, opens a
// market when one starts and resolves it once the result is published.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/application/market"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// ErrCycleInProgress is returned by RunOnce when another cycle is running.
var ErrCycleInProgress = errors.New("watcher: cycle already in progress")

const (
	DefaultPollInterval  = 60 * time.Second
	DefaultRecentMatches = 5
)

// Config holds the polling settings.
type Config struct {
	PollInterval  time.Duration
	QueueID       int
	RecentMatches int
	Enabled       bool
}

// Roster lists the players to watch.
type Roster interface {
	List(ctx context.Context) ([]domain.TrackedPlayer, error)
}

// Book is the part of the market book the watcher drives.
type Book interface {
	Active(ctx context.Context) ([]*domain.Market, error)
	Get(ctx context.Context, matchID string) (*domain.Market, error)
	Create(ctx context.Context, match domain.LiveMatch, tracked domain.TrackedPlayer, build market.RosterFunc) (*domain.Market, bool, error)
	Resolve(ctx context.Context, matchID string, winner domain.Side) (*domain.Market, error)
	CloseExpired(ctx context.Context) (int, error)
}

// Watcher runs the poll loop. Only one cycle runs at a time.
type Watcher struct {
	cfg     Config
	matches ports.MatchProvider
	players ports.PlayerProvider
	catalog ports.ChampionCatalog
	roster  Roster
	book    Book
	pacer   *Pacer
	metrics ports.Metrics

	running atomic.Bool
	enabled atomic.Bool

	mu       sync.Mutex
	tracking map[string][]string // player id → unresolved match ids, oldest first
	restored bool
}

// New creates a watcher with its dependencies injected.
func New(
	cfg Config,
	matches ports.MatchProvider,
	players ports.PlayerProvider,
	catalog ports.ChampionCatalog,
	roster Roster,
	book Book,
	pacer *Pacer,
	metrics ports.Metrics,
) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.QueueID == 0 {
		cfg.QueueID = domain.QueueRankedSolo
	}
	if cfg.RecentMatches <= 0 {
		cfg.RecentMatches = DefaultRecentMatches
	}
	if pacer == nil {
		pacer = NewPacer(DefaultPacerInterval)
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	w := &Watcher{
		cfg:      cfg,
		matches:  matches,
		players:  players,
		catalog:  catalog,
		roster:   roster,
		book:     book,
		pacer:    pacer,
		metrics:  metrics,
		tracking: make(map[string][]string),
	}
	w.enabled.Store(cfg.Enabled)
	return w
}

// SetEnabled turns polling on or off. Disabled cycles do nothing.
func (w *Watcher) SetEnabled(on bool) {
	w.enabled.Store(on)
	slog.Info("betting watcher toggled", "enabled", on)
}

// Enabled reports whether cycles poll the provider.
func (w *Watcher) Enabled() bool { return w.enabled.Load() }

// Tracking returns a copy of the player → unresolved match ids map.
func (w *Watcher) Tracking() map[string][]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string][]string, len(w.tracking))
	for k, v := range w.tracking {
		out[k] = slices.Clone(v)
	}
	return out
}

// Run polls until ctx is cancelled: one cycle immediately, then one per
// poll interval.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("watcher starting",
		"interval", w.cfg.PollInterval,
		"queue", w.cfg.QueueID,
		"enabled", w.Enabled(),
	)

	w.runCycle(ctx)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped")
			return nil
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *Watcher) runCycle(ctx context.Context) {
	err := w.RunOnce(ctx)
	switch {
	case errors.Is(err, ErrCycleInProgress):
		slog.Debug("poll cycle skipped, previous one still running")
	case err != nil:
		slog.Error("poll cycle failed", "err", err)
	}
}

// RunOnce executes exactly one poll cycle.
func (w *Watcher) RunOnce(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return ErrCycleInProgress
	}
	defer w.running.Store(false)

	if !w.Enabled() {
		slog.Debug("watcher disabled, cycle skipped")
		return nil
	}

	start := time.Now()
	err := w.cycle(ctx)
	w.metrics.PollCycle(time.Since(start), err)
	return err
}

type cycleStats struct {
	opened   int
	resolved int
	skipped  int
}

func (w *Watcher) cycle(ctx context.Context) error {
	start := time.Now()
	if err := w.restore(ctx); err != nil {
		return err
	}
	if _, err := w.book.CloseExpired(ctx); err != nil {
		return fmt.Errorf("watcher.cycle: close expired: %w", err)
	}
	players, err := w.roster.List(ctx)
	if err != nil {
		return fmt.Errorf("watcher.cycle: list players: %w", err)
	}

	var stats cycleStats
	for _, p := range players {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.checkPlayer(ctx, p, &stats); err != nil {
			stats.skipped++
			slog.Warn("player skipped this cycle",
				"player", p.RiotID(),
				"kind", domain.KindOf(err),
				"err", err,
			)
		}
	}

	slog.Info("poll cycle complete",
		"players", len(players),
		"opened", stats.opened,
		"resolved", stats.resolved,
		"skipped", stats.skipped,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// restore rebuilds the tracking map from the active markets on the first
// cycle after start.
func (w *Watcher) restore(ctx context.Context) error {
	w.mu.Lock()
	done := w.restored
	w.mu.Unlock()
	if done {
		return nil
	}
	active, err := w.book.Active(ctx)
	if err != nil {
		return fmt.Errorf("watcher.restore: %w", err)
	}
	w.mu.Lock()
	for _, m := range active {
		ids := w.tracking[m.Tracked.PlayerID]
		if !slices.Contains(ids, m.MatchID) {
			w.tracking[m.Tracked.PlayerID] = append(ids, m.MatchID)
		}
	}
	w.restored = true
	w.mu.Unlock()
	if len(active) > 0 {
		slog.Info("tracking restored from active markets", "markets", len(active))
	}
	return nil
}

func (w *Watcher) tracked(playerID string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.tracking[playerID])
}

func (w *Watcher) track(playerID, matchID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !slices.Contains(w.tracking[playerID], matchID) {
		w.tracking[playerID] = append(w.tracking[playerID], matchID)
	}
}

func (w *Watcher) untrack(playerID, matchID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := slices.DeleteFunc(w.tracking[playerID], func(id string) bool { return id == matchID })
	if len(ids) == 0 {
		delete(w.tracking, playerID)
		return
	}
	w.tracking[playerID] = ids
}
