// Package market runs the parimutuel betting rounds attached to live matches.
package market

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/soloqbet/internal/application/documents"
	"github.com/alejandrodnm/soloqbet/internal/application/wallet"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

const (
	DefaultWindow       = 3 * time.Minute
	DefaultMinStake     = 10
	DefaultMaxStake     = 10000
	DefaultHistoryLimit = 100
	DefaultUserHistory  = 10
)

// Config holds the betting rules.
type Config struct {
	Window       time.Duration
	MinStake     int64
	MaxStake     int64
	HistoryLimit int
}

// Wallets is the part of the wallet ledger the book needs.
type Wallets interface {
	TryDebit(ctx context.Context, userID string, amount int64) (domain.Wallet, error)
	Apply(ctx context.Context, deltas ...wallet.Delta) ([]domain.Wallet, error)
}

type marketsDoc struct {
	ActiveBets map[string]*domain.Market `json:"activeBets"`
	BetHistory []*domain.Market          `json:"betHistory"`
}

// Book owns the markets document. Mutations are serialized by the book
// mutex; announcements run after the lock is released.
type Book struct {
	store    ports.DocumentStore
	wallets  Wallets
	notifier ports.Notifier
	metrics  ports.Metrics
	cfg      Config

	now   func() time.Time
	newID func() string

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// New creates a market book. notifier and metrics may be nil.
func New(
	store ports.DocumentStore,
	wallets Wallets,
	notifier ports.Notifier,
	metrics ports.Metrics,
	cfg Config,
) *Book {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MinStake <= 0 {
		cfg.MinStake = DefaultMinStake
	}
	if cfg.MaxStake <= 0 {
		cfg.MaxStake = DefaultMaxStake
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Book{
		store:    store,
		wallets:  wallets,
		notifier: notifier,
		metrics:  metrics,
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
		timers:   make(map[string]*time.Timer),
	}
}

// Config returns the effective betting rules.
func (b *Book) Config() Config { return b.cfg }

func (b *Book) load(ctx context.Context) (*marketsDoc, error) {
	doc := &marketsDoc{}
	if _, err := documents.Load(ctx, b.store, ports.DocMarkets, doc); err != nil {
		return nil, err
	}
	if doc.ActiveBets == nil {
		doc.ActiveBets = make(map[string]*domain.Market)
	}
	return doc, nil
}

func (b *Book) save(ctx context.Context, doc *marketsDoc) error {
	if err := documents.Save(ctx, b.store, ports.DocMarkets, doc); err != nil {
		return err
	}
	b.metrics.ActiveMarkets(len(doc.ActiveBets))
	return nil
}

// archive moves m from the active set into the history log, dropping the
// oldest entries beyond the history limit.
func (b *Book) archive(doc *marketsDoc, m *domain.Market) {
	delete(doc.ActiveBets, m.MatchID)
	doc.BetHistory = append(doc.BetHistory, m)
	if extra := len(doc.BetHistory) - b.cfg.HistoryLimit; extra > 0 {
		doc.BetHistory = append([]*domain.Market(nil), doc.BetHistory[extra:]...)
	}
}

// archived returns the most recent history entry for matchID.
func archived(doc *marketsDoc, matchID string) (*domain.Market, bool) {
	for i := len(doc.BetHistory) - 1; i >= 0; i-- {
		if doc.BetHistory[i].MatchID == matchID {
			return doc.BetHistory[i], true
		}
	}
	return nil, false
}

// Get returns the market for matchID, looking at active markets first and
// then at the history log.
func (b *Book) Get(ctx context.Context, matchID string) (*domain.Market, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("market.Get: %w", err)
	}
	if m, ok := doc.ActiveBets[matchID]; ok {
		return m, nil
	}
	if m, ok := archived(doc, matchID); ok {
		return m, nil
	}
	return nil, domain.ErrMarketNotFound
}

// Active returns every open or closed market, oldest first.
func (b *Book) Active(ctx context.Context) ([]*domain.Market, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("market.Active: %w", err)
	}
	return sortedActive(doc), nil
}

func sortedActive(doc *marketsDoc) []*domain.Market {
	out := make([]*domain.Market, 0, len(doc.ActiveBets))
	for _, m := range doc.ActiveBets {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out
}

// Odds returns the current odds of an active market.
func (b *Book) Odds(ctx context.Context, matchID string) (domain.Odds, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load(ctx)
	if err != nil {
		return domain.Odds{}, fmt.Errorf("market.Odds: %w", err)
	}
	m, ok := doc.ActiveBets[matchID]
	if !ok {
		return domain.Odds{}, domain.ErrMarketNotFound
	}
	return m.Odds(), nil
}

// HistoryForUser returns the user's archived wagers, newest first.
// A non-positive limit uses DefaultUserHistory.
func (b *Book) HistoryForUser(ctx context.Context, userID string, limit int) ([]domain.BetRecord, error) {
	if limit <= 0 {
		limit = DefaultUserHistory
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("market.HistoryForUser: %w", err)
	}
	var out []domain.BetRecord
	for i := len(doc.BetHistory) - 1; i >= 0 && len(out) < limit; i-- {
		if r, ok := doc.BetHistory[i].RecordFor(userID); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (b *Book) announce(ctx context.Context, what string, m *domain.Market, fn func(context.Context) error) {
	if b.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		slog.Warn("announcement failed", "event", what, "match", m.MatchID, "err", err)
	}
}
