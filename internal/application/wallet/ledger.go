// Package wallet keeps user token balances and lifetime betting stats.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/alejandrodnm/soloqbet/internal/application/documents"
	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// Delta is one balance change applied by Apply.
type Delta struct {
	UserID  string
	Amount  int64
	Outcome domain.Outcome
}

type walletsDoc struct {
	Wallets       map[string]*domain.Wallet `json:"wallets"`
	DefaultTokens int64                     `json:"defaultTokens"`
}

// Ledger reads and writes the wallets document. Every mutation is a
// read-modify-write of the whole document under the ledger mutex; the
// process is assumed to be the only writer.
type Ledger struct {
	store          ports.DocumentStore
	defaultBalance int64
	now            func() time.Time

	mu sync.Mutex
}

// New creates a ledger. A non-positive defaultBalance falls back to
// domain.DefaultBalance.
func New(store ports.DocumentStore, defaultBalance int64) *Ledger {
	if defaultBalance <= 0 {
		defaultBalance = domain.DefaultBalance
	}
	return &Ledger{store: store, defaultBalance: defaultBalance, now: time.Now}
}

func (l *Ledger) load(ctx context.Context) (*walletsDoc, error) {
	doc := &walletsDoc{}
	if _, err := documents.Load(ctx, l.store, ports.DocWallets, doc); err != nil {
		return nil, err
	}
	if doc.Wallets == nil {
		doc.Wallets = make(map[string]*domain.Wallet)
	}
	if doc.DefaultTokens <= 0 {
		doc.DefaultTokens = l.defaultBalance
	}
	for id, w := range doc.Wallets {
		w.UserID = id
	}
	return doc, nil
}

func (l *Ledger) save(ctx context.Context, doc *walletsDoc) error {
	return documents.Save(ctx, l.store, ports.DocWallets, doc)
}

// wallet returns the user's wallet, creating it in doc when missing.
func (l *Ledger) wallet(doc *walletsDoc, userID string) (*domain.Wallet, bool) {
	if w, ok := doc.Wallets[userID]; ok {
		return w, false
	}
	w := domain.NewWallet(userID, doc.DefaultTokens, l.now().UTC())
	doc.Wallets[userID] = w
	return w, true
}

// Get returns the user's wallet, creating and persisting it on first access.
func (l *Ledger) Get(ctx context.Context, userID string) (domain.Wallet, error) {
	if userID == "" {
		return domain.Wallet{}, domain.ErrInvalidUser
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load(ctx)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("wallet.Get: %w", err)
	}
	w, created := l.wallet(doc, userID)
	if created {
		if err := l.save(ctx, doc); err != nil {
			return domain.Wallet{}, fmt.Errorf("wallet.Get: %w", err)
		}
		slog.Debug("wallet created", "user", userID, "balance", w.Balance)
	}
	return *w, nil
}

// ApplyDelta adds amount to the user's balance and records the outcome.
// No floor is enforced: the balance may go negative.
func (l *Ledger) ApplyDelta(ctx context.Context, userID string, amount int64, outcome domain.Outcome) (domain.Wallet, error) {
	ws, err := l.Apply(ctx, Delta{UserID: userID, Amount: amount, Outcome: outcome})
	if err != nil {
		return domain.Wallet{}, err
	}
	return ws[0], nil
}

// Apply applies every delta in order and saves the document once.
// It returns the resulting wallet for each delta.
func (l *Ledger) Apply(ctx context.Context, deltas ...Delta) ([]domain.Wallet, error) {
	for _, d := range deltas {
		if d.UserID == "" {
			return nil, domain.ErrInvalidUser
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet.Apply: %w", err)
	}
	out := make([]domain.Wallet, 0, len(deltas))
	for _, d := range deltas {
		w, _ := l.wallet(doc, d.UserID)
		w.Apply(d.Amount, d.Outcome)
		out = append(out, *w)
	}
	if len(deltas) == 0 {
		return out, nil
	}
	if err := l.save(ctx, doc); err != nil {
		return nil, fmt.Errorf("wallet.Apply: %w", err)
	}
	return out, nil
}

// TryDebit removes amount from the user's balance only if it covers it.
func (l *Ledger) TryDebit(ctx context.Context, userID string, amount int64) (domain.Wallet, error) {
	if userID == "" {
		return domain.Wallet{}, domain.ErrInvalidUser
	}
	if amount <= 0 {
		return domain.Wallet{}, domain.ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load(ctx)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("wallet.TryDebit: %w", err)
	}
	w, created := l.wallet(doc, userID)
	if w.Balance < amount {
		if created {
			if err := l.save(ctx, doc); err != nil {
				return domain.Wallet{}, fmt.Errorf("wallet.TryDebit: %w", err)
			}
		}
		return *w, domain.ErrInsufficientBalance.WithMessage(
			"insufficient balance: you have %d tokens, need %d", w.Balance, amount)
	}
	w.Apply(-amount, domain.OutcomeNone)
	if err := l.save(ctx, doc); err != nil {
		return domain.Wallet{}, fmt.Errorf("wallet.TryDebit: %w", err)
	}
	return *w, nil
}

// Credit gives amount tokens to the user.
func (l *Ledger) Credit(ctx context.Context, userID string, amount int64) (domain.Wallet, error) {
	if amount <= 0 {
		return domain.Wallet{}, domain.ErrInvalidAmount
	}
	return l.ApplyDelta(ctx, userID, amount, domain.OutcomeNone)
}

// Debit takes amount tokens from the user, refusing to overdraw.
func (l *Ledger) Debit(ctx context.Context, userID string, amount int64) (domain.Wallet, error) {
	return l.TryDebit(ctx, userID, amount)
}

// Reset restores the default balance and clears the user's stats.
func (l *Ledger) Reset(ctx context.Context, userID string) (domain.Wallet, error) {
	if userID == "" {
		return domain.Wallet{}, domain.ErrInvalidUser
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load(ctx)
	if err != nil {
		return domain.Wallet{}, fmt.Errorf("wallet.Reset: %w", err)
	}
	w := domain.NewWallet(userID, doc.DefaultTokens, l.now().UTC())
	doc.Wallets[userID] = w
	if err := l.save(ctx, doc); err != nil {
		return domain.Wallet{}, fmt.Errorf("wallet.Reset: %w", err)
	}
	slog.Info("wallet reset", "user", userID, "balance", w.Balance)
	return *w, nil
}

// All returns every wallet ordered by user id.
func (l *Ledger) All(ctx context.Context) ([]domain.Wallet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet.All: %w", err)
	}
	out := make([]domain.Wallet, 0, len(doc.Wallets))
	for _, w := range doc.Wallets {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// TopByBalance returns up to limit wallets, richest first.
func (l *Ledger) TopByBalance(ctx context.Context, limit int) ([]domain.Wallet, error) {
	all, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Balance > all[j].Balance })
	return head(all, limit), nil
}

// TopByWinRate returns up to limit wallets with at least minBets settled
// bets, ordered by win rate, then bet count, then net profit.
func (l *Ledger) TopByWinRate(ctx context.Context, limit, minBets int) ([]domain.Wallet, error) {
	all, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	eligible := all[:0]
	for _, w := range all {
		if w.TotalBets() >= minBets {
			eligible = append(eligible, w)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.WinRate() != b.WinRate() {
			return a.WinRate() > b.WinRate()
		}
		if a.TotalBets() != b.TotalBets() {
			return a.TotalBets() > b.TotalBets()
		}
		return a.Profit() > b.Profit()
	})
	return head(eligible, limit), nil
}

func head(ws []domain.Wallet, limit int) []domain.Wallet {
	if limit > 0 && len(ws) > limit {
		return ws[:limit]
	}
	return ws
}
