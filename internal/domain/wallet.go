package domain

import "time"

// DefaultBalance is the starting balance of a freshly created wallet.
const DefaultBalance = 1000

// Outcome tags a balance change for lifetime statistics.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// Wallet is a user's token balance and lifetime betting stats.
type Wallet struct {
	UserID    string    `json:"-"`
	Balance   int64     `json:"balance"`
	TotalWon  int64     `json:"totalWon"`
	TotalLost int64     `json:"totalLost"`
	BetsWon   int       `json:"betsWon"`
	BetsLost  int       `json:"betsLost"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewWallet returns a wallet holding balance and no history.
func NewWallet(userID string, balance int64, now time.Time) *Wallet {
	return &Wallet{UserID: userID, Balance: balance, CreatedAt: now}
}

// Apply adds amount to the balance and records the outcome.
// A loss records |amount|, so a zero-amount loss only bumps the counter.
func (w *Wallet) Apply(amount int64, outcome Outcome) {
	w.Balance += amount
	switch outcome {
	case OutcomeWin:
		w.TotalWon += amount
		w.BetsWon++
	case OutcomeLoss:
		if amount < 0 {
			amount = -amount
		}
		w.TotalLost += amount
		w.BetsLost++
	}
}

// TotalBets returns settled bets, won or lost.
func (w Wallet) TotalBets() int { return w.BetsWon + w.BetsLost }

// WinRate returns the percentage of settled bets won.
func (w Wallet) WinRate() float64 {
	total := w.TotalBets()
	if total == 0 {
		return 0
	}
	return float64(w.BetsWon) / float64(total) * 100
}

// Profit returns lifetime tokens won minus lost.
func (w Wallet) Profit() int64 { return w.TotalWon - w.TotalLost }
