package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/domain/roles"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// Console implements ports.Notifier and prints boards for the CLI.
type Console struct {
	out   io.Writer
	table bool
	now   func() time.Time
}

var _ ports.Notifier = (*Console)(nil)

// NewConsole creates a notifier writing to stdout. table=false prints one
// line per event.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table, now: time.Now}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table, now: time.Now}
}

// MarketOpened prints the new market with both rosters.
func (c *Console) MarketOpened(_ context.Context, m *domain.Market) error {
	odds := m.Odds()
	fmt.Fprintf(c.out, "[%s] market %s opened: %s (%s) on %s, betting until %s, odds 🔵 x%.2f | 🔴 x%.2f\n",
		c.now().Format("15:04:05"), m.MatchID, m.Tracked.RiotID(), m.Tracked.ChampionName,
		sideLabel(m.Tracked.Side), m.BettingEndsAt.Local().Format("15:04:05"), odds.Blue, odds.Red)

	if !c.table {
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Side", "Role", "Champion", "Player", "Rank", "Winrate")
	for _, side := range [2]domain.Side{domain.SideBlue, domain.SideRed} {
		for _, p := range m.Team(side) {
			table.Append(
				sideIcon(side),
				roles.RoleIcon(p.Role)+" "+string(p.Role),
				p.ChampionName,
				playerName(p),
				rankText(p.Rank),
				winRateText(p.Rank),
			)
		}
	}
	table.Render()
	return nil
}

// MarketResolved prints the winner and every payout.
func (c *Console) MarketResolved(_ context.Context, m *domain.Market) error {
	winner := "?"
	if m.Winner != nil {
		winner = sideIcon(*m.Winner) + " " + sideLabel(*m.Winner)
	}
	var winners, losers int
	var distributed int64
	if m.Results != nil {
		winners, losers, distributed = len(m.Results.Winners), len(m.Results.Losers), m.Results.TotalDistributed
	}
	fmt.Fprintf(c.out, "[%s] market %s resolved: %s won, %d winners, %d losers, %d tokens distributed\n",
		c.now().Format("15:04:05"), m.MatchID, winner, winners, losers, distributed)

	if !c.table || m.Results == nil || winners+losers == 0 {
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("User", "Stake", "Odds", "Result")
	for _, p := range m.Results.Winners {
		table.Append(p.UserID, fmt.Sprintf("%d", p.Stake), fmt.Sprintf("x%.2f", p.OddsAtBet), fmt.Sprintf("+%d", p.Winnings))
	}
	for _, p := range m.Results.Losers {
		table.Append(p.UserID, fmt.Sprintf("%d", p.Stake), fmt.Sprintf("x%.2f", p.OddsAtBet), fmt.Sprintf("-%d", p.Stake))
	}
	table.Render()
	return nil
}

// MarketCancelled prints a one-line notice.
func (c *Console) MarketCancelled(_ context.Context, m *domain.Market, refunded int) error {
	fmt.Fprintf(c.out, "[%s] market %s cancelled: %d wagers refunded (%d tokens)\n",
		c.now().Format("15:04:05"), m.MatchID, refunded, m.Pools.Total())
	return nil
}

// PrintMarkets prints the live markets board.
func (c *Console) PrintMarkets(markets []*domain.Market) {
	if len(markets) == 0 {
		fmt.Fprintln(c.out, "\n  No active markets.")
		return
	}

	now := c.now()
	table := tablewriter.NewWriter(c.out)
	table.Header("Match", "Player", "Champion", "Side", "Odds", "Pools", "Bettors", "Status")
	for _, m := range markets {
		odds := m.Odds()
		table.Append(
			m.MatchID,
			m.Tracked.RiotID(),
			m.Tracked.ChampionName,
			sideIcon(m.Tracked.Side),
			fmt.Sprintf("x%.2f | x%.2f", odds.Blue, odds.Red),
			fmt.Sprintf("%d | %d", m.Pools.Blue, m.Pools.Red),
			fmt.Sprintf("%d", m.WagerCount()),
			statusText(m, now),
		)
	}
	table.Render()
}

// PrintBalances prints the leaderboard by balance.
func (c *Console) PrintBalances(wallets []domain.Wallet) {
	if len(wallets) == 0 {
		fmt.Fprintln(c.out, "\n  No bettors yet.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "User", "Balance", "Winrate")
	for i, w := range wallets {
		table.Append(medal(i), w.UserID, fmt.Sprintf("%d", w.Balance), fmt.Sprintf("%.0f%%", w.WinRate()))
	}
	table.Render()
}

// PrintWinRates prints the leaderboard by settled win rate.
func (c *Console) PrintWinRates(wallets []domain.Wallet) {
	if len(wallets) == 0 {
		fmt.Fprintln(c.out, "\n  No settled bets yet.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "User", "Winrate", "W/L", "Profit")
	for i, w := range wallets {
		table.Append(
			medal(i),
			w.UserID,
			fmt.Sprintf("%.0f%%", w.WinRate()),
			fmt.Sprintf("%dW/%dL", w.BetsWon, w.BetsLost),
			fmt.Sprintf("%+d", w.Profit()),
		)
	}
	table.Render()
}

// PrintHistory prints a bettor's recent settled wagers.
func (c *Console) PrintHistory(userID string, records []domain.BetRecord) {
	if len(records) == 0 {
		fmt.Fprintf(c.out, "\n  %s has no betting history.\n", userID)
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("", "Side", "Player", "Stake", "Result", "Date")
	for _, r := range records {
		icon, result := "❌", fmt.Sprintf("%d", r.Delta)
		switch {
		case r.Status == domain.MarketCancelled:
			icon, result = "↩️", "refunded"
		case r.Won():
			icon, result = "✅", fmt.Sprintf("+%d", r.Delta)
		}
		table.Append(icon, sideIcon(r.Side), r.Tracked.GameName, fmt.Sprintf("%d", r.Stake), result,
			r.SettledAt.Local().Format("2006-01-02"))
	}
	table.Render()
}

// PrintRoster prints the tracked players.
func (c *Console) PrintRoster(players []domain.TrackedPlayer) {
	if len(players) == 0 {
		fmt.Fprintln(c.out, "\n  No tracked players.")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Riot ID", "User", "Linked")
	for _, p := range players {
		user := p.UserTag
		if user == "" {
			user = p.UserID
		}
		table.Append(p.RiotID(), user, p.AddedAt.Local().Format("2006-01-02"))
	}
	table.Render()
}

func medal(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	}
	return fmt.Sprintf("%d.", i+1)
}

// Multi fans an event out to several notifiers. Every notifier is called;
// the returned error joins the failures.
type Multi []ports.Notifier

var _ ports.Notifier = Multi(nil)

func (m Multi) MarketOpened(ctx context.Context, mk *domain.Market) error {
	return m.each(func(n ports.Notifier) error { return n.MarketOpened(ctx, mk) })
}

func (m Multi) MarketResolved(ctx context.Context, mk *domain.Market) error {
	return m.each(func(n ports.Notifier) error { return n.MarketResolved(ctx, mk) })
}

func (m Multi) MarketCancelled(ctx context.Context, mk *domain.Market, refunded int) error {
	return m.each(func(n ports.Notifier) error { return n.MarketCancelled(ctx, mk, refunded) })
}

func (m Multi) each(fn func(ports.Notifier) error) error {
	var errs []error
	for _, n := range m {
		if err := fn(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
