package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/alejandrodnm/soloqbet/internal/application/watcher"
	"github.com/alejandrodnm/soloqbet/internal/domain"
)

const commandHelp = `
Commands:
  link <user> <Name#TAG>           track a Riot account for a user
  unlink <user>                    stop tracking the user's account
  wallet <user>                    show a wallet (created on first use)
  give <user> <amount>             credit tokens
  take <user> <amount>             debit tokens, never below zero
  reset <user>                     restore the default balance and clear stats
  bet <match> <user> <side> <amt>  place a wager on blue or red
  odds <match>                     show current odds
  close <match>                    stop accepting wagers
  resolve <match> <side>           pay out the winning side
  cancel <match>|all               refund and archive
  history <user>                   last settled wagers of a user
  ladder                           refresh the ranked ladder
  enable | disable                 toggle the watcher
  channel <id> [role]              set the announcement channel and role
`

var errUsage = errors.New("invalid arguments, see -h")

func (a *app) runCommand(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	need := func(n int) error {
		if len(rest) < n {
			return fmt.Errorf("%s: %w", cmd, errUsage)
		}
		return nil
	}

	switch cmd {
	case "link":
		if err := need(2); err != nil {
			return err
		}
		p, err := a.registry.Link(ctx, rest[0], rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Printf("✅ %s linked to %s\n", p.UserID, p.RiotID())

	case "unlink":
		if err := need(1); err != nil {
			return err
		}
		if err := a.registry.Unlink(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Printf("✅ %s removed\n", rest[0])

	case "wallet":
		if err := need(1); err != nil {
			return err
		}
		w, err := a.ledger.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		printWallet(w)

	case "give", "take":
		if err := need(2); err != nil {
			return err
		}
		amount, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: amount: %w", cmd, err)
		}
		var w domain.Wallet
		if cmd == "give" {
			w, err = a.ledger.Credit(ctx, rest[0], amount)
		} else {
			w, err = a.ledger.Debit(ctx, rest[0], amount)
		}
		if err != nil {
			return err
		}
		slog.Info("admin balance change", "cmd", cmd, "user", rest[0], "amount", amount)
		printWallet(w)

	case "reset":
		if err := need(1); err != nil {
			return err
		}
		w, err := a.ledger.Reset(ctx, rest[0])
		if err != nil {
			return err
		}
		printWallet(w)

	case "bet":
		if err := need(4); err != nil {
			return err
		}
		side, err := domain.ParseSide(rest[2])
		if err != nil {
			return err
		}
		stake, err := strconv.ParseInt(rest[3], 10, 64)
		if err != nil {
			return fmt.Errorf("bet: amount: %w", err)
		}
		r, err := a.book.PlaceBet(ctx, rest[0], rest[1], side, stake)
		if err != nil {
			return err
		}
		fmt.Printf("✅ %d on %s at x%.2f (potential %d)\n   odds now x%.2f | x%.2f, pool %d, balance %d\n",
			r.Wager.Stake, r.Side, r.OddsAtBet, domain.Payout(r.Wager.Stake, r.OddsAtBet),
			r.NewOdds.Blue, r.NewOdds.Red, r.TotalPool, r.Balance)

	case "odds":
		if err := need(1); err != nil {
			return err
		}
		o, err := a.book.Odds(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("🔵 x%.2f   🔴 x%.2f\n", o.Blue, o.Red)

	case "close":
		if err := need(1); err != nil {
			return err
		}
		return a.book.Close(ctx, rest[0])

	case "resolve":
		if err := need(2); err != nil {
			return err
		}
		side, err := domain.ParseSide(rest[1])
		if err != nil {
			return err
		}
		_, err = a.book.Resolve(ctx, rest[0], side)
		return err

	case "cancel":
		if err := need(1); err != nil {
			return err
		}
		if rest[0] == "all" {
			markets, refunded, err := a.book.CancelAll(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("✅ %d markets cancelled, %d wagers refunded\n", markets, refunded)
			return nil
		}
		refunded, err := a.book.Cancel(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("✅ %d wagers refunded\n", refunded)

	case "history":
		if err := need(1); err != nil {
			return err
		}
		records, err := a.book.HistoryForUser(ctx, rest[0], 0)
		if err != nil {
			return err
		}
		a.console.PrintHistory(rest[0], records)

	case "ladder":
		l, err := a.registry.Refresh(ctx)
		if err != nil {
			return err
		}
		printLadder(l)

	case "enable", "disable":
		a.settings.Enabled = cmd == "enable"
		if err := watcher.SaveSettings(ctx, a.store, a.settings); err != nil {
			return err
		}
		a.watcher.SetEnabled(a.settings.Enabled)

	case "channel":
		if err := need(1); err != nil {
			return err
		}
		a.settings.ChannelID = rest[0]
		if len(rest) > 1 {
			a.settings.RoleID = rest[1]
		}
		if err := watcher.SaveSettings(ctx, a.store, a.settings); err != nil {
			return err
		}
		fmt.Printf("✅ announcements go to channel %s\n", a.settings.ChannelID)

	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
	return nil
}

func printWallet(w domain.Wallet) {
	fmt.Printf("💰 %s: %d tokens   %dW/%dL (%.0f%%)   profit %+d\n",
		w.UserID, w.Balance, w.BetsWon, w.BetsLost, w.WinRate(), w.Profit())
}
