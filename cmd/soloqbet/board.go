package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/soloqbet/internal/application/roster"
)

const leaderboardSize = 15

func (a *app) printBoard(ctx context.Context) error {
	active, err := a.book.Active(ctx)
	if err != nil {
		return err
	}
	rich, err := a.ledger.TopByBalance(ctx, leaderboardSize)
	if err != nil {
		return err
	}
	sharp, err := a.ledger.TopByWinRate(ctx, leaderboardSize, 1)
	if err != nil {
		return err
	}
	players, err := a.registry.List(ctx)
	if err != nil {
		return err
	}

	state := "off"
	if a.watcher.Enabled() {
		state = "on"
	}
	fmt.Printf("\n  Betting: %s   Poll: %s   Tracked: %d\n", state, a.pollInterval, len(players))

	fmt.Println("\n  ── Live markets ──")
	a.console.PrintMarkets(active)
	fmt.Println("\n  ── Richest ──")
	a.console.PrintBalances(rich)
	fmt.Println("\n  ── Best bettors ──")
	a.console.PrintWinRates(sharp)
	fmt.Println("\n  ── Tracked players ──")
	a.console.PrintRoster(players)

	ladder, err := a.registry.Standings(ctx)
	if err != nil {
		return err
	}
	if ladder != nil {
		fmt.Println("\n  ── Ranked ladder ──")
		printLadder(ladder)
	}
	return nil
}

func printLadder(l *roster.Ladder) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("#", "Riot ID", "Rank", "W/L")
	for i, s := range l.Items {
		rank, record := "Unranked", "-"
		if s.Rank != nil {
			rank = strings.TrimSpace(fmt.Sprintf("%s %s %d LP", s.Rank.Tier, s.Rank.Division, s.Rank.Points))
			record = fmt.Sprintf("%dW/%dL (%.1f%%)", s.Rank.Wins, s.Rank.Losses, s.Rank.WinRate())
		}
		table.Append(fmt.Sprintf("%d", i+1), s.RiotID, rank, record)
	}
	table.Render()
	fmt.Printf("  updated %s\n", l.UpdatedAt.Local().Format("2006-01-02 15:04"))
}
