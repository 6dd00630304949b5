package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/soloqbet/config"
	"github.com/alejandrodnm/soloqbet/internal/adapters/ddragon"
	"github.com/alejandrodnm/soloqbet/internal/adapters/logring"
	"github.com/alejandrodnm/soloqbet/internal/adapters/metrics"
	"github.com/alejandrodnm/soloqbet/internal/adapters/notify"
	"github.com/alejandrodnm/soloqbet/internal/adapters/riot"
	"github.com/alejandrodnm/soloqbet/internal/adapters/storage"
	"github.com/alejandrodnm/soloqbet/internal/application/market"
	"github.com/alejandrodnm/soloqbet/internal/application/roster"
	"github.com/alejandrodnm/soloqbet/internal/application/wallet"
	"github.com/alejandrodnm/soloqbet/internal/application/watcher"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// app holds the wired components of one process.
type app struct {
	cfg          *config.Config
	store        ports.DocumentStore
	ring         *logring.Ring
	prom         *metrics.Prometheus
	console      *notify.Console
	ledger       *wallet.Ledger
	book         *market.Book
	registry     *roster.Registry
	catalog      *ddragon.Catalog
	watcher      *watcher.Watcher
	settings     watcher.Settings
	pollInterval time.Duration
}

func newApp(ctx context.Context, cfg *config.Config, ring *logring.Ring, table bool) (*app, error) {
	store, err := storage.Open(ctx, storage.Options{
		Driver:    cfg.Storage.Driver,
		DSN:       cfg.Storage.DSN,
		KeyPrefix: cfg.Storage.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	settings, found, err := watcher.LoadSettings(ctx, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	if !found {
		settings = watcher.Settings{
			Enabled:        cfg.Betting.Enabled,
			ChannelID:      cfg.Betting.AnnounceChannelID,
			RoleID:         cfg.Betting.AnnounceRoleID,
			PollIntervalMs: cfg.PollInterval().Milliseconds(),
		}
	}
	pollInterval := settings.PollInterval()
	if pollInterval <= 0 {
		pollInterval = cfg.PollInterval()
	}

	prom := metrics.NewPrometheus()
	console := notify.NewConsole(table)

	var notifier ports.Notifier = console
	if cfg.Discord.Token != "" && settings.ChannelID != "" {
		d, err := notify.NewDiscord(cfg.Discord.Token, settings.ChannelID, settings.RoleID)
		if err != nil {
			store.Close()
			return nil, err
		}
		notifier = notify.Multi{console, d}
		slog.Info("discord announcements enabled", "channel", settings.ChannelID)
	}

	client := riot.NewClient(riot.Options{
		APIKey:       cfg.Riot.APIKey,
		PlatformBase: cfg.Riot.PlatformBase,
		RegionalBase: cfg.Riot.RegionalBase,
		Timeout:      cfg.RiotTimeout(),
		Metrics:      prom,
	})
	if cfg.Riot.APIKey == "" {
		slog.Warn("riot api key missing, provider calls will be rejected")
	}

	catalog := ddragon.NewCatalog(cfg.Riot.DataDragonBase, cfg.Riot.Locale)

	ledger := wallet.New(store, cfg.Betting.DefaultBalance)
	book := market.New(store, ledger, notifier, prom, market.Config{
		Window:       cfg.Window(),
		MinStake:     cfg.Betting.MinStake,
		MaxStake:     cfg.Betting.MaxStake,
		HistoryLimit: cfg.Betting.HistoryLimit,
	})
	if _, err := book.Restore(ctx); err != nil {
		store.Close()
		return nil, err
	}

	pacer := watcher.NewPacer(cfg.EnrichDelay())
	registry := roster.New(store, client, pacer)

	w := watcher.New(watcher.Config{
		PollInterval:  pollInterval,
		QueueID:       cfg.Betting.QueueID,
		RecentMatches: cfg.Betting.RecentMatches,
		Enabled:       settings.Enabled,
	}, client, client, catalog, registry, book, pacer, prom)

	return &app{
		cfg:          cfg,
		store:        store,
		ring:         ring,
		prom:         prom,
		console:      console,
		ledger:       ledger,
		book:         book,
		registry:     registry,
		catalog:      catalog,
		watcher:      w,
		settings:     settings,
		pollInterval: pollInterval,
	}, nil
}

func (a *app) close() {
	a.book.Stop()
	if err := a.store.Close(); err != nil {
		slog.Warn("closing storage", "err", err)
	}
}

// loadCatalog fetches champion names for the watcher. Failures keep the
// fallback names.
func (a *app) loadCatalog(ctx context.Context) {
	if err := a.catalog.Load(ctx); err != nil {
		slog.Warn("champion catalog unavailable, using fallbacks", "err", err)
		return
	}
	slog.Info("champion catalog loaded", "version", a.catalog.Version())
}

// serveMetrics starts the metrics server in the background when configured.
func (a *app) serveMetrics(ctx context.Context) {
	if a.cfg.Metrics.Addr == "" {
		return
	}
	health := func(ctx context.Context) error {
		_, err := a.store.Get(ctx, ports.DocConfig)
		if errors.Is(err, ports.ErrDocumentNotFound) {
			return nil
		}
		return err
	}
	h := metrics.NewHandler(a.prom.Registry(), health, a.ring)
	go func() {
		if err := metrics.Serve(ctx, a.cfg.Metrics.Addr, h); err != nil {
			slog.Error("metrics server failed", "err", err)
		}
	}()
}
