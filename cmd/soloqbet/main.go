package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/soloqbet/config"
	"github.com/alejandrodnm/soloqbet/internal/adapters/logring"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one poll cycle and exit")
	board := flag.Bool("board", false, "print markets, balances and roster, then exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full market tables instead of one-line events")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	ring := setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, ring, *table)
	if err != nil {
		slog.Error("failed to start", "err", err)
		os.Exit(1)
	}
	defer a.close()

	switch {
	case flag.NArg() > 0:
		if err := a.runCommand(ctx, flag.Args()); err != nil {
			slog.Error("command failed", "cmd", flag.Arg(0), "err", err)
			os.Exit(1)
		}
		return
	case *board:
		if err := a.printBoard(ctx); err != nil {
			slog.Error("board failed", "err", err)
			os.Exit(1)
		}
		return
	case *once:
		a.loadCatalog(ctx)
		if err := a.watcher.RunOnce(ctx); err != nil {
			slog.Error("poll cycle failed", "err", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("soloqbet starting",
		"config", *configPath,
		"storage", cfg.Storage.Driver,
		"interval", a.pollInterval,
		"enabled", a.watcher.Enabled(),
	)

	a.loadCatalog(ctx)
	a.serveMetrics(ctx)

	if err := a.watcher.Run(ctx); err != nil {
		slog.Error("watcher exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("soloqbet stopped cleanly")
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: soloqbet [flags] [command args...]\n\nFlags:\n")
	flag.PrintDefaults()
	fmt.Fprint(out, commandHelp)
}

// setupLogger installs the default logger and returns the ring keeping the
// most recent records.
func setupLogger(cfg config.LogConfig) *logring.Ring {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	ring := logring.New(cfg.Ring)
	slog.SetDefault(slog.New(logring.NewHandler(handler, ring)))
	return ring
}
