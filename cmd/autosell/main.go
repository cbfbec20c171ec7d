// Command autosell sells every coin held on a Bittrex account into a single
// target currency. It is meant to be run periodically from cron or a timer.
//
// Exit codes: 0 all coins succeeded, 1 configuration error, 2 fatal run
// error, 3 at least one coin failed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rickgao/autosell/internal/api"
	"github.com/rickgao/autosell/internal/auth"
	"github.com/rickgao/autosell/internal/config"
	"github.com/rickgao/autosell/internal/executor"
	"github.com/rickgao/autosell/internal/liquidator"
	"github.com/rickgao/autosell/internal/version"
)

const (
	exitOK          = 0
	exitConfig      = 1
	exitFatal       = 2
	exitCoinsFailed = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("autosell", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "config.json", "path to config file (YAML or JSON)")
	envPath := fs.String("env", ".env", "path to optional .env file")
	dryRun := fs.Bool("dry-run", false, "estimate proceeds without placing orders")
	jsonOut := fs.Bool("json", false, "print the run report as JSON")
	debug := fs.Bool("debug", false, "enable debug logging")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}

	if *showVersion {
		fmt.Fprintln(stdout, "autosell", version.String())
		return exitOK
	}

	// Logs go to stderr so the report on stdout stays machine-readable.
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting autosell",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	if err := config.LoadDotEnv(*envPath); err != nil {
		logger.Error("failed to load env file", "path", *envPath, "error", err)
		return exitConfig
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return exitConfig
	}
	if *dryRun {
		cfg.DryRun = true
	}

	creds, err := auth.NewCredentials(cfg.APIToken, cfg.APISecret, cfg.SubaccountID)
	if err != nil {
		logger.Error("invalid credentials", "error", err)
		return exitConfig
	}

	logger.Info("configuration loaded",
		"final_coin", cfg.FinalCoin,
		"bridge_coin", cfg.BridgeCoin,
		"ignored", len(cfg.IgnoredCoins),
		"dry_run", cfg.DryRun,
		"public_url", cfg.API.PublicURL,
		"private_url", cfg.API.PrivateURL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	client := api.NewClient(
		cfg.API.PublicURL,
		cfg.API.PrivateURL,
		creds,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
	)

	liq := liquidator.New(liquidator.Config{
		FinalCoin:    cfg.FinalCoin,
		BridgeCoin:   cfg.BridgeCoin,
		IgnoredCoins: cfg.IgnoredCoins,
		MinBalance:   cfg.MinBalance,
		Concurrency:  cfg.Concurrency,
		DryRun:       cfg.DryRun,
		Fill: executor.RetryPolicy{
			MaxAttempts:    cfg.Fill.MaxAttempts,
			Delay:          cfg.Fill.Delay,
			MaxDelay:       cfg.Fill.MaxDelay,
			Multiplier:     cfg.Fill.Multiplier,
			ResolveTimeout: cfg.Fill.ResolveTimeout,
		},
	}, client, logger)

	report, err := liq.Run(ctx)
	if err != nil {
		logger.Error("liquidation run failed", "kind", liquidator.ErrorKind(err), "error", err)
		return exitFatal
	}

	if *jsonOut {
		err = report.WriteJSON(stdout)
	} else {
		err = report.WriteText(stdout)
	}
	if err != nil {
		logger.Error("failed to write report", "error", err)
		return exitFatal
	}

	if report.Failed() > 0 {
		return exitCoinsFailed
	}
	return exitOK
}
