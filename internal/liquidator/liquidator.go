package liquidator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/autosell/internal/executor"
	"github.com/rickgao/autosell/internal/market"
	"github.com/rickgao/autosell/internal/model"
	"github.com/rickgao/autosell/internal/route"
	"github.com/rickgao/autosell/internal/wallet"
)

// Exchange is everything a run needs from the exchange client.
type Exchange interface {
	market.Source
	wallet.BalanceSource
	executor.OrderAPI
	GetTicker(ctx context.Context, marketName string) (*model.Ticker, error)
}

// Config holds liquidator configuration.
type Config struct {
	FinalCoin    string
	BridgeCoin   string
	IgnoredCoins []string
	MinBalance   decimal.Decimal
	Concurrency  int // Max coins liquidated in parallel (default: 4)
	DryRun       bool
	Fill         executor.RetryPolicy
}

// Liquidator sells every sellable balance into the final coin.
type Liquidator struct {
	cfg    Config
	ex     Exchange
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Liquidator.
func New(cfg Config, ex Exchange, logger *slog.Logger) *Liquidator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 4
	}
	if cfg.BridgeCoin == "" {
		cfg.BridgeCoin = route.DefaultBridge
	}
	return &Liquidator{
		cfg:    cfg,
		ex:     ex,
		logger: logger,
		now:    time.Now,
	}
}

// Run performs one liquidation pass. A failure to load the catalog or the
// balances aborts the run; per-coin failures are recorded in the report.
func (l *Liquidator) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.New(),
		StartedAt: l.now(),
		Target:    l.cfg.FinalCoin,
		DryRun:    l.cfg.DryRun,
	}
	logger := l.logger.With("run_id", report.RunID.String())

	logger.Info("liquidation run started",
		"target", l.cfg.FinalCoin,
		"bridge", l.cfg.BridgeCoin,
		"dry_run", l.cfg.DryRun,
	)

	var (
		catalog  *market.Catalog
		balances []model.Balance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := market.Load(gctx, l.ex, logger)
		if err != nil {
			return fmt.Errorf("load markets: %w", err)
		}
		catalog = c
		return nil
	})
	g.Go(func() error {
		fetcher := wallet.NewFetcher(l.ex, l.cfg.IgnoredCoins, l.cfg.MinBalance, logger)
		bs, err := fetcher.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("fetch balances: %w", err)
		}
		balances = bs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Relevant = len(catalog.Relevant(balances))
	logger.Info("relevant markets", "count", report.Relevant, "balances", len(balances))

	planner := route.NewPlanner(catalog, l.cfg.BridgeCoin)
	exec := executor.New(l.ex, l.cfg.Fill, logger)

	report.Results = make([]CoinResult, len(balances))

	var pipelines errgroup.Group
	pipelines.SetLimit(l.cfg.Concurrency)
	for i, b := range balances {
		i, b := i, b
		pipelines.Go(func() error {
			report.Results[i] = l.liquidate(ctx, logger, planner, exec, b)
			return nil
		})
	}
	pipelines.Wait()

	report.FinishedAt = l.now()

	logger.Info("liquidation run complete",
		"coins", len(report.Results),
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		"received", report.Total().String(),
		"duration", report.Duration(),
	)

	return report, nil
}

// liquidate runs one coin's pipeline and never returns an error; failures
// are captured in the result.
func (l *Liquidator) liquidate(ctx context.Context, logger *slog.Logger, planner *route.Planner, exec *executor.Executor, b model.Balance) CoinResult {
	res := CoinResult{
		Currency: b.Currency,
		Quantity: b.Available,
		Route:    b.Currency,
	}
	logger = logger.With("coin", b.Currency)

	if err := ctx.Err(); err != nil {
		return res.fail(err)
	}

	r, err := planner.Plan(b.Currency, l.cfg.FinalCoin)
	if err != nil {
		logger.Warn("no route", "err", err)
		return res.fail(err)
	}
	res.Route = r.String()

	if r.IsEmpty() {
		logger.Debug("already in target currency")
		res.Status = StatusSucceeded
		return res
	}

	if l.cfg.DryRun {
		return l.estimate(ctx, logger, r, res)
	}

	outcomes, err := exec.ExecuteRoute(ctx, r, b.Available)
	for _, out := range outcomes {
		res.Legs = append(res.Legs, legFromOutcome(out))
	}
	if err != nil {
		logger.Error("liquidation failed",
			"route", res.Route,
			"kind", ErrorKind(err),
			"err", err,
		)
		return res.fail(err)
	}

	res.Status = StatusSucceeded
	res.Received = outcomes[len(outcomes)-1].NetProceeds()

	logger.Info("liquidated",
		"route", res.Route,
		"quantity", b.Available.String(),
		"received", res.Received.String(),
	)

	return res
}

// estimate prices the route at the current bid of each leg without trading.
func (l *Liquidator) estimate(ctx context.Context, logger *slog.Logger, r model.Route, res CoinResult) CoinResult {
	qty := res.Quantity

	for _, leg := range r.Legs {
		qty = qty.Truncate(executor.QuantityPrecision)

		ticker, err := l.ex.GetTicker(ctx, leg.Market.Name)
		if err != nil {
			logger.Warn("ticker lookup failed", "market", leg.Market.Name, "err", err)
			return res.fail(err)
		}

		proceeds := qty.Mul(ticker.Bid)
		res.Legs = append(res.Legs, LegResult{
			Market:    leg.Market.Name,
			From:      leg.From,
			To:        leg.To,
			Quantity:  qty,
			Proceeds:  proceeds,
			Estimated: true,
		})
		qty = proceeds
	}

	res.Status = StatusPlanned
	res.Received = qty

	logger.Info("dry run estimate",
		"route", res.Route,
		"quantity", res.Quantity.String(),
		"estimated", qty.String(),
	)

	return res
}

func legFromOutcome(out *executor.FillOutcome) LegResult {
	return LegResult{
		Market:      out.Leg.Market.Name,
		From:        out.Leg.From,
		To:          out.Leg.To,
		OrderID:     out.OrderID,
		Quantity:    out.Quantity,
		Filled:      out.Filled,
		Proceeds:    out.Proceeds,
		Commission:  out.Commission,
		Submissions: out.Submissions,
		Polls:       out.Polls,
	}
}
