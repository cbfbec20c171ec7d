package wallet

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/autosell/internal/model"
)

// BalanceSource provides the account's balances.
type BalanceSource interface {
	GetBalances(ctx context.Context) ([]model.Balance, error)
}

// Fetcher retrieves balances and drops the ones that should not be sold.
type Fetcher struct {
	source     BalanceSource
	ignored    []string
	minBalance decimal.Decimal
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher. Ignored coins are matched after trimming
// and upper-casing.
func NewFetcher(source BalanceSource, ignored []string, minBalance decimal.Decimal, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		source:     source,
		ignored:    ignored,
		minBalance: minBalance,
		logger:     logger,
	}
}

// Fetch performs one signed balance call and returns the sellable balances
// in fetch order. Errors from the source are returned unchanged.
func (f *Fetcher) Fetch(ctx context.Context) ([]model.Balance, error) {
	start := time.Now()

	all, err := f.source.GetBalances(ctx)
	if err != nil {
		return nil, err
	}

	kept := Filter(all, f.ignored, f.minBalance)

	f.logger.Info("balances fetched",
		"total", len(all),
		"sellable", len(kept),
		"duration", time.Since(start),
	)

	return kept, nil
}

// Filter keeps balances whose currency is not ignored and whose available
// quantity is strictly positive and at least minBalance.
func Filter(balances []model.Balance, ignored []string, minBalance decimal.Decimal) []model.Balance {
	skip := ignoreSet(ignored)

	kept := make([]model.Balance, 0, len(balances))
	for _, b := range balances {
		if _, ok := skip[strings.ToUpper(b.Currency)]; ok {
			continue
		}
		if !b.Available.IsPositive() {
			continue
		}
		if b.Available.LessThan(minBalance) {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

func ignoreSet(coins []string) map[string]struct{} {
	set := make(map[string]struct{}, len(coins))
	for _, c := range coins {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}
