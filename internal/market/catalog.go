package market

import (
	"context"
	"log/slog"
	"time"

	"github.com/rickgao/autosell/internal/model"
)

// Source provides the exchange's market list.
type Source interface {
	GetMarkets(ctx context.Context) ([]model.Market, error)
}

// Catalog is an immutable index of tradable markets.
type Catalog struct {
	markets []model.Market
	byName  map[string]int
}

// NewCatalog indexes markets by catalog name. Duplicate names keep the first
// occurrence.
func NewCatalog(markets []model.Market) *Catalog {
	c := &Catalog{
		markets: make([]model.Market, 0, len(markets)),
		byName:  make(map[string]int, len(markets)),
	}

	for _, m := range markets {
		if _, ok := c.byName[m.Name]; ok {
			continue
		}
		c.byName[m.Name] = len(c.markets)
		c.markets = append(c.markets, m)
	}

	return c
}

// Load fetches the market list from source and builds a catalog. Any fetch
// error is returned unchanged; there is no partial catalog.
func Load(ctx context.Context, source Source, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	logger.Debug("fetching markets")

	markets, err := source.GetMarkets(ctx)
	if err != nil {
		return nil, err
	}

	c := NewCatalog(markets)

	logger.Info("market catalog loaded",
		"markets", c.Len(),
		"duration", time.Since(start),
	)

	return c, nil
}

// Lookup returns the market that prices base in quote.
func (c *Catalog) Lookup(base, quote string) (model.Market, bool) {
	i, ok := c.byName[model.MarketName(base, quote)]
	if !ok {
		return model.Market{}, false
	}
	return c.markets[i], true
}

// Relevant returns the markets whose base currency has a strictly positive
// available balance, in catalog order.
func (c *Catalog) Relevant(balances []model.Balance) []model.Market {
	held := make(map[string]struct{}, len(balances))
	for _, b := range balances {
		if b.Available.IsPositive() {
			held[b.Currency] = struct{}{}
		}
	}

	var result []model.Market
	for _, m := range c.markets {
		if _, ok := held[m.Base]; ok {
			result = append(result, m)
		}
	}
	return result
}

// Len returns the number of indexed markets.
func (c *Catalog) Len() int {
	return len(c.markets)
}
