package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rickgao/autosell/internal/model"
)

// GetMarkets fetches every market listed by the exchange.
func (c *Client) GetMarkets(ctx context.Context) ([]model.Market, error) {
	var resp []APIMarket
	if err := c.getPublic(ctx, "/public/getmarkets", nil, &resp); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}

	markets := make([]model.Market, 0, len(resp))
	for i := range resp {
		m, err := resp[i].ToModel()
		if err != nil {
			return nil, fmt.Errorf("get markets: %w", &TransportError{
				Method: http.MethodGet,
				URL:    c.publicURL + "/public/getmarkets",
				Err:    err,
			})
		}
		markets = append(markets, m)
	}

	return markets, nil
}

// GetTicker fetches the current bid/ask/last for a market by catalog name.
func (c *Client) GetTicker(ctx context.Context, marketName string) (*model.Ticker, error) {
	query := url.Values{}
	query.Set("market", marketName)

	var resp APITicker
	if err := c.getPublic(ctx, "/public/getticker", query, &resp); err != nil {
		return nil, fmt.Errorf("get ticker %s: %w", marketName, err)
	}

	t := resp.ToModel(marketName)
	return &t, nil
}
