package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rickgao/autosell/internal/model"
)

// GetBalances fetches every wallet on the account.
func (c *Client) GetBalances(ctx context.Context) ([]model.Balance, error) {
	var resp []APIBalance
	if err := c.getPrivate(ctx, "/balances", &resp); err != nil {
		return nil, fmt.Errorf("get balances: %w", err)
	}

	balances := make([]model.Balance, 0, len(resp))
	for i := range resp {
		b, err := resp[i].ToModel()
		if err != nil {
			return nil, fmt.Errorf("get balances: %w", &TransportError{
				Method: http.MethodGet,
				URL:    c.privateURL + "/balances",
				Err:    err,
			})
		}
		balances = append(balances, b)
	}

	return balances, nil
}
