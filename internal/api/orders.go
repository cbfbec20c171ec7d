package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rickgao/autosell/internal/model"
)

// CreateOrder submits a new order. The request is sent exactly once.
func (c *Client) CreateOrder(ctx context.Context, req model.OrderRequest) (*model.OrderStatus, error) {
	var resp APIOrder
	if err := c.postPrivate(ctx, "/orders", newOrderRequest(req), &resp); err != nil {
		return nil, fmt.Errorf("create order %s: %w", req.MarketSymbol, err)
	}

	status := resp.ToModel()
	return &status, nil
}

// GetOrder fetches an order's current state by exchange id.
func (c *Client) GetOrder(ctx context.Context, id string) (*model.OrderStatus, error) {
	var resp APIOrder
	if err := c.getPrivate(ctx, "/orders/"+url.PathEscape(id), &resp); err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}

	status := resp.ToModel()
	return &status, nil
}
