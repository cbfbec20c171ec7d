package api

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rickgao/autosell/internal/model"
)

// ToModel converts an APIMarket to model.Market.
func (m *APIMarket) ToModel() (model.Market, error) {
	if m.MarketName == "" {
		return model.Market{}, fmt.Errorf("market without MarketName")
	}
	if m.MarketCurrency == "" || m.BaseCurrency == "" {
		return model.Market{}, fmt.Errorf("market %s: missing currency", m.MarketName)
	}

	return model.Market{
		Name:         m.MarketName,
		Base:         m.MarketCurrency,
		Quote:        m.BaseCurrency,
		Active:       m.IsActive,
		MinTradeSize: m.MinTradeSize,
	}, nil
}

// ToModel converts an APITicker to model.Ticker.
func (t *APITicker) ToModel(market string) model.Ticker {
	return model.Ticker{
		Market: market,
		Bid:    t.Bid,
		Ask:    t.Ask,
		Last:   t.Last,
	}
}

// ToModel converts an APIBalance to model.Balance.
func (b *APIBalance) ToModel() (model.Balance, error) {
	if b.CurrencySymbol == "" {
		return model.Balance{}, fmt.Errorf("balance without currencySymbol")
	}
	if b.Available.IsNegative() {
		return model.Balance{}, fmt.Errorf("balance %s: negative available %s", b.CurrencySymbol, b.Available)
	}

	return model.Balance{
		Currency:  b.CurrencySymbol,
		Available: b.Available,
		Total:     b.Total,
	}, nil
}

// ToModel converts an APIOrder to model.OrderStatus.
func (o *APIOrder) ToModel() model.OrderStatus {
	return model.OrderStatus{
		ID:            o.ID,
		MarketSymbol:  o.MarketSymbol,
		Direction:     model.Direction(o.Direction),
		Quantity:      o.Quantity,
		FillQuantity:  o.FillQuantity,
		Proceeds:      o.Proceeds,
		Commission:    o.Commission,
		Status:        o.Status,
		ClientOrderID: o.ClientOrderID,
	}
}

// newOrderRequest converts a model.OrderRequest to the wire format.
func newOrderRequest(req model.OrderRequest) NewOrderRequest {
	out := NewOrderRequest{
		MarketSymbol: req.MarketSymbol,
		Direction:    string(req.Direction),
		Type:         string(req.Type),
		Quantity:     req.Quantity,
		TimeInForce:  string(req.TimeInForce),
	}
	if req.ClientOrderID != uuid.Nil {
		out.ClientOrderID = req.ClientOrderID.String()
	}
	return out
}
