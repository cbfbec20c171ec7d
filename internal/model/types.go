package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Catalog Types
// -----------------------------------------------------------------------------

// Market represents a tradable currency pair.
type Market struct {
	Name         string          // Catalog name, "{quote}-{base}"
	Base         string          // Currency being priced (e.g. "ETH" in "BTC-ETH")
	Quote        string          // Settlement currency (e.g. "BTC" in "BTC-ETH")
	Active       bool            // Open for trading
	MinTradeSize decimal.Decimal // Minimum order quantity in base units
}

// Symbol returns the market identifier used by the order API.
func (m Market) Symbol() string {
	return m.Base + "-" + m.Quote
}

// MarketName returns the catalog name for a base/quote pair.
func MarketName(base, quote string) string {
	return quote + "-" + base
}

// Balance represents a single currency wallet.
type Balance struct {
	Currency  string          // Currency code
	Available decimal.Decimal // Quantity free to trade
	Total     decimal.Decimal // Available plus reserved
}

// Ticker is a top-of-book price snapshot for a market.
type Ticker struct {
	Market string
	Bid    decimal.Decimal
	Ask    decimal.Decimal
	Last   decimal.Decimal
}

// -----------------------------------------------------------------------------
// Routing Types
// -----------------------------------------------------------------------------

// Direction is the side of an order.
type Direction string

const (
	DirectionSell Direction = "SELL"
	DirectionBuy  Direction = "BUY"
)

// Leg is one market traversal within a route.
type Leg struct {
	Market    Market
	From      string    // Currency disposed of
	To        string    // Currency received
	Direction Direction // SELL when From is the market's base
}

// String renders the leg as "FROM->TO@MARKET".
func (l Leg) String() string {
	return l.From + "->" + l.To + "@" + l.Market.Name
}

// Route is the ordered sequence of legs that turns Source into Target.
type Route struct {
	Source string
	Target string
	Legs   []Leg
}

// IsEmpty reports whether there is nothing to trade.
func (r Route) IsEmpty() bool {
	return len(r.Legs) == 0
}

// String renders the route as "ETH->BTC->USDT", or just the source when empty.
func (r Route) String() string {
	if r.IsEmpty() {
		return r.Source
	}
	parts := make([]string, 0, len(r.Legs)+1)
	parts = append(parts, r.Legs[0].From)
	for _, leg := range r.Legs {
		parts = append(parts, leg.To)
	}
	return strings.Join(parts, "->")
}

// -----------------------------------------------------------------------------
// Order Types
// -----------------------------------------------------------------------------

// OrderType is the exchange order type.
type OrderType string

const OrderTypeMarket OrderType = "MARKET"

// TimeInForce controls how long an order may rest on the book.
type TimeInForce string

// TimeInForceFillOrKill executes in full immediately or is cancelled.
const TimeInForceFillOrKill TimeInForce = "FILL_OR_KILL"

// Order status values reported by the exchange.
const (
	OrderStatusOpen   = "OPEN"
	OrderStatusClosed = "CLOSED"
)

// OrderRequest describes a single order submission.
type OrderRequest struct {
	MarketSymbol  string
	Direction     Direction
	Type          OrderType
	TimeInForce   TimeInForce
	Quantity      decimal.Decimal
	ClientOrderID uuid.UUID
}

// OrderStatus is the exchange's view of an order.
type OrderStatus struct {
	ID            string
	MarketSymbol  string
	Direction     Direction
	Quantity      decimal.Decimal // Requested quantity
	FillQuantity  decimal.Decimal // Executed quantity
	Proceeds      decimal.Decimal // Quote currency received (sell) before commission
	Commission    decimal.Decimal // Fee charged in quote currency
	Status        string          // OPEN or CLOSED
	ClientOrderID string
}

// IsClosed reports whether the exchange has finished processing the order.
func (s OrderStatus) IsClosed() bool {
	return s.Status == OrderStatusClosed
}

// NetProceeds returns proceeds minus commission, floored at zero.
func (s OrderStatus) NetProceeds() decimal.Decimal {
	net := s.Proceeds.Sub(s.Commission)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}
