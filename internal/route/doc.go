// Package route plans how a held coin reaches the target currency.
//
// A route is either empty (the coin already is the target), a single SELL
// into a market quoted in the target, or two SELLs through a bridge
// currency. Inactive markets are treated as absent.
package route
