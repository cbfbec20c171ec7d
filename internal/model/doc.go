// Package model defines shared data types used across the liquidation engine.
//
// Conventions:
//   - Quantities: decimal.Decimal, never float64
//   - Currencies: upper-case exchange codes ("BTC", "USDT")
//   - Market names: "{quote}-{base}" (catalog convention, e.g. "BTC-ETH")
//   - Market symbols: "{base}-{quote}" (order API convention, e.g. "ETH-BTC")
package model
