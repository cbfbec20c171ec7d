// Package market implements the Market Catalog.
//
// The catalog is built once per run from the exchange's market list and is
// read-only afterwards, so it can be shared across concurrent liquidation
// pipelines without locking. Lookups match the catalog name "{quote}-{base}"
// exactly and case-sensitively.
package market
