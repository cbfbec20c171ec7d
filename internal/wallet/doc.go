// Package wallet fetches account balances and selects the ones to liquidate.
package wallet
