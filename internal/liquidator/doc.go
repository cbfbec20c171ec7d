// Package liquidator runs one liquidation pass over an account.
//
// A run loads the market catalog and the account balances concurrently,
// plans a route for every sellable balance and executes the routes in
// bounded parallel pipelines. Legs within a pipeline are strictly
// sequential. Each coin's outcome is recorded in a Report; one coin's
// failure never stops the others.
package liquidator
