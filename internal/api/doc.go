// Package api provides the Bittrex REST API client.
//
// Public endpoints (v1.1, unauthenticated):
//   - https://api.bittrex.com/api/v1.1/public/getmarkets
//   - https://api.bittrex.com/api/v1.1/public/getticker?market=BTC-ETH
//
// Private endpoints (v3, HMAC-SHA512 signed, see package auth):
//   - GET  https://api.bittrex.com/v3/balances
//   - POST https://api.bittrex.com/v3/orders
//   - GET  https://api.bittrex.com/v3/orders/{id}
//
// v1.1 responses are wrapped in a {success, message, result} envelope;
// v3 responses are bare JSON and report failures as {"code": "..."}.
package api
