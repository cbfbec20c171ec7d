// Package executor places market orders for route legs and confirms fills.
//
// Each leg is submitted as a fill-or-kill market SELL. The executor then
// polls the order until the exchange reports it closed:
//
//	SUBMITTING -> SUBMITTED -> CONFIRMED_FILLED
//	                        -> RETRY -> SUBMITTING (killed with nothing filled)
//	                        -> FAILED (partial fill, timeout, submission error)
//
// Submission is never retried on error; only a clean zero-fill close leads
// to a fresh order. Polling is bounded by RetryPolicy.
package executor
