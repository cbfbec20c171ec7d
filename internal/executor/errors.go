package executor

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rickgao/autosell/internal/model"
)

// OrderSubmissionError means an order could not be placed. The quantity may
// have been rejected locally, in which case Err says why and nothing was sent.
type OrderSubmissionError struct {
	Leg      model.Leg
	Quantity decimal.Decimal
	Err      error
}

func (e *OrderSubmissionError) Error() string {
	return fmt.Sprintf("submit %s %s: %v", e.Leg, e.Quantity, e.Err)
}

func (e *OrderSubmissionError) Unwrap() error {
	return e.Err
}

// FillTimeoutError means the order was not confirmed within the retry policy.
type FillTimeoutError struct {
	Leg      model.Leg
	OrderID  string // Last submitted order
	Attempts int
}

func (e *FillTimeoutError) Error() string {
	return fmt.Sprintf("order %s on %s not confirmed after %d polls", e.OrderID, e.Leg, e.Attempts)
}

// PartialFillError means the exchange closed the order with only part of the
// quantity executed. The remainder is left in the wallet.
type PartialFillError struct {
	Leg       model.Leg
	OrderID   string
	Requested decimal.Decimal
	Filled    decimal.Decimal
}

func (e *PartialFillError) Error() string {
	return fmt.Sprintf("order %s on %s partially filled: %s of %s",
		e.OrderID, e.Leg, e.Filled, e.Requested)
}

// AbandonedOrderError means the run was cancelled while an order was
// outstanding and its final state could not be established. OrderID is
// empty when the submission itself was cut off; the order can then only be
// found on the exchange by ClientOrderID.
type AbandonedOrderError struct {
	Leg           model.Leg
	OrderID       string
	ClientOrderID string
	Err           error
}

func (e *AbandonedOrderError) Error() string {
	if e.OrderID == "" {
		return fmt.Sprintf("order with client id %s on %s abandoned: %v", e.ClientOrderID, e.Leg, e.Err)
	}
	return fmt.Sprintf("order %s on %s abandoned: %v", e.OrderID, e.Leg, e.Err)
}

func (e *AbandonedOrderError) Unwrap() error {
	return e.Err
}
